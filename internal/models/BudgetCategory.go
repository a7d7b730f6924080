package models

// BudgetCategory is a spending bucket with a ceiling and a running total.
// Spent is only ever increased by recording expenses against the category.
type BudgetCategory struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Icon   string  `json:"icon"`
	Budget float64 `json:"budget"`
	Spent  float64 `json:"spent"`
	Color  string  `json:"color"`
}
