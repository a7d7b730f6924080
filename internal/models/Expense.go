package models

import "time"

// Expense applies an amount against a budget category.
// Expenses are append-only and immutable once recorded.
type Expense struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}
