package planner

import (
	"math"
	"strings"
	"time"

	"trip_planner/internal/models"
)

// Band thresholds match the original tracker: up to 70% of budget is fine,
// up to 90% is a warning, beyond that the category is flagged.
const (
	BandOnTrack    = "on-track"
	BandWarning    = "warning"
	BandOverBudget = "over-budget"
)

// Totals is the global aggregation across all categories. TotalRemaining may
// be negative; being over budget is a representable state, not an error.
type Totals struct {
	TotalBudget    float64 `json:"total_budget"`
	TotalSpent     float64 `json:"total_spent"`
	TotalRemaining float64 `json:"total_remaining"`
}

// CategoryStatus is the per-category display state. Percentage is capped at
// 100 for rendering; Remaining is not capped.
type CategoryStatus struct {
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
	Band       string  `json:"band"`
}

// SetCategoryBudget replaces a category's ceiling.
func (p *Planner) SetCategoryBudget(categoryID string, newBudget float64) error {
	if newBudget < 0 || math.IsNaN(newBudget) || math.IsInf(newBudget, 0) {
		return validation("budget must be a finite non-negative number")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	c := p.findCategory(categoryID)
	if c == nil {
		return ErrNotFound
	}
	c.Budget = newBudget
	p.persist()
	return nil
}

// RecordExpense appends an immutable expense and bumps the category's
// running total. There is no deletion or correction path, so Spent only ever
// grows.
func (p *Planner) RecordExpense(categoryID string, amount float64, description string) (models.Expense, error) {
	if strings.TrimSpace(categoryID) == "" {
		return models.Expense{}, validation("category is required")
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.Expense{}, validation("amount must be greater than zero")
	}
	if strings.TrimSpace(description) == "" {
		return models.Expense{}, validation("description must not be empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	c := p.findCategory(categoryID)
	if c == nil {
		return models.Expense{}, ErrNotFound
	}

	e := models.Expense{
		ID:          newID(),
		CategoryID:  c.ID,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Date:        time.Now(),
	}
	c.Spent += amount
	p.expenses = append(p.expenses, e)
	p.persist()
	return e, nil
}

// Totals aggregates over all categories.
func (p *Planner) Totals() Totals {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var t Totals
	for _, c := range p.categories {
		t.TotalBudget += c.Budget
		t.TotalSpent += c.Spent
	}
	t.TotalRemaining = t.TotalBudget - t.TotalSpent
	return t
}

// CategoryStatus reports the display state for a single category.
func (p *Planner) CategoryStatus(categoryID string) (CategoryStatus, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	c := p.findCategory(categoryID)
	if c == nil {
		return CategoryStatus{}, ErrNotFound
	}
	return statusFor(c), nil
}

// Categories returns all spending buckets.
func (p *Planner) Categories() []models.BudgetCategory {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.BudgetCategory, 0, len(p.categories))
	for _, c := range p.categories {
		out = append(out, *c)
	}
	return out
}

// Expenses returns the append-only expense list, oldest first.
func (p *Planner) Expenses() []models.Expense {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]models.Expense(nil), p.expenses...)
}

func statusFor(c *models.BudgetCategory) CategoryStatus {
	var pct float64
	switch {
	case c.Budget > 0:
		pct = math.Min(c.Spent/c.Budget*100, 100)
	case c.Spent > 0:
		// Zero ceiling with spending: fully over, without dividing by zero.
		pct = 100
	}

	band := BandOnTrack
	if pct > 90 {
		band = BandOverBudget
	} else if pct > 70 {
		band = BandWarning
	}

	return CategoryStatus{
		Percentage: pct,
		Remaining:  c.Budget - c.Spent,
		Band:       band,
	}
}

// findCategory must be called with at least the read lock held.
func (p *Planner) findCategory(id string) *models.BudgetCategory {
	for _, c := range p.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}
