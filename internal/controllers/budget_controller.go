package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trip_planner/internal/models"
	"trip_planner/internal/money"
	"trip_planner/internal/planner"
)

// BudgetController serves the spending categories and the expense ledger.
type BudgetController struct {
	planner *planner.Planner
	format  *money.Formatter
}

func NewBudgetController(p *planner.Planner, f *money.Formatter) *BudgetController {
	return &BudgetController{planner: p, format: f}
}

// CategoryResponse joins a category with its display status.
type CategoryResponse struct {
	models.BudgetCategory
	Status planner.CategoryStatus `json:"status"`
}

// ListCategories returns every category with its status block.
func (ctl *BudgetController) ListCategories(c *gin.Context) {
	categories := ctl.planner.Categories()
	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		status, err := ctl.planner.CategoryStatus(cat.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, CategoryResponse{BudgetCategory: cat, Status: status})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// UpdateCategoryBudget replaces a category's ceiling.
func (ctl *BudgetController) UpdateCategoryBudget(c *gin.Context) {
	var input struct {
		Budget float64 `json:"budget"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateCategoryBudget: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := ctl.planner.SetCategoryBudget(c.Param("id"), input.Budget); err != nil {
		respondError(c, err)
		return
	}

	status, err := ctl.planner.CategoryStatus(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// CreateExpense records an expense against a category. Expenses are
// immutable once recorded; there is no deletion or correction endpoint.
func (ctl *BudgetController) CreateExpense(c *gin.Context) {
	var input struct {
		CategoryID  string  `json:"category_id"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateExpense: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	e, err := ctl.planner.RecordExpense(input.CategoryID, input.Amount, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": e})
}

// ListExpenses returns the ledger, oldest first.
func (ctl *BudgetController) ListExpenses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"expenses": ctl.planner.Expenses()})
}

// Summary returns the global totals, raw and currency-formatted.
func (ctl *BudgetController) Summary(c *gin.Context) {
	t := ctl.planner.Totals()
	c.JSON(http.StatusOK, gin.H{
		"totals": t,
		"display": gin.H{
			"total_budget":    ctl.format.Format(t.TotalBudget),
			"total_spent":     ctl.format.Format(t.TotalSpent),
			"total_remaining": ctl.format.Format(t.TotalRemaining),
		},
	})
}
