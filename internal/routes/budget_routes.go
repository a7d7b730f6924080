package routes

import (
	"github.com/gin-gonic/gin"

	"trip_planner/internal/controllers"
)

func BudgetRoutes(api *gin.RouterGroup, ctl *controllers.BudgetController) {
	budget := api.Group("/budget")
	{
		budget.GET("/categories", ctl.ListCategories)
		budget.PUT("/categories/:id", ctl.UpdateCategoryBudget)
		budget.GET("/summary", ctl.Summary)
		budget.POST("/expenses", ctl.CreateExpense)
		budget.GET("/expenses", ctl.ListExpenses)
	}
}
