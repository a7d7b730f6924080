package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"trip_planner/internal/controllers"
	"trip_planner/internal/middleware"
)

// SetupRouter wires the controllers into a gin engine.
func SetupRouter(
	routeCtl *controllers.RouteController,
	waypointCtl *controllers.WaypointController,
	budgetCtl *controllers.BudgetController,
	uploadCtl *controllers.UploadController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	RouteRoutes(api, routeCtl, waypointCtl)
	BudgetRoutes(api, budgetCtl)
	UploadRoutes(api, uploadCtl)

	return r
}
