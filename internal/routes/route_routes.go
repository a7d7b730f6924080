package routes

import (
	"github.com/gin-gonic/gin"

	"trip_planner/internal/controllers"
)

func RouteRoutes(api *gin.RouterGroup, ctl *controllers.RouteController, wctl *controllers.WaypointController) {
	routes := api.Group("/routes")
	{
		routes.POST("", ctl.CreateRoute)
		routes.GET("", ctl.ListRoutes)
		routes.GET("/active", ctl.ActiveRoute)
		routes.POST("/active/select", ctl.SelectRoute)
		routes.GET("/:id", ctl.GetRoute)
		routes.DELETE("/:id", ctl.DeleteRoute)

		// Waypoint operations always address the active route.
		routes.POST("/active/waypoints", wctl.AddWaypoint)
		routes.PUT("/active/waypoints/:id", wctl.UpdateWaypoint)
		routes.DELETE("/active/waypoints/:id", wctl.DeleteWaypoint)
		routes.POST("/active/reorder", wctl.ReorderWaypoints)
		routes.POST("/active/optimize", wctl.OptimizeRoute)
	}
}
