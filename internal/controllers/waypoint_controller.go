package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trip_planner/internal/planner"
)

// WaypointController mutates the active route's waypoint sequence.
type WaypointController struct {
	planner *planner.Planner
}

func NewWaypointController(p *planner.Planner) *WaypointController {
	return &WaypointController{planner: p}
}

// AddWaypoint appends a stop to the active route.
func (ctl *WaypointController) AddWaypoint(c *gin.Context) {
	var input struct {
		Name  string  `json:"name"`
		Lat   float64 `json:"lat"`
		Lng   float64 `json:"lng"`
		Notes string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("AddWaypoint: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	w, err := ctl.planner.AddWaypoint(input.Name, input.Lat, input.Lng, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"waypoint": w, "route": activeResponse(ctl.planner)})
}

// UpdateWaypoint replaces name and notes in place.
func (ctl *WaypointController) UpdateWaypoint(c *gin.Context) {
	var input struct {
		Name  string `json:"name"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := ctl.planner.UpdateWaypoint(c.Param("id"), input.Name, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"waypoint": w, "route": activeResponse(ctl.planner)})
}

// DeleteWaypoint removes a stop. Unknown ids are a no-op.
func (ctl *WaypointController) DeleteWaypoint(c *gin.Context) {
	if err := ctl.planner.RemoveWaypoint(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": activeResponse(ctl.planner)})
}

// ReorderWaypoints splices the moved waypoint in before the target, the data
// half of the drag-and-drop gesture.
func (ctl *WaypointController) ReorderWaypoints(c *gin.Context) {
	var input struct {
		MovedID  string `json:"moved_id"`
		TargetID string `json:"target_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.planner.Reorder(input.MovedID, input.TargetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": activeResponse(ctl.planner)})
}

// OptimizeRoute shuffles the interior stops of the active route. The result
// is random, not shortest-path; the endpoint exists for parity with the
// original app's placeholder optimizer.
func (ctl *WaypointController) OptimizeRoute(c *gin.Context) {
	if err := ctl.planner.ShuffleMiddle(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": activeResponse(ctl.planner)})
}

func activeResponse(p *planner.Planner) *RouteResponse {
	route, ok := p.ActiveRoute()
	if !ok {
		return nil
	}
	resp := toRouteResponse(route)
	return &resp
}
