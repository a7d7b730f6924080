package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trip_planner/internal/models"
	"trip_planner/internal/planner"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
)

// RouteController serves the route collection and the active-route pointer.
type RouteController struct {
	planner *planner.Planner
}

func NewRouteController(p *planner.Planner) *RouteController {
	return &RouteController{planner: p}
}

// RouteResponse mirrors models.Route with a derived GeoJSON LineString for
// map clients. The geometry is display output only; it never feeds the
// distance summary.
type RouteResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Waypoints []models.Waypoint `json:"waypoints"`
	Distance  float64           `json:"distance"`
	Duration  string            `json:"duration"`
	Geometry  string            `json:"geometry,omitempty"`
}

func toRouteResponse(route models.Route) RouteResponse {
	jsonGeom, _ := lineStringGeoJSON(route.Waypoints)
	return RouteResponse{
		ID:        route.ID,
		Name:      route.Name,
		Waypoints: route.Waypoints,
		Distance:  route.Distance,
		Duration:  route.Duration,
		Geometry:  jsonGeom,
	}
}

// lineStringGeoJSON encodes the waypoint sequence as a GeoJSON LineString
// string. Routes with fewer than two waypoints have no geometry.
func lineStringGeoJSON(waypoints []models.Waypoint) (string, error) {
	if len(waypoints) < 2 {
		return "", nil
	}
	coords := make([]geom.Coord, 0, len(waypoints))
	for _, w := range waypoints {
		coords = append(coords, geom.Coord{w.Lng, w.Lat})
	}
	ls := geom.NewLineString(geom.XY)
	if _, err := ls.SetCoords(coords); err != nil {
		return "", err
	}
	b, err := gjson.Marshal(ls)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CreateRoute makes a new empty route and selects it.
func (ctl *RouteController) CreateRoute(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	route, err := ctl.planner.CreateRoute(input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(route)})
}

// ListRoutes returns every route in creation order.
func (ctl *RouteController) ListRoutes(c *gin.Context) {
	routes := ctl.planner.Routes()
	routeResponses := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		routeResponses = append(routeResponses, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"routes": routeResponses})
}

// GetRoute returns a single route without touching the selection.
func (ctl *RouteController) GetRoute(c *gin.Context) {
	route, ok := ctl.planner.RouteByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// ActiveRoute returns the selected route. No selection responds 200 with a
// null route: absence is a valid state, not an error.
func (ctl *RouteController) ActiveRoute(c *gin.Context) {
	route, ok := ctl.planner.ActiveRoute()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"route": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// SelectRoute moves the active pointer. An unknown or empty id clears it.
func (ctl *RouteController) SelectRoute(c *gin.Context) {
	var input struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, ok := ctl.planner.SelectRoute(input.ID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"route": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// DeleteRoute removes a route and its waypoints. Idempotent.
func (ctl *RouteController) DeleteRoute(c *gin.Context) {
	ctl.planner.DeleteRoute(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
