package models

// Route is a named, ordered sequence of waypoints.
// Distance and Duration are derived from the waypoint list and are
// recomputed after every structural change; they are never set directly.
type Route struct {
	ID        string     `json:"id"`
	Name      string     `json:"name" binding:"required"`
	Waypoints []Waypoint `json:"waypoints"`

	// Derived summary fields. Distance uses a placeholder per-stop unit,
	// Duration is a display label such as "2 hours".
	Distance float64 `json:"distance"`
	Duration string  `json:"duration"`
}
