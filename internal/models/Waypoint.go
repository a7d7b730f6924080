package models

// Waypoint is a single stop along a route.
// Order within the route's slice is significant and user-controlled.
type Waypoint struct {
	ID    string  `json:"id"`
	Name  string  `json:"name" binding:"required"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Notes string  `json:"notes,omitempty"`
}
