package planner

import (
	"fmt"
	"math"
	"strings"

	"trip_planner/internal/models"
)

// Waypoint operations act on the currently active route and fail with
// ErrNoActiveRoute when none is selected.

// AddWaypoint appends a stop to the end of the active route.
func (p *Planner) AddWaypoint(name string, lat, lng float64, notes string) (models.Waypoint, error) {
	if strings.TrimSpace(name) == "" {
		return models.Waypoint{}, validation("waypoint name must not be empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	r := p.findRoute(p.activeID)
	if r == nil {
		return models.Waypoint{}, ErrNoActiveRoute
	}

	w := models.Waypoint{
		ID:    newID(),
		Name:  strings.TrimSpace(name),
		Lat:   lat,
		Lng:   lng,
		Notes: notes,
	}
	r.Waypoints = append(r.Waypoints, w)
	refreshSummary(r)
	p.persist()
	return w, nil
}

// UpdateWaypoint replaces name and notes in place; the position is kept.
func (p *Planner) UpdateWaypoint(id, name, notes string) (models.Waypoint, error) {
	if strings.TrimSpace(name) == "" {
		return models.Waypoint{}, validation("waypoint name must not be empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	r := p.findRoute(p.activeID)
	if r == nil {
		return models.Waypoint{}, ErrNoActiveRoute
	}

	for i := range r.Waypoints {
		if r.Waypoints[i].ID == id {
			r.Waypoints[i].Name = strings.TrimSpace(name)
			r.Waypoints[i].Notes = notes
			refreshSummary(r)
			p.persist()
			return r.Waypoints[i], nil
		}
	}
	return models.Waypoint{}, ErrNotFound
}

// RemoveWaypoint drops a stop from the active route. Removing an unknown id
// is a no-op.
func (p *Planner) RemoveWaypoint(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := p.findRoute(p.activeID)
	if r == nil {
		return ErrNoActiveRoute
	}

	for i := range r.Waypoints {
		if r.Waypoints[i].ID == id {
			r.Waypoints = append(r.Waypoints[:i], r.Waypoints[i+1:]...)
			refreshSummary(r)
			p.persist()
			return nil
		}
	}
	return nil
}

// Reorder splices the moved waypoint out and back in at the index the target
// held before the removal. A no-op when either id is unknown or both are the
// same.
func (p *Planner) Reorder(movedID, targetID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := p.findRoute(p.activeID)
	if r == nil {
		return ErrNoActiveRoute
	}
	if movedID == targetID {
		return nil
	}

	movedIdx, targetIdx := -1, -1
	for i := range r.Waypoints {
		switch r.Waypoints[i].ID {
		case movedID:
			movedIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if movedIdx == -1 || targetIdx == -1 {
		return nil
	}

	moved := r.Waypoints[movedIdx]
	r.Waypoints = append(r.Waypoints[:movedIdx], r.Waypoints[movedIdx+1:]...)
	r.Waypoints = append(r.Waypoints, models.Waypoint{})
	copy(r.Waypoints[targetIdx+1:], r.Waypoints[targetIdx:])
	r.Waypoints[targetIdx] = moved

	refreshSummary(r)
	p.persist()
	return nil
}

// ShuffleMiddle applies a uniform random permutation to the interior of the
// active route, keeping the first and last stops fixed. This is a placeholder
// optimizer: it is intentionally non-deterministic and makes no attempt to
// minimize distance.
func (p *Planner) ShuffleMiddle() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := p.findRoute(p.activeID)
	if r == nil {
		return ErrNoActiveRoute
	}
	if len(r.Waypoints) < 3 {
		return ErrInsufficientWaypoints
	}

	middle := r.Waypoints[1 : len(r.Waypoints)-1]
	for i := len(middle) - 1; i > 0; i-- {
		j := p.rng.Intn(i + 1)
		middle[i], middle[j] = middle[j], middle[i]
	}

	refreshSummary(r)
	p.persist()
	return nil
}

// refreshSummary recomputes the derived summary fields. The per-stop unit
// distance and the half-hour-per-stop duration are deliberate placeholders
// carried over from the original app, not a geospatial computation.
func refreshSummary(r *models.Route) {
	n := len(r.Waypoints)
	r.Distance = float64(n) * 30
	r.Duration = fmt.Sprintf("%d hours", int(math.Ceil(float64(n)*0.5)))
}
