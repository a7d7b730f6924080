package planner

import (
	"strings"

	"trip_planner/internal/importer"
	"trip_planner/internal/models"
)

// CreateRoute adds an empty route and makes it the active one.
func (p *Planner) CreateRoute(name string) (models.Route, error) {
	if strings.TrimSpace(name) == "" {
		return models.Route{}, validation("route name must not be empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	r := &models.Route{
		ID:        newID(),
		Name:      strings.TrimSpace(name),
		Waypoints: []models.Waypoint{},
	}
	refreshSummary(r)
	p.routes = append(p.routes, r)
	p.activeID = r.ID
	p.persist()
	return copyRoute(r), nil
}

// SelectRoute moves the active pointer. An unknown or empty id clears the
// selection; absence is a valid terminal state, not an error.
func (p *Planner) SelectRoute(id string) (models.Route, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := p.findRoute(id)
	if r == nil {
		p.activeID = ""
		p.persist()
		return models.Route{}, false
	}
	p.activeID = r.ID
	p.persist()
	return copyRoute(r), true
}

// DeleteRoute removes a route. Deleting an unknown id is a no-op.
func (p *Planner) DeleteRoute(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, r := range p.routes {
		if r.ID == id {
			p.routes = append(p.routes[:i], p.routes[i+1:]...)
			if p.activeID == id {
				p.activeID = ""
			}
			p.persist()
			return
		}
	}
}

// ActiveRoute returns the selected route, if any.
func (p *Planner) ActiveRoute() (models.Route, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	r := p.findRoute(p.activeID)
	if r == nil {
		return models.Route{}, false
	}
	return copyRoute(r), true
}

// Routes returns all routes in creation order.
func (p *Planner) Routes() []models.Route {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.Route, 0, len(p.routes))
	for _, r := range p.routes {
		out = append(out, copyRoute(r))
	}
	return out
}

// RouteByID looks a route up without touching the active pointer.
func (p *Planner) RouteByID(id string) (models.Route, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	r := p.findRoute(id)
	if r == nil {
		return models.Route{}, false
	}
	return copyRoute(r), true
}

// ImportRoute appends a route built from parsed file content. Waypoints get
// fresh ids and the summary is recomputed rather than trusted from the file.
// The imported route does not become active.
func (p *Planner) ImportRoute(parsed importer.ParsedRoute, fallbackName string) models.Route {
	name := parsed.Name
	if strings.TrimSpace(name) == "" {
		name = fallbackName
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	r := &models.Route{
		ID:        newID(),
		Name:      name,
		Waypoints: make([]models.Waypoint, 0, len(parsed.Waypoints)),
	}
	for _, w := range parsed.Waypoints {
		r.Waypoints = append(r.Waypoints, models.Waypoint{
			ID:    newID(),
			Name:  w.Name,
			Lat:   w.Lat,
			Lng:   w.Lng,
			Notes: w.Notes,
		})
	}
	refreshSummary(r)
	p.routes = append(p.routes, r)
	p.persist()
	return copyRoute(r)
}

// findRoute must be called with at least the read lock held.
func (p *Planner) findRoute(id string) *models.Route {
	if id == "" {
		return nil
	}
	for _, r := range p.routes {
		if r.ID == id {
			return r
		}
	}
	return nil
}
