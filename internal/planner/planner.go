// Package planner holds the application state: the route collection with its
// active-route pointer, the budget ledger and the upload list. Every mutation
// runs to completion under one lock and recomputes the derived summary fields
// before returning, so aggregates never drift from their source collections.
package planner

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"trip_planner/internal/models"
	"trip_planner/internal/store"
)

type Planner struct {
	mu sync.RWMutex

	routes   []*models.Route
	activeID string

	categories []*models.BudgetCategory
	expenses   []models.Expense

	uploads []models.UploadedFile

	rng   *rand.Rand
	store store.Store
}

// New restores state from the store, falling back to the seeded sample
// categories when nothing has been persisted (or the load fails).
func New(st store.Store) *Planner {
	p := &Planner{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		store: st,
	}

	snap, err := st.Load()
	if err != nil {
		logrus.WithError(err).Warn("snapshot load failed, starting from sample data")
		snap = nil
	}
	if snap == nil {
		p.categories = seedCategories()
		return p
	}

	for i := range snap.Routes {
		r := snap.Routes[i]
		p.routes = append(p.routes, &r)
	}
	p.activeID = snap.ActiveRouteID
	for i := range snap.Categories {
		c := snap.Categories[i]
		p.categories = append(p.categories, &c)
	}
	p.expenses = append(p.expenses, snap.Expenses...)
	p.uploads = append(p.uploads, snap.Uploads...)
	if len(p.categories) == 0 {
		p.categories = seedCategories()
	}
	return p
}

// seedCategories mirrors the stock spending buckets of the original app.
// Spent starts at zero: the running totals must always equal the sum of the
// recorded expenses.
func seedCategories() []*models.BudgetCategory {
	return []*models.BudgetCategory{
		{ID: newID(), Name: "Transport", Icon: "🚗", Budget: 2000, Color: "#3498db"},
		{ID: newID(), Name: "Accommodation", Icon: "🏨", Budget: 3000, Color: "#e74c3c"},
		{ID: newID(), Name: "Food", Icon: "🍽️", Budget: 1500, Color: "#f39c12"},
		{ID: newID(), Name: "Activities", Icon: "🎯", Budget: 1000, Color: "#27ae60"},
		{ID: newID(), Name: "Miscellaneous", Icon: "💼", Budget: 500, Color: "#9b59b6"},
	}
}

func newID() string {
	return uuid.NewString()
}

// persist hands the store a snapshot of the current state. Must be called
// with the write lock held. A failing save is logged and never fails the
// user-facing operation.
func (p *Planner) persist() {
	snap := &store.Snapshot{ActiveRouteID: p.activeID}
	for _, r := range p.routes {
		snap.Routes = append(snap.Routes, copyRoute(r))
	}
	for _, c := range p.categories {
		snap.Categories = append(snap.Categories, *c)
	}
	snap.Expenses = append(snap.Expenses, p.expenses...)
	snap.Uploads = append(snap.Uploads, p.uploads...)

	if err := p.store.Save(snap); err != nil {
		logrus.WithError(err).Error("snapshot save failed")
	}
}

// copyRoute returns a value copy with its own waypoint slice, safe to hand
// out after the lock is released.
func copyRoute(r *models.Route) models.Route {
	out := *r
	out.Waypoints = append([]models.Waypoint(nil), r.Waypoints...)
	return out
}
