package store

import (
	"trip_planner/internal/models"
)

// Snapshot is a full copy of the planner state taken after a mutation.
// The planner hands a snapshot to a Store after every change and reads one
// back at startup; the store never sees individual operations.
type Snapshot struct {
	Routes        []models.Route
	ActiveRouteID string
	Categories    []models.BudgetCategory
	Expenses      []models.Expense
	Uploads       []models.UploadedFile
}

// Store persists snapshots. Load returns (nil, nil) when nothing has been
// persisted yet, which tells the planner to seed its sample data.
type Store interface {
	Save(snap *Snapshot) error
	Load() (*Snapshot, error)
}
