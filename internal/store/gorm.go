package store

import (
	"encoding/binary"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trip_planner/internal/models"
)

// Gorm persists snapshots to Postgres. Save replaces the previous snapshot
// wholesale inside one transaction; there is no row-level merging.
type Gorm struct {
	db *gorm.DB
}

type routeRecord struct {
	gorm.Model
	RouteID  string `gorm:"uniqueIndex"`
	Name     string
	Active   bool
	Distance float64
	Duration string

	// LINESTRING WKB derived from the waypoints, for map tooling that reads
	// the table directly. Empty below two waypoints.
	Geometry []byte `gorm:"type:bytea"`

	Waypoints []waypointRecord `gorm:"foreignKey:RouteRecordID;constraint:OnDelete:CASCADE;"`
}

type waypointRecord struct {
	gorm.Model
	RouteRecordID uint
	WaypointID    string
	Seq           int
	Name          string
	Lat           float64
	Lng           float64
	Notes         string
}

type categoryRecord struct {
	gorm.Model
	CategoryID string `gorm:"uniqueIndex"`
	Name       string
	Icon       string
	Budget     float64
	Spent      float64
	Color      string
}

type expenseRecord struct {
	gorm.Model
	ExpenseID   string `gorm:"uniqueIndex"`
	CategoryID  string
	Amount      float64
	Description string
	Date        time.Time
}

type uploadRecord struct {
	gorm.Model
	UploadID   string `gorm:"uniqueIndex"`
	Name       string
	Size       int64
	Type       string
	Content    []byte `gorm:"type:bytea"`
	UploadDate time.Time
}

// OpenGorm connects to Postgres and migrates the snapshot tables.
func OpenGorm(dsn string) (*Gorm, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&routeRecord{}, &waypointRecord{}, &categoryRecord{}, &expenseRecord{}, &uploadRecord{}); err != nil {
		return nil, err
	}

	return &Gorm{db: db}, nil
}

func (g *Gorm) Save(snap *Snapshot) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped()
		for _, m := range []interface{}{&waypointRecord{}, &routeRecord{}, &categoryRecord{}, &expenseRecord{}, &uploadRecord{}} {
			if err := wipe.Delete(m).Error; err != nil {
				return err
			}
		}

		for i, r := range snap.Routes {
			rec := routeRecord{
				RouteID:  r.ID,
				Name:     r.Name,
				Active:   r.ID == snap.ActiveRouteID,
				Distance: r.Distance,
				Duration: r.Duration,
				Geometry: lineStringWKB(r.Waypoints),
			}
			for seq, w := range r.Waypoints {
				rec.Waypoints = append(rec.Waypoints, waypointRecord{
					WaypointID: w.ID,
					Seq:        seq,
					Name:       w.Name,
					Lat:        w.Lat,
					Lng:        w.Lng,
					Notes:      w.Notes,
				})
			}
			if err := tx.Create(&rec).Error; err != nil {
				logrus.WithError(err).WithField("route", snap.Routes[i].ID).Error("snapshot save: route insert failed")
				return err
			}
		}

		for _, c := range snap.Categories {
			rec := categoryRecord{CategoryID: c.ID, Name: c.Name, Icon: c.Icon, Budget: c.Budget, Spent: c.Spent, Color: c.Color}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}

		for _, e := range snap.Expenses {
			rec := expenseRecord{ExpenseID: e.ID, CategoryID: e.CategoryID, Amount: e.Amount, Description: e.Description, Date: e.Date}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}

		for _, u := range snap.Uploads {
			rec := uploadRecord{UploadID: u.ID, Name: u.Name, Size: u.Size, Type: u.Type, Content: u.Content, UploadDate: u.UploadDate}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (g *Gorm) Load() (*Snapshot, error) {
	var routes []routeRecord
	if err := g.db.Preload("Waypoints").Find(&routes).Error; err != nil {
		return nil, err
	}
	var categories []categoryRecord
	if err := g.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	var expenses []expenseRecord
	if err := g.db.Find(&expenses).Error; err != nil {
		return nil, err
	}
	var uploads []uploadRecord
	if err := g.db.Find(&uploads).Error; err != nil {
		return nil, err
	}

	if len(routes) == 0 && len(categories) == 0 && len(expenses) == 0 && len(uploads) == 0 {
		return nil, nil
	}

	snap := &Snapshot{}
	for _, rec := range routes {
		sort.Slice(rec.Waypoints, func(i, j int) bool { return rec.Waypoints[i].Seq < rec.Waypoints[j].Seq })
		r := models.Route{ID: rec.RouteID, Name: rec.Name, Distance: rec.Distance, Duration: rec.Duration}
		for _, w := range rec.Waypoints {
			r.Waypoints = append(r.Waypoints, models.Waypoint{ID: w.WaypointID, Name: w.Name, Lat: w.Lat, Lng: w.Lng, Notes: w.Notes})
		}
		if rec.Active {
			snap.ActiveRouteID = rec.RouteID
		}
		snap.Routes = append(snap.Routes, r)
	}
	for _, rec := range categories {
		snap.Categories = append(snap.Categories, models.BudgetCategory{ID: rec.CategoryID, Name: rec.Name, Icon: rec.Icon, Budget: rec.Budget, Spent: rec.Spent, Color: rec.Color})
	}
	for _, rec := range expenses {
		snap.Expenses = append(snap.Expenses, models.Expense{ID: rec.ExpenseID, CategoryID: rec.CategoryID, Amount: rec.Amount, Description: rec.Description, Date: rec.Date})
	}
	for _, rec := range uploads {
		snap.Uploads = append(snap.Uploads, models.UploadedFile{ID: rec.UploadID, Name: rec.Name, Size: rec.Size, Type: rec.Type, Content: rec.Content, UploadDate: rec.UploadDate})
	}
	return snap, nil
}

// lineStringWKB encodes the waypoint sequence as a WKB LINESTRING.
func lineStringWKB(waypoints []models.Waypoint) []byte {
	if len(waypoints) < 2 {
		return nil
	}
	coords := make([]geom.Coord, 0, len(waypoints))
	for _, w := range waypoints {
		coords = append(coords, geom.Coord{w.Lng, w.Lat})
	}
	ls := geom.NewLineString(geom.XY)
	if _, err := ls.SetCoords(coords); err != nil {
		return nil
	}
	b, err := wkb.Marshal(ls, binary.LittleEndian)
	if err != nil {
		return nil
	}
	return b
}
