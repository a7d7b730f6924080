package models

import "time"

// UploadedFile is a raw route file held for import.
// Importing a route from the file never consumes it.
type UploadedFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"` // extension-derived: json, gpx or kml
	UploadDate time.Time `json:"upload_date"`
	Content    []byte    `json:"-"`
}
