package planner

import (
	"fmt"
	"time"

	"trip_planner/internal/importer"
	"trip_planner/internal/models"
)

// AddUpload stores a route file for later import. Only the extensions the
// import adapter understands are accepted.
func (p *Planner) AddUpload(name string, size int64, content []byte) (models.UploadedFile, error) {
	format, ok := importer.DetectFormat(name)
	if !ok {
		return models.UploadedFile{}, validation(fmt.Sprintf("unsupported file type: %s", name))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	f := models.UploadedFile{
		ID:         newID(),
		Name:       name,
		Size:       size,
		Type:       string(format),
		UploadDate: time.Now(),
		Content:    content,
	}
	p.uploads = append(p.uploads, f)
	p.persist()
	return f, nil
}

// Uploads returns the stored files, oldest first.
func (p *Planner) Uploads() []models.UploadedFile {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]models.UploadedFile(nil), p.uploads...)
}

// UploadByID looks a stored file up.
func (p *Planner) UploadByID(id string) (models.UploadedFile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, f := range p.uploads {
		if f.ID == id {
			return f, true
		}
	}
	return models.UploadedFile{}, false
}

// DeleteUpload removes a stored file. Idempotent.
func (p *Planner) DeleteUpload(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.uploads {
		if p.uploads[i].ID == id {
			p.uploads = append(p.uploads[:i], p.uploads[i+1:]...)
			p.persist()
			return
		}
	}
}

// ImportUpload parses a stored file and appends the result as a new route.
// The file itself is kept; importing never consumes it. An import that
// extracts zero waypoints still succeeds and yields an empty route.
func (p *Planner) ImportUpload(id string) (models.Route, error) {
	f, ok := p.UploadByID(id)
	if !ok {
		return models.Route{}, ErrNotFound
	}

	parsed, err := importer.Parse(importer.Format(f.Type), f.Content)
	if err != nil {
		return models.Route{}, err
	}

	return p.ImportRoute(parsed, fmt.Sprintf("Route from %s", f.Name)), nil
}
