// Package importer converts uploaded route files into candidate routes.
// It is a best-effort extractor, not a validating parser: GPX and KML
// entries that do not match the expected shape are skipped silently, and
// only structurally broken JSON is reported as a parse failure.
package importer

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"
)

// Format is a supported import format, derived from the file extension.
type Format string

const (
	FormatJSON Format = "json"
	FormatGPX  Format = "gpx"
	FormatKML  Format = "kml"
)

// ParseError reports structurally invalid input. Only JSON imports produce
// it; the XML formats degrade to an empty result instead.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParsedWaypoint is an extracted stop, not yet owned by any route.
type ParsedWaypoint struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Notes string  `json:"notes"`
}

// ParsedRoute is the adapter's output. A nil/empty waypoint list is a valid
// result; the caller decides whether an empty route is worth keeping.
type ParsedRoute struct {
	Name      string
	Waypoints []ParsedWaypoint
}

// DetectFormat maps a filename to its import format by extension.
func DetectFormat(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON, true
	case ".gpx":
		return FormatGPX, true
	case ".kml":
		return FormatKML, true
	}
	return "", false
}

// Parse extracts a candidate route from raw file content.
func Parse(format Format, data []byte) (ParsedRoute, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatGPX:
		return parseGPX(data), nil
	case FormatKML:
		return parseKML(data), nil
	}
	return ParsedRoute{}, &ParseError{Format: format, Err: fmt.Errorf("unsupported format %q", format)}
}

type jsonRoute struct {
	Name      string           `json:"name"`
	Waypoints []ParsedWaypoint `json:"waypoints"`

	// Accepted on input but ignored: summaries are recomputed on import.
	Distance float64 `json:"distance"`
	Duration string  `json:"duration"`
}

func parseJSON(data []byte) (ParsedRoute, error) {
	var doc jsonRoute
	if err := json.Unmarshal(data, &doc); err != nil {
		return ParsedRoute{}, &ParseError{Format: FormatJSON, Err: err}
	}
	return ParsedRoute{Name: doc.Name, Waypoints: doc.Waypoints}, nil
}

func parseGPX(data []byte) ParsedRoute {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		// Best effort: an unreadable document yields nothing, not an error.
		return ParsedRoute{}
	}

	out := ParsedRoute{Name: doc.Name}
	for _, wpt := range doc.Waypoints {
		if wpt.Name == "" {
			continue
		}
		out.Waypoints = append(out.Waypoints, ParsedWaypoint{
			Name: wpt.Name,
			Lat:  wpt.Latitude,
			Lng:  wpt.Longitude,
		})
	}
	return out
}

type kmlPlacemark struct {
	Name        string `xml:"name"`
	Coordinates string `xml:"coordinates"`
	Point       struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
}

func parseKML(data []byte) ParsedRoute {
	var out ParsedRoute
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			// EOF or malformed markup: keep whatever was extracted so far.
			return out
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "Placemark" {
			continue
		}

		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &start); err != nil {
			return out
		}
		coords := pm.Coordinates
		if coords == "" {
			coords = pm.Point.Coordinates
		}
		lat, lng, ok := splitCoordinates(coords)
		if !ok || pm.Name == "" {
			continue
		}
		out.Waypoints = append(out.Waypoints, ParsedWaypoint{Name: pm.Name, Lat: lat, Lng: lng})
	}
}

// splitCoordinates reads the first "lng,lat[,alt]" tuple of a KML
// coordinates string. Tuples with fewer than two components are rejected.
func splitCoordinates(raw string) (lat, lng float64, ok bool) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return 0, 0, false
	}
	parts := strings.Split(fields[0], ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	lng, errLng := strconv.ParseFloat(parts[0], 64)
	lat, errLat := strconv.ParseFloat(parts[1], 64)
	if errLng != nil || errLat != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
