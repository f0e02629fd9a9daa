// Package gpx reads GPX files into raw track points.
package gpx

import (
	"fmt"
	"io"
	"os"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/planbiir/gpxanalyzer/internal/geo"
	"github.com/planbiir/gpxanalyzer/internal/track"
)

// File is a parsed GPX document reduced to what the analytics need
type File struct {
	Name    string
	Creator string

	Tracks   int
	Segments int

	// Skipped counts fixes dropped for invalid coordinates
	Skipped int

	points []track.RawPoint
}

// Parse reads and parses a GPX file
func Parse(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return ParseBytes(data)
}

// ParseReader parses GPX from an io.Reader
func ParseReader(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read GPX: %w", err)
	}

	return ParseBytes(data)
}

// ParseBytes parses an in-memory GPX document
func ParseBytes(data []byte) (*File, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	f := &File{
		Name:    doc.Name,
		Creator: doc.Creator,
		Tracks:  len(doc.Tracks),
	}

	for _, trk := range doc.Tracks {
		f.Segments += len(trk.Segments)
		for _, seg := range trk.Segments {
			f.appendPoints(seg.Points)
		}
	}

	// Planned courses are often exported as routes only
	if len(f.points) == 0 {
		for _, rte := range doc.Routes {
			f.appendPoints(rte.Points)
		}
	}

	return f, nil
}

func (f *File) appendPoints(pts []gpx.GPXPoint) {
	for _, p := range pts {
		if !geo.Valid(geo.Coordinate{Lat: p.Latitude, Lon: p.Longitude}) {
			f.Skipped++
			continue
		}

		var ele float64
		if p.Elevation.NotNull() {
			ele = p.Elevation.Value()
		}

		f.points = append(f.points, track.RawPoint{
			Lat:       p.Latitude,
			Lon:       p.Longitude,
			Elevation: ele,
			Time:      p.Timestamp,
		})
	}
}

// FlattenPoints returns all points from all tracks and segments in order.
// The slice is a copy; callers may keep or modify it.
func (f *File) FlattenPoints() []track.RawPoint {
	out := make([]track.RawPoint, len(f.points))
	copy(out, f.points)
	return out
}
