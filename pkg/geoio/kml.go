// Package geoio reads and writes segment geometry in geographic interchange
// formats: KML placemarks, Google encoded polylines, and a plain text form.
//
// Geographic coordinates map onto geometry axes as X = longitude,
// Y = latitude, Z = altitude (meters, 0 when absent).
package geoio

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	kml "github.com/twpayne/go-kml/v2"

	"github.com/geomkit/geom3/pkg/geom"
	"github.com/geomkit/geom3/pkg/math3d"
)

// Decoding structs for the KML subset this package reads. Document and
// Folder share a shape: both hold nested folders and placemarks.
type kmlFile struct {
	Document *kmlFolder `xml:"Document"`
}

type kmlFolder struct {
	Folders    []kmlFolder    `xml:"Folder"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name       string       `xml:"name"`
	Point      *kmlGeometry `xml:"Point"`
	LineString *kmlGeometry `xml:"LineString"`
}

type kmlGeometry struct {
	Coordinates string `xml:"coordinates"`
}

// ReadSegments parses a KML document into segments. LineString placemarks
// contribute their own chains; Point placemarks are joined, in document
// order, into one chain (folder placemarks before placemarks sitting
// directly on the document). Consecutive coincident points are skipped
// rather than rejected.
func ReadSegments(r io.Reader) ([]geom.Segment, error) {
	var f kmlFile
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse KML: %w", err)
	}

	var segs []geom.Segment
	var points []math3d.Point3
	if f.Document != nil {
		var err error
		segs, points, err = collectSegments(f.Document, segs, points)
		if err != nil {
			return nil, err
		}
	}

	chain, err := joinPoints(points)
	if err != nil {
		return nil, err
	}
	return append(segs, chain...), nil
}

// collectSegments walks a folder tree, turning LineStrings into segments
// and accumulating Point placemarks for the caller to chain.
func collectSegments(f *kmlFolder, segs []geom.Segment, points []math3d.Point3) ([]geom.Segment, []math3d.Point3, error) {
	for i := range f.Folders {
		var err error
		segs, points, err = collectSegments(&f.Folders[i], segs, points)
		if err != nil {
			return nil, nil, err
		}
	}
	for _, pm := range f.Placemarks {
		if pm.Point != nil {
			coords, err := parseCoordinates(pm.Point.Coordinates)
			if err != nil {
				return nil, nil, err
			}
			if len(coords) > 0 {
				points = append(points, coords[0])
			}
		}
		if pm.LineString != nil {
			coords, err := parseCoordinates(pm.LineString.Coordinates)
			if err != nil {
				return nil, nil, err
			}
			lineSegs, err := joinPoints(coords)
			if err != nil {
				return nil, nil, err
			}
			segs = append(segs, lineSegs...)
		}
	}
	return segs, points, nil
}

// parseCoordinates parses KML coordinate text: whitespace-separated tuples
// of "lon,lat" or "lon,lat,alt".
func parseCoordinates(text string) ([]math3d.Point3, error) {
	var points []math3d.Point3
	for _, tuple := range strings.Fields(text) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("malformed coordinate tuple %q", tuple)
		}
		vals := make([]float64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed coordinate tuple %q: %w", tuple, err)
			}
			vals[i] = v
		}
		alt := 0.0
		if len(vals) == 3 {
			alt = vals[2]
		}
		points = append(points, math3d.P3(vals[0], vals[1], alt))
	}
	return points, nil
}

// joinPoints links consecutive distinct points into segments.
func joinPoints(points []math3d.Point3) ([]geom.Segment, error) {
	var segs []geom.Segment
	for i := 0; i < len(points)-1; i++ {
		if points[i] == points[i+1] {
			continue
		}
		s, err := geom.New(points[i], points[i+1])
		if err != nil {
			return nil, err
		}
		segs = append(segs, s)
	}
	return segs, nil
}

// WriteSegments writes a KML document containing one LineString placemark
// per segment.
func WriteSegments(w io.Writer, name string, segs []geom.Segment) error {
	children := []kml.Element{kml.Name(name)}
	for i, s := range segs {
		children = append(children, kml.Placemark(
			kml.Name(fmt.Sprintf("segment %d", i+1)),
			kml.LineString(kml.Coordinates(
				kmlCoordinate(s.Start()),
				kmlCoordinate(s.End()),
			)),
		))
	}

	doc := kml.KML(kml.Document(children...))
	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to encode KML: %w", err)
	}
	return nil
}

func kmlCoordinate(p math3d.Point3) kml.Coordinate {
	return kml.Coordinate{Lon: p.X, Lat: p.Y, Alt: p.Z}
}
