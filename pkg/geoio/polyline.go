package geoio

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-polyline"

	"github.com/geomkit/geom3/pkg/geom"
	"github.com/geomkit/geom3/pkg/math3d"
)

// DecodeTrack decodes a Google encoded polyline into a segment chain.
// Decoded pairs are ordered latitude, longitude; altitude is not carried by
// the format, so Z is 0. Consecutive coincident points are skipped.
func DecodeTrack(encoded string) ([]geom.Segment, error) {
	if encoded == "" {
		return nil, errors.New("encoded polyline string is empty")
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}

	points := make([]math3d.Point3, len(coords))
	for i, coord := range coords {
		points[i] = math3d.P3(coord[1], coord[0], 0)
	}
	return joinPoints(points)
}
