package geoio

import (
	"testing"

	"github.com/geomkit/geom3/pkg/math3d"
)

func TestDecodeTrack(t *testing.T) {
	// Reference polyline from the format documentation:
	// (38.5, -120.2), (40.7, -120.95), (43.252, -126.453).
	segs, err := DecodeTrack("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	if err != nil {
		t.Fatalf("DecodeTrack failed: %v", err)
	}

	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if !segs[0].Start().EqualWithin(math3d.P3(-120.2, 38.5, 0), 1e-5) {
		t.Errorf("first start = %v", segs[0].Start())
	}
	if !segs[1].Start().EqualWithin(math3d.P3(-120.95, 40.7, 0), 1e-5) {
		t.Errorf("second start = %v", segs[1].Start())
	}
	if !segs[1].End().EqualWithin(math3d.P3(-126.453, 43.252, 0), 1e-5) {
		t.Errorf("second end = %v", segs[1].End())
	}
}

func TestDecodeTrackErrors(t *testing.T) {
	if _, err := DecodeTrack(""); err == nil {
		t.Error("DecodeTrack accepted an empty string")
	}
}
