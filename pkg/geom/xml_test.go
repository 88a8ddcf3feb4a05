package geom

import (
	"encoding/xml"
	"math"
	"testing"

	"github.com/geomkit/geom3/pkg/math3d"
)

func TestXMLRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		start, end math3d.Point3
	}{
		{"axis aligned", math3d.P3(0, 0, 0), math3d.P3(10, 0, 0)},
		{"fractional", math3d.P3(-1.25, 3.5, 0.0625), math3d.P3(2.75, -0.5, 9)},
		{"large", math3d.P3(1e15, -1e15, 0), math3d.P3(0, 0, 1e-15)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orig := mustSegment(t, tc.start, tc.end)

			data, err := xml.Marshal(orig)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}

			var got Segment
			if err := xml.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal failed: %v\nxml: %s", err, data)
			}

			if !got.Equals(orig) {
				t.Errorf("round trip changed segment: %v -> %v", orig, got)
			}
			if math.Abs(got.Length()-orig.Length()) > 1e-12 {
				t.Errorf("round trip changed length: %v -> %v", orig.Length(), got.Length())
			}
			if !got.Direction().Vec3().EqualWithin(orig.Direction().Vec3(), 1e-12) {
				t.Errorf("round trip changed direction: %v -> %v", orig.Direction(), got.Direction())
			}
		})
	}
}

func TestXMLMarshalShape(t *testing.T) {
	s := mustSegment(t, math3d.P3(0, 0, 0), math3d.P3(10, 0, 0))

	data, err := xml.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `<Segment><StartPoint X="0" Y="0" Z="0"></StartPoint>` +
		`<EndPoint X="10" Y="0" Z="0"></EndPoint></Segment>`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestXMLUnmarshalWrapped(t *testing.T) {
	// Framework-added wrapper elements around the point pair are skipped.
	input := `<Segment>
	  <Envelope version="1">
	    <StartPoint X="1" Y="2" Z="3"/>
	    <EndPoint X="4" Y="5" Z="6"/>
	  </Envelope>
	</Segment>`

	var s Segment
	if err := xml.Unmarshal([]byte(input), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.Start() != math3d.P3(1, 2, 3) || s.End() != math3d.P3(4, 5, 6) {
		t.Errorf("Unmarshal = %v", s)
	}
	if math.Abs(s.Length()-math3d.P3(1, 2, 3).DistanceTo(math3d.P3(4, 5, 6))) > 1e-12 {
		t.Errorf("derived length not restored: %v", s.Length())
	}
}

func TestXMLUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing end point", `<Segment><StartPoint X="0" Y="0" Z="0"/></Segment>`},
		{"missing start point", `<Segment><EndPoint X="1" Y="0" Z="0"/></Segment>`},
		{"out of order", `<Segment><EndPoint X="1" Y="0" Z="0"/><StartPoint X="0" Y="0" Z="0"/></Segment>`},
		{"duplicate start", `<Segment><StartPoint X="0" Y="0" Z="0"/><StartPoint X="1" Y="0" Z="0"/></Segment>`},
		{"empty", `<Segment></Segment>`},
		{"bad attribute", `<Segment><StartPoint X="zero" Y="0" Z="0"/><EndPoint X="1" Y="0" Z="0"/></Segment>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s Segment
			if err := xml.Unmarshal([]byte(tc.input), &s); err == nil {
				t.Errorf("Unmarshal(%s) succeeded, want error", tc.input)
			}
		})
	}
}
