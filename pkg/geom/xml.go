package geom

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/geomkit/geom3/pkg/math3d"
)

// Segment wire format: an ordered pair of StartPoint and EndPoint children,
// each carrying the point's X/Y/Z attributes.
//
//	<Segment>
//	  <StartPoint X="0" Y="0" Z="0"/>
//	  <EndPoint X="10" Y="0" Z="0"/>
//	</Segment>

type xmlPoint struct {
	X float64 `xml:"X,attr"`
	Y float64 `xml:"Y,attr"`
	Z float64 `xml:"Z,attr"`
}

const (
	startPointElem = "StartPoint"
	endPointElem   = "EndPoint"
)

// MarshalXML implements xml.Marshaler.
func (s Segment) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range []struct {
		name string
		p    math3d.Point3
	}{
		{startPointElem, s.start},
		{endPointElem, s.end},
	} {
		el := xml.StartElement{Name: xml.Name{Local: child.name}}
		if err := e.EncodeElement(xmlPoint{child.p.X, child.p.Y, child.p.Z}, el); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML implements xml.Unmarshaler. It reads exactly one StartPoint
// followed by one EndPoint, descending through any structural wrapper
// elements a serialization framework may have added, and reconstructs the
// endpoints directly: the input is assumed to come from a previously valid
// segment, so the constructor's degeneracy check is bypassed.
func (s *Segment) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var points [2]math3d.Point3
	want := [2]string{startPointElem, endPointElem}
	found := 0
	depth := 0

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case startPointElem, endPointElem:
				if found >= 2 || t.Name.Local != want[found] {
					return fmt.Errorf("geom: unexpected %s element", t.Name.Local)
				}
				var p xmlPoint
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				points[found] = math3d.P3(p.X, p.Y, p.Z)
				found++
			default:
				// Anything else is treated as a wrapper: descend into it.
				depth++
			}
		case xml.EndElement:
			if depth == 0 {
				// End of the segment element itself.
				if found != 2 {
					return fmt.Errorf("geom: segment element missing %s", want[found])
				}
				*s = newUnchecked(points[0], points[1])
				return nil
			}
			depth--
		}
	}
	return fmt.Errorf("geom: unterminated segment element")
}
