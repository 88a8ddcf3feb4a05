package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/geomkit/geom3/pkg/math3d"
)

func TestParsePair(t *testing.T) {
	tests := []struct {
		name string
		text string
		x, y float64
		ok   bool
	}{
		{"comma", "1,2", 1, 2, true},
		{"semicolon in parens", "(1; 2)", 1, 2, true},
		{"spaces", "1 2", 1, 2, true},
		{"decimal commas", "1,5,2,5", 1.5, 2.5, true},
		{"decimal points", "1.5, 2.5", 1.5, 2.5, true},
		{"signs", "-1,+2", -1, 2, true},
		{"exponents", "1e3; -2.5E-2", 1000, -0.025, true},
		{"decimal comma exponent", "1,5e2 2,5", 150, 2.5, true},
		{"leading dot", ".5 .25", 0.5, 0.25, true},
		{"parens with spaces", "  ( 3 , 4 )  ", 3, 4, true},
		{"tab separator", "3\t4", 3, 4, true},
		{"multiple spaces", "3   4", 3, 4, true},

		{"three coordinates", "1,2,3", 0, 0, false},
		{"empty", "", 0, 0, false},
		{"whitespace only", "   ", 0, 0, false},
		{"letters", "abc", 0, 0, false},
		{"unbalanced paren", "(1,2", 0, 0, false},
		{"trailing paren", "1,2)", 0, 0, false},
		{"single value", "42", 0, 0, false},
		{"trailing separator", "1,", 0, 0, false},
		{"leading separator", ",2", 0, 0, false},
		{"sign only", "+ 2", 0, 0, false},
		{"bare exponent", "e5 1", 0, 0, false},
		{"mixed decimal styles", "1.5,2,5", 0, 0, false},
		{"trailing garbage", "1 2 x", 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := ParsePair(tc.text)
			if ok != tc.ok {
				t.Fatalf("ParsePair(%q) ok = %v, want %v", tc.text, ok, tc.ok)
			}
			if !ok {
				return
			}
			if math.Abs(x-tc.x) > 1e-12 || math.Abs(y-tc.y) > 1e-12 {
				t.Errorf("ParsePair(%q) = (%v, %v), want (%v, %v)", tc.text, x, y, tc.x, tc.y)
			}
		})
	}
}

func TestParseTriple(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		x, y, z float64
		ok      bool
	}{
		{"commas", "1,2,3", 1, 2, 3, true},
		{"spaces", "1 2 3", 1, 2, 3, true},
		{"semicolons in parens", "(4; 5; 6)", 4, 5, 6, true},
		{"decimal commas", "1,5,2,5,3,5", 1.5, 2.5, 3.5, true},
		{"mixed separators", "1, 2; 3", 1, 2, 3, true},
		{"four coordinates", "1,2,3,4", 0, 0, 0, false},
		{"two coordinates", "1,2", 0, 0, 0, false},
		{"empty", "", 0, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, z, ok := ParseTriple(tc.text)
			if ok != tc.ok {
				t.Fatalf("ParseTriple(%q) ok = %v, want %v", tc.text, ok, tc.ok)
			}
			if !ok {
				return
			}
			got := math3d.V3(x, y, z)
			want := math3d.V3(tc.x, tc.y, tc.z)
			if !got.EqualWithin(want, 1e-12) {
				t.Errorf("ParseTriple(%q) = %v, want %v", tc.text, got, want)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint("(1.5, -2, 3e1)")
	if err != nil {
		t.Fatalf("ParsePoint failed: %v", err)
	}
	if !p.EqualWithin(math3d.P3(1.5, -2, 30), 1e-12) {
		t.Errorf("ParsePoint = %v", p)
	}

	if _, err := ParsePoint("nope"); !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestParseSegment(t *testing.T) {
	s, err := ParseSegment("0, 0, 0", "(10; 0; 0)")
	if err != nil {
		t.Fatalf("ParseSegment failed: %v", err)
	}
	if s.Start() != math3d.P3(0, 0, 0) || s.End() != math3d.P3(10, 0, 0) {
		t.Errorf("ParseSegment = %v", s)
	}

	if _, err := ParseSegment("bogus", "0,0,0"); !errors.Is(err, ErrParse) {
		t.Errorf("bad start: err = %v, want ErrParse", err)
	}
	if _, err := ParseSegment("0,0,0", "bogus"); !errors.Is(err, ErrParse) {
		t.Errorf("bad end: err = %v, want ErrParse", err)
	}
	if _, err := ParseSegment("1,2,3", "1,2,3"); !errors.Is(err, ErrDegenerate) {
		t.Errorf("coincident points: err = %v, want ErrDegenerate", err)
	}
}
