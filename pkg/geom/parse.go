package geom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/geomkit/geom3/pkg/math3d"
)

// Coordinate text grammar. A coordinate has an optional sign, optional
// integer digits, an optional fraction introduced by "." or ",", and an
// optional exponent; coordinates are separated by a comma, a semicolon, or
// spaces, and the whole tuple may be wrapped in parentheses.
//
// The comma plays two roles (decimal separator and list separator), so a
// tuple must commit to a single convention: either every coordinate is
// dot-decimal or every coordinate is comma-decimal, with the match anchored
// to the whole string. Anything ambiguous ("1,2,3") fails to match either
// branch and is rejected outright.
const (
	dotCoord   = `[-+]?\d*(?:\.\d+)?(?:[eE][-+]?\d+)?`
	commaCoord = `[-+]?\d*,\d+(?:[eE][-+]?\d+)?`
	coordSep   = `(?:\s*[,;]\s*|\s+)`
)

func tuplePattern(n int) *regexp.Regexp {
	dot := make([]string, n)
	comma := make([]string, n)
	for i := range n {
		dot[i] = "(" + dotCoord + ")"
		comma[i] = "(" + commaCoord + ")"
	}
	return regexp.MustCompile(
		`^(?:` + strings.Join(dot, coordSep) + `|` + strings.Join(comma, coordSep) + `)$`)
}

var (
	pairPattern   = tuplePattern(2)
	triplePattern = tuplePattern(3)
)

// parseTuple matches text against the n-coordinate grammar and converts the
// captures. Every failure mode (structure, empty capture, numeric
// conversion) is a plain "no match".
func parseTuple(text string, re *regexp.Regexp, n int) ([]float64, bool) {
	s := strings.TrimSpace(text)

	// Parentheses are optional but must be balanced.
	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return nil, false
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	} else if strings.HasSuffix(s, ")") {
		return nil, false
	}
	if s == "" {
		return nil, false
	}

	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}

	// Groups 1..n hold the dot-decimal branch, n+1..2n the comma-decimal
	// branch; exactly one branch participates in an anchored match. Every
	// coordinate capture must be non-empty.
	caps := m[1 : n+1]
	if !allNonEmpty(caps) {
		caps = m[n+1 : 2*n+1]
		if !allNonEmpty(caps) {
			return nil, false
		}
	}

	vals := make([]float64, n)
	for i, c := range caps {
		// Normalize decimal commas; ParseFloat is locale-independent.
		v, err := strconv.ParseFloat(strings.ReplaceAll(c, ",", "."), 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

func allNonEmpty(caps []string) bool {
	for _, c := range caps {
		if c == "" {
			return false
		}
	}
	return true
}

// ParsePair parses text as a coordinate pair. ok is false for empty,
// whitespace-only, or structurally invalid input; the cause is not
// reported.
func ParsePair(text string) (x, y float64, ok bool) {
	vals, ok := parseTuple(text, pairPattern, 2)
	if !ok {
		return 0, 0, false
	}
	return vals[0], vals[1], true
}

// ParseTriple parses text as a coordinate triple, using the same grammar as
// ParsePair extended by one coordinate.
func ParseTriple(text string) (x, y, z float64, ok bool) {
	vals, ok := parseTuple(text, triplePattern, 3)
	if !ok {
		return 0, 0, 0, false
	}
	return vals[0], vals[1], vals[2], true
}

// ParsePoint parses text as a 3D point.
func ParsePoint(text string) (math3d.Point3, error) {
	x, y, z, ok := ParseTriple(text)
	if !ok {
		return math3d.Point3{}, fmt.Errorf("%w: %q", ErrParse, text)
	}
	return math3d.P3(x, y, z), nil
}

// ParseSegment parses two coordinate triples into a segment. Either text
// failing to parse yields ErrParse; parsed points that coincide yield
// ErrDegenerate from the constructor.
func ParseSegment(startText, endText string) (Segment, error) {
	start, err := ParsePoint(startText)
	if err != nil {
		return Segment{}, err
	}
	end, err := ParsePoint(endText)
	if err != nil {
		return Segment{}, err
	}
	return New(start, end)
}
