package geoio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/geomkit/geom3/pkg/geom"
)

// ReadText reads segments from a plain text listing, one per line, in the
// form "start -> end" where each side is a coordinate triple accepted by the
// geom parser. Blank lines and lines starting with # are skipped.
func ReadText(r io.Reader) ([]geom.Segment, error) {
	var segs []geom.Segment

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "->")
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: expected \"start -> end\", got %q", lineNo, line)
		}
		s, err := geom.ParseSegment(parts[0], parts[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		segs = append(segs, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read segments: %w", err)
	}
	return segs, nil
}

// WriteText writes segments in the format ReadText accepts.
func WriteText(w io.Writer, segs []geom.Segment) error {
	for _, s := range segs {
		if _, err := fmt.Fprintf(w, "%v -> %v\n", s.Start(), s.End()); err != nil {
			return err
		}
	}
	return nil
}
