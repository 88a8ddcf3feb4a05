// Package models extracts segment geometry from glTF documents.
package models

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/geomkit/geom3/pkg/geom"
	"github.com/geomkit/geom3/pkg/math3d"
)

// LoadSegments loads a glTF or GLB file and returns its line geometry as
// segments. LINES, LINE_STRIP and LINE_LOOP primitives are taken directly;
// triangle primitives contribute their unique edges. Degenerate edges are
// skipped.
func LoadSegments(path string) ([]geom.Segment, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var segs []geom.Segment
	for _, m := range doc.Meshes {
		meshSegs, err := segmentsFromMesh(doc, m)
		if err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
		segs = append(segs, meshSegs...)
	}
	return segs, nil
}

// segmentsFromMesh extracts edges from every primitive of a glTF mesh.
func segmentsFromMesh(doc *gltf.Document, m *gltf.Mesh) ([]geom.Segment, error) {
	var segs []geom.Segment
	for _, prim := range m.Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		points, err := readPoints(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(points))
			for i := range points {
				indices[i] = i
			}
		}

		for _, e := range edgePairs(prim.Mode, indices) {
			if e[0] >= len(points) || e[1] >= len(points) {
				return nil, fmt.Errorf("index out of range: %d/%d of %d points", e[0], e[1], len(points))
			}
			s, err := geom.New(points[e[0]], points[e[1]])
			if err != nil {
				continue // zero-length edge
			}
			segs = append(segs, s)
		}
	}
	return segs, nil
}

// edgePairs turns a primitive's index stream into index pairs, one per edge.
// Triangle primitives are reduced to their unique edges; point primitives
// (and anything unrecognized) yield nothing.
func edgePairs(mode gltf.PrimitiveMode, indices []int) [][2]int {
	var edges [][2]int
	switch mode {
	case gltf.PrimitiveLines:
		for i := 0; i+1 < len(indices); i += 2 {
			edges = append(edges, [2]int{indices[i], indices[i+1]})
		}
	case gltf.PrimitiveLineStrip:
		for i := 0; i+1 < len(indices); i++ {
			edges = append(edges, [2]int{indices[i], indices[i+1]})
		}
	case gltf.PrimitiveLineLoop:
		for i := 0; i+1 < len(indices); i++ {
			edges = append(edges, [2]int{indices[i], indices[i+1]})
		}
		if len(indices) > 2 {
			edges = append(edges, [2]int{indices[len(indices)-1], indices[0]})
		}
	case gltf.PrimitiveTriangles:
		seen := make(map[[2]int]bool)
		for i := 0; i+2 < len(indices); i += 3 {
			tri := [3]int{indices[i], indices[i+1], indices[i+2]}
			for j := range 3 {
				a, b := tri[j], tri[(j+1)%3]
				key := [2]int{min(a, b), max(a, b)}
				if seen[key] {
					continue
				}
				seen[key] = true
				edges = append(edges, [2]int{a, b})
			}
		}
	}
	return edges
}

// readPoints reads VEC3 float data from a glTF accessor as points.
func readPoints(doc *gltf.Document, accessorIdx int) ([]math3d.Point3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}
	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Point3, len(floats))
	for i, f := range floats {
		result[i] = math3d.P3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return result, nil
}

// readIndices reads scalar index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint16:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint32:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

// readAccessorData reads raw data from a glTF accessor.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, fmt.Errorf("external buffers not supported")
	}
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12 // 3 floats * 4 bytes
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}

		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint32(bufData[offset]) |
					uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 |
					uint32(bufData[offset+3])<<24
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
