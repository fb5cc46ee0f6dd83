// Package pointcloud turns a PLY file into the flat position/color
// arrays the raster package draws. It is the first consumer of the
// plycolumn session API and sticks to it: resolve names, extract
// typed columns, never touch the parser directly.
package pointcloud

import (
	"errors"
	"fmt"

	"ply-reader/pkg/plycolumn"
)

// Cloud holds extracted vertex data: packed x,y,z triplets and, when
// the file has them, packed r,g,b triplets of the same length.
type Cloud struct {
	Pos    []float32
	Colors []uint8
	Rows   int
}

// Load opens path and extracts the vertex element. Files without a
// vertex element, or whose vertex element lacks x/y/z, are rejected.
// red/green/blue columns are picked up when present, of whatever
// scalar type the file stores them as.
func Load(path string) (*Cloud, error) {
	sess, err := plycolumn.Open(path)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	for sess.NextElement() {
		if !sess.ElementIs("vertex") {
			continue
		}
		return loadVertexElement(sess, path)
	}
	return nil, fmt.Errorf("pointcloud: %s has no vertex element", path)
}

func loadVertexElement(sess *plycolumn.Session, path string) (*Cloud, error) {
	if err := sess.LoadElement(); err != nil {
		return nil, fmt.Errorf("pointcloud: %s: %w", path, err)
	}

	posIdx, err := sess.FindPropertyIndices([]string{"x", "y", "z"})
	if err != nil {
		return nil, fmt.Errorf("pointcloud: %s vertex element: %w", path, err)
	}
	pos, err := sess.ExtractFloat32(posIdx)
	if err != nil {
		return nil, fmt.Errorf("pointcloud: %s: %w", path, err)
	}

	cloud := &Cloud{Pos: pos, Rows: sess.NumRows()}

	// Vertex colors are optional; their absence is not an error.
	colorIdx, err := sess.FindPropertyIndices([]string{"red", "green", "blue"})
	if err == nil {
		colors, cerr := sess.ExtractUint8(colorIdx)
		if cerr != nil {
			return nil, fmt.Errorf("pointcloud: %s: %w", path, cerr)
		}
		cloud.Colors = colors
	} else if !errors.Is(err, plycolumn.ErrPropertyNotFound) {
		return nil, fmt.Errorf("pointcloud: %s: %w", path, err)
	}

	return cloud, nil
}
