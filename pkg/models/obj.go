package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/palette"
)

// ErrShortFace is returned for a face line with fewer than three vertices.
var ErrShortFace = errors.New("face needs at least 3 vertices")

// LoadOBJ reads an OBJ-style mesh file.
func LoadOBJ(path string) (*Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	g, err := ParseOBJ(f)
	if err != nil {
		return nil, err
	}
	g.Name = filepath.Base(path)
	return g, nil
}

// ParseOBJ reads the line-oriented mesh grammar:
//
//	v x y z          vertex position
//	vn x y z         vertex normal
//	fc color         color for subsequent faces (see palette.Parse)
//	f a b c [d ...]  face; tokens are v, v/t, v/t/n or v//n, 1-based
//
// Negative indices count back from the latest vertex or normal. Faces with
// more than three vertices are fan-split. Other directives are ignored.
func ParseOBJ(r io.Reader) (*Geometry, error) {
	g := NewGeometry("")
	current := palette.White
	hasNormalIndex := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		marker, args := fields[0], fields[1:]
		switch marker {
		case "v":
			v, err := parseVec3(args)
			if err != nil {
				return nil, fmt.Errorf("parse obj line %d: vertex: %w", lineNo, err)
			}
			g.Vertices = append(g.Vertices, v)

		case "vn":
			n, err := parseVec3(args)
			if err != nil {
				return nil, fmt.Errorf("parse obj line %d: normal: %w", lineNo, err)
			}
			g.Normals = append(g.Normals, n)

		case "fc":
			c, err := palette.Parse(strings.Join(args, " "))
			if err != nil {
				return nil, fmt.Errorf("parse obj line %d: %w", lineNo, err)
			}
			current = c

		case "f":
			if len(args) < 3 {
				return nil, fmt.Errorf("parse obj line %d: %w", lineNo, ErrShortFace)
			}
			vi := make([]int, len(args))
			ni := make([]int, len(args))
			for i, tok := range args {
				v, n, err := parseFaceToken(tok, len(g.Vertices), len(g.Normals))
				if err != nil {
					return nil, fmt.Errorf("parse obj line %d: %w", lineNo, err)
				}
				vi[i], ni[i] = v, n
				if n >= 0 {
					hasNormalIndex = true
				}
			}

			// Fan-split: (0, k, k+1)
			for k := 1; k+1 < len(vi); k++ {
				g.Indices = append(g.Indices, vi[0], vi[k], vi[k+1])
				g.NormalIndices = append(g.NormalIndices, ni[0], ni[k], ni[k+1])
				g.Colors = append(g.Colors, current)
			}

		default:
			// Unknown directives (comments, groups, materials) are skipped.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if !hasNormalIndex {
		g.NormalIndices = nil
	}
	return g, nil
}

// parseVec3 reads up to three floats. Missing components are zero.
func parseVec3(args []string) (math3d.Vec3, error) {
	var c [3]float64
	for i := 0; i < len(args) && i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return math3d.Vec3{}, err
		}
		c[i] = f
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// parseFaceToken resolves "v", "v/t", "v/t/n" or "v//n" into 0-based vertex
// and normal indices. The normal index is -1 when absent.
func parseFaceToken(tok string, nVerts, nNormals int) (int, int, error) {
	parts := strings.Split(tok, "/")

	v, err := resolveIndex(parts[0], nVerts)
	if err != nil {
		return 0, 0, fmt.Errorf("face vertex %q: %w", tok, err)
	}

	n := -1
	if len(parts) >= 3 && parts[2] != "" {
		n, err = resolveIndex(parts[2], nNormals)
		if err != nil {
			return 0, 0, fmt.Errorf("face normal %q: %w", tok, err)
		}
	}
	return v, n, nil
}

// resolveIndex converts a 1-based (or negative relative) index to 0-based.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		return i - 1, nil
	case i < 0:
		return count + i, nil
	default:
		return 0, fmt.Errorf("index 0 is invalid")
	}
}
