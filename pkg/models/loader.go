package models

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Load reads a mesh file, choosing the decoder from its extension.
func Load(path string) (*Geometry, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("load %s: unsupported mesh format %q", path, ext)
	}
}

// LoadAll loads every path concurrently. Results are returned in path
// order. The first failure cancels the remaining loads and is returned.
func LoadAll(ctx context.Context, paths ...string) ([]*Geometry, error) {
	out := make([]*Geometry, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			geo, err := Load(p)
			if err != nil {
				return err
			}
			out[i] = geo
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
