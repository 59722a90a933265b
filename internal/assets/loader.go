// Package assets parses model and image files into CPU-side data. Nothing in
// here touches OpenGL, so loading can run off the main thread.
package assets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"scenery/internal/logging"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedFormat is returned for files whose extension has no loader.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// LoadModel parses a model file, choosing the reader from its extension.
func LoadModel(path string) (*ModelData, error) {
	var (
		meshes []MeshData
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		meshes, err = loadGLTF(path)
	case ".obj":
		meshes, err = loadOBJ(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}
	if len(meshes) == 0 {
		return nil, fmt.Errorf("no meshes in %s", path)
	}
	return &ModelData{Path: path, Meshes: meshes}, nil
}

// LoadModels parses every distinct path in parallel. Files that fail are
// logged and left out of the result; only cancellation of ctx is an error.
func LoadModels(ctx context.Context, paths []string) (map[string]*ModelData, error) {
	out := make(map[string]*ModelData, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := LoadModel(p)
			if err != nil {
				logging.L().Warn("model not loaded", zap.String("path", p), zap.Error(err))
				return nil
			}
			mu.Lock()
			out[p] = m
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
