// Package asset reads bundled text resources such as the neighborhood
// GeoJSON shipped with the binary.
package asset

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// DefaultName is the bundled neighborhood boundary set.
const DefaultName = "neighborhoods.geojson"

//go:embed data/*.geojson
var bundled embed.FS

var (
	ErrNotFound = errors.New("asset not found")
	ErrEmpty    = errors.New("asset is empty")
)

// Loader reads named resources from a file system.
type Loader struct {
	fsys fs.FS
}

// NewLoader returns a loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Bundled returns a loader over the assets compiled into the binary.
func Bundled() *Loader {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		// data/ is part of the embed pattern
		panic(err)
	}
	return NewLoader(sub)
}

// Load returns the full text content of the named resource. It blocks on the
// read, so callers run it off the interactive goroutine.
func (l *Loader) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("read asset %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	return string(b), nil
}

// Names lists the GeoJSON resources at the root of the loader's file system.
func (l *Loader) Names() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(e.Name()))
		if ext == ".geojson" || ext == ".json" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
