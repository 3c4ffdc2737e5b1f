// Package bundled reads the hotel catalog shipped with the binary.
package bundled

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"travelnest/internal/domain"
)

//go:embed hotels.json
var embedded embed.FS

const fileName = "hotels.json"

type file struct {
	Hotels []domain.Hotel `json:"hotels"`
}

type Loader struct {
	fsys fs.FS
	name string
}

// New returns the embedded catalog.
func New() *Loader { return &Loader{fsys: embedded, name: fileName} }

// FromFS reads name from fsys.
func FromFS(fsys fs.FS, name string) *Loader { return &Loader{fsys: fsys, name: name} }

// FromPath reads the catalog from a file on disk; an empty path means the embedded copy.
func FromPath(path string) *Loader {
	if path == "" {
		return New()
	}
	return FromFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

func (l *Loader) Load() ([]domain.Hotel, error) {
	b, err := fs.ReadFile(l.fsys, l.name)
	if err != nil {
		return nil, domain.Wrap(domain.ErrBundledCatalogCorrupt, fmt.Errorf("read %s: %w", l.name, err))
	}
	var f file
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, domain.Wrap(domain.ErrBundledCatalogCorrupt, fmt.Errorf("decode %s: %w", l.name, err))
	}
	return f.Hotels, nil
}
