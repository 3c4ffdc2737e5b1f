package bundled_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"travelnest/internal/adapters/bundled"
	"travelnest/internal/domain"
)

func TestLoader_Embedded(t *testing.T) {
	hotels, err := bundled.New().Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(hotels) != 6 {
		t.Fatalf("want 6 hotels, got %d", len(hotels))
	}
	h := hotels[0]
	if h.ID != "1" || h.Price != 199.99 || !h.IsFeatured || len(h.Images) != 3 {
		t.Fatalf("unexpected first hotel: %+v", h)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := bundled.FromFS(fstest.MapFS{}, "hotels.json").Load()
	if !errors.Is(err, domain.ErrBundledCatalogCorrupt) {
		t.Fatalf("want ErrBundledCatalogCorrupt, got %v", err)
	}
}

func TestLoader_MalformedJSON(t *testing.T) {
	fsys := fstest.MapFS{"hotels.json": {Data: []byte(`{"hotels": [`)}}
	_, err := bundled.FromFS(fsys, "hotels.json").Load()
	if !errors.Is(err, domain.ErrBundledCatalogCorrupt) {
		t.Fatalf("want ErrBundledCatalogCorrupt, got %v", err)
	}
}

func TestLoader_FromPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "catalog.json")
	body := `{"hotels":[{"id":"9","name":"Harbor Inn","price":80,"category":"Beach","is_featured":true}]}`
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	hotels, err := bundled.FromPath(p).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(hotels) != 1 || hotels[0].Name != "Harbor Inn" || hotels[0].Category != "Beach" {
		t.Fatalf("unexpected: %+v", hotels)
	}
}
