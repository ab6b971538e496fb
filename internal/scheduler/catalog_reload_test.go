package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/namax/internal/index"
	"github.com/MrSnakeDoc/namax/internal/logger"
)

func writeCatalog(t *testing.T, path string, names string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("search: ["+names+"]\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
}

func TestCatalogReloader_ReloadBuiltin(t *testing.T) {
	idx := index.NewMemoryIndex()
	cr := NewCatalogReloader("", idx, logger.Nop(), time.Hour, nil)

	hooks := 0
	cr.OnReload(func() { hooks++ })

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if idx.Count() == 0 {
		t.Error("Reload() left the index empty")
	}
	if idx.Source() != "builtin" {
		t.Errorf("Source() = %q, want builtin", idx.Source())
	}
	if hooks != 1 {
		t.Errorf("OnReload hook ran %d times, want 1", hooks)
	}
}

func TestCatalogReloader_KeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, "Robin, Sky")

	idx := index.NewMemoryIndex()
	cr := NewCatalogReloader(path, idx, logger.Nop(), time.Hour, nil)
	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("search: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := cr.Reload(context.Background()); err == nil {
		t.Fatal("Reload() should fail on invalid yaml")
	}
	if idx.Count() != 2 {
		t.Errorf("index should keep the previous catalog, got %d names", idx.Count())
	}
}

func TestCatalogReloader_ManualTrigger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, "Robin")

	idx := index.NewMemoryIndex()
	trigger := make(chan struct{}, 1)
	cr := NewCatalogReloader(path, idx, logger.Nop(), 0, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := cr.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer cr.Stop()

	writeCatalog(t, path, "Robin, Sky, Luna")
	trigger <- struct{}{}

	deadline := time.Now().Add(time.Second)
	for idx.Count() != 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if idx.Count() != 3 {
		t.Errorf("manual trigger did not reload, got %d names", idx.Count())
	}
}

func TestCatalogReloader_StartFailsOnBadFile(t *testing.T) {
	cr := NewCatalogReloader("/nonexistent/catalog.yaml", index.NewMemoryIndex(), logger.Nop(), time.Hour, nil)
	if err := cr.Start(context.Background()); err == nil {
		t.Error("Start() should fail when the first load fails")
	}
}
