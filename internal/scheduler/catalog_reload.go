package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/namax/internal/index"
	"github.com/MrSnakeDoc/namax/internal/logger"
	"github.com/MrSnakeDoc/namax/internal/sources/catalog"
)

// CatalogReloader handles periodic reloading of the name catalog
type CatalogReloader struct {
	loader        *catalog.Loader
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
	onReload      []func()
}

// NewCatalogReloader creates a new catalog reloader. An empty catalogFile
// selects the built-in catalog.
func NewCatalogReloader(
	catalogFile string,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		loader:        catalog.NewLoader(catalogFile),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// OnReload registers a hook run after every successful reload
func (cr *CatalogReloader) OnReload(fn func()) {
	cr.onReload = append(cr.onReload, fn)
}

// Start loads the catalog and begins the periodic reload process
func (cr *CatalogReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	if cr.interval <= 0 {
		cr.logger.Info("periodic catalog reload disabled")
	}

	go func() {
		var tick <-chan time.Time
		if cr.interval > 0 {
			ticker := time.NewTicker(cr.interval)
			defer ticker.Stop()
			tick = ticker.C
		}
		for {
			select {
			case <-tick:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload loads the catalog and swaps it into the index. On failure the
// previous catalog stays in place.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	cr.index.Update(c, cr.loader.Source())
	cr.logger.Info("catalog loaded",
		logger.String("source", cr.loader.Source()),
		logger.Int("names", cr.index.Count()),
		logger.Int("featured", len(c.Featured)))

	for _, fn := range cr.onReload {
		fn()
	}
	return nil
}
