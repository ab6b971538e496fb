package index

import (
	"slices"
	"sync"
	"time"

	"github.com/MrSnakeDoc/namax/internal/sources/catalog"
)

// MemoryIndex holds the loaded catalog for request handlers
type MemoryIndex struct {
	mu         sync.RWMutex
	catalog    *catalog.Catalog
	corpus     []string  // deduplicated search corpus
	source     string    // where the catalog came from
	lastReload time.Time // Timestamp of last catalog reload
}

// NewMemoryIndex creates a new memory index holding an empty catalog
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		catalog: &catalog.Catalog{},
	}
}

// Update replaces the catalog in the index
func (idx *MemoryIndex) Update(c *catalog.Catalog, source string) {
	corpus := c.Corpus()

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.catalog = c
	idx.corpus = corpus
	idx.source = source
	idx.lastReload = time.Now()
}

// Catalog returns the current catalog. Callers must not modify it.
func (idx *MemoryIndex) Catalog() *catalog.Catalog {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.catalog
}

// AllNames returns a copy of the search corpus
func (idx *MemoryIndex) AllNames() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return slices.Clone(idx.corpus)
}

// Count returns the number of names in the search corpus
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.corpus)
}

// Source returns where the current catalog was loaded from
func (idx *MemoryIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// GetLastReload returns the timestamp of the last catalog reload
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
