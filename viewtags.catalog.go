package viewtags

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// CatalogEntry declares a known component and its variants
type CatalogEntry struct {
	Name        string   `yaml:"name" json:"name"`
	Variants    []string `yaml:"variants,omitempty" json:"variants,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// HasVariant reports whether variant is declared. Matching ignores case,
// since the resolver lower-cases variants in the template path.
func (e *CatalogEntry) HasVariant(variant string) bool {
	for _, v := range e.Variants {
		if strings.EqualFold(v, variant) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the entry
func (e *CatalogEntry) Clone() *CatalogEntry {
	c := *e
	c.Variants = append([]string(nil), e.Variants...)
	return &c
}

// Catalog is a registry of known components, consulted by Lint and by strict compiles.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// Register adds or replaces an entry
	Register(ctx context.Context, entry CatalogEntry) error
	// Get returns the entry for name, or an error for which IsCatalogNotFound is true
	Get(ctx context.Context, name string) (*CatalogEntry, error)
	// List returns all entries sorted by name
	List(ctx context.Context) ([]CatalogEntry, error)
	// Close releases resources held by the catalog
	Close() error
}

// MemoryCatalog is an in-memory Catalog
type MemoryCatalog struct {
	entries map[string]*CatalogEntry
	mu      sync.RWMutex
	closed  bool
}

// NewMemoryCatalog creates a catalog holding the given entries
func NewMemoryCatalog(entries ...CatalogEntry) *MemoryCatalog {
	c := &MemoryCatalog{entries: make(map[string]*CatalogEntry, len(entries))}
	for i := range entries {
		if entries[i].Name != "" {
			c.entries[entries[i].Name] = entries[i].Clone()
		}
	}
	return c
}

// Register implements Catalog
func (c *MemoryCatalog) Register(ctx context.Context, entry CatalogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entry.Name == "" {
		return NewCatalogError(ErrMsgCatalogEmptyName, nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return NewCatalogError(ErrMsgCatalogClosed, nil)
	}
	c.entries[entry.Name] = entry.Clone()
	return nil
}

// Get implements Catalog
func (c *MemoryCatalog) Get(ctx context.Context, name string) (*CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, NewCatalogError(ErrMsgCatalogClosed, nil)
	}
	entry, ok := c.entries[name]
	if !ok {
		return nil, NewCatalogNotFoundError(name)
	}
	return entry.Clone(), nil
}

// List implements Catalog
func (c *MemoryCatalog) List(ctx context.Context) ([]CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, NewCatalogError(ErrMsgCatalogClosed, nil)
	}
	out := make([]CatalogEntry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Close implements Catalog
func (c *MemoryCatalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.entries = make(map[string]*CatalogEntry)
	return nil
}
