// Package carrier exposes the read-only carrier catalog: the fixed set of
// insurance companies documents can be submitted to. No workflow component
// mutates it; the authoritative list is supplied by the host application.
package carrier

import (
	"context"
	"sort"
	"sync"

	dErrors "polisflow/pkg/domain-errors"
)

// Carrier is display metadata for one insurance company.
type Carrier struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	SubmissionMethods []string `json:"submissionMethods"`
}

// Catalog is the lookup capability consumed by the lifecycle service.
type Catalog interface {
	Lookup(ctx context.Context, id string) (Carrier, error)
	List(ctx context.Context) ([]Carrier, error)
}

// MemoryCatalog serves a caller-supplied carrier list. The engine never
// embeds business data; the list arrives through configuration or an
// upstream system.
type MemoryCatalog struct {
	mu       sync.RWMutex
	carriers map[string]Carrier
}

func NewMemoryCatalog(carriers []Carrier) *MemoryCatalog {
	m := make(map[string]Carrier, len(carriers))
	for _, c := range carriers {
		m[c.ID] = c
	}
	return &MemoryCatalog{carriers: m}
}

func (c *MemoryCatalog) Lookup(_ context.Context, id string) (Carrier, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	carrier, ok := c.carriers[id]
	if !ok {
		return Carrier{}, dErrors.Newf(dErrors.CodeUnknownCarrier, "carrier %q is not in the catalog", id)
	}
	return carrier, nil
}

func (c *MemoryCatalog) List(_ context.Context) ([]Carrier, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Carrier, 0, len(c.carriers))
	for _, carrier := range c.carriers {
		out = append(out, carrier)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
