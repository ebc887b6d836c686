package registry

import (
	"sort"
	"sync"

	"plotcast/internal/logger"
	"plotcast/internal/ploterr"
)

// Registry is the table of supported chart types. Reads are lock-free in
// practice (serve-time registrations are not expected); writes go through
// Register under a single-writer discipline.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]*Descriptor)}
}

// Register adds or replaces a chart type descriptor. Replacing an existing
// entry is allowed and logs a warning; a descriptor violating its own
// invariants is rejected.
func (r *Registry) Register(desc *Descriptor) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[desc.Name]; exists {
		logger.Warn("replacing registered chart type", map[string]interface{}{
			"chart_type": desc.Name,
		})
	}
	r.types[desc.Name] = desc
	return nil
}

// IsSupported reports whether the chart type is registered.
func (r *Registry) IsSupported(chartType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[chartType]
	return ok
}

// Descriptor returns the descriptor for a chart type, or an
// UnsupportedChartType error naming the attempted type and the supported set.
func (r *Registry) Descriptor(chartType string) (*Descriptor, *ploterr.Error) {
	r.mu.RLock()
	desc, ok := r.types[chartType]
	r.mu.RUnlock()
	if !ok {
		return nil, ploterr.UnsupportedType(chartType, r.Types())
	}
	return desc, nil
}

// Types returns the registered chart type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
