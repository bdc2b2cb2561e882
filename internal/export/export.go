// Package export holds the one-way formatters that turn a document entity
// into a downloadable representation. Exporters only consume the entity;
// they never mutate it and never feed anything back into the store.
package export

import (
	"fmt"

	"github.com/inkweld/inkweld/backend/go-services/internal/document"
)

// Exporter renders a document into one output format.
type Exporter interface {
	// Name is the format key used by callers (e.g. "txt", "json").
	Name() string
	// ContentType is the MIME type of the rendered output.
	ContentType() string
	// Export renders the document.
	Export(d *document.Document) ([]byte, error)
}

// Registry maps format names to exporters.
type Registry struct {
	byName map[string]Exporter
}

// NewRegistry returns a registry with the built-in formats registered.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Exporter)}
	r.Register(&TextExporter{})
	r.Register(&JSONExporter{})
	return r
}

func (r *Registry) Register(e Exporter) {
	r.byName[e.Name()] = e
}

// Get returns the exporter for a format name; an unknown format is a caller
// error.
func (r *Registry) Get(format string) (Exporter, error) {
	e, ok := r.byName[format]
	if !ok {
		return nil, fmt.Errorf("unknown export format %q", format)
	}
	return e, nil
}

// Formats lists the registered format names.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	return out
}
