// Package registry provides the source/table registry and fully-qualified
// name resolution.
// It maps logical (source, table) pairs referenced by pipeline SQL to the
// physical "project.dataset.table" identifiers they live under.
package registry

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Source describes one logical source: the physical dataset it lives in and
// the mapping from logical table names to physical table names.
type Source struct {
	Dataset string            `koanf:"dataset"`
	Tables  map[string]string `koanf:"tables"`
}

// TableRef is a resolvable (source, table) pair together with its FQN.
type TableRef struct {
	Source string `json:"source" yaml:"source"`
	Table  string `json:"table" yaml:"table"`
	FQN    string `json:"fqn" yaml:"fqn"`
}

// Registry is an immutable source -> dataset -> table lookup structure.
// Build one with New, FromSettings, LoadFile or Default and pass it to the
// code that needs it.
type Registry struct {
	project string

	// sources maps logical source names to their entries: "appsflyer" → {adm_appsflyer_reporting, ...}
	sources map[string]Source

	logger *slog.Logger
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger sets the logger used for diagnostic output during resolution.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Project returns the project identifier.
func (r *Registry) Project() string {
	return r.project
}

// SourceNames returns all logical source names in sorted order.
func (r *Registry) SourceNames() []string {
	return slices.Sorted(maps.Keys(r.sources))
}

// Source returns a copy of the entry for a logical source.
func (r *Registry) Source(name string) (Source, bool) {
	src, ok := r.sources[name]
	if !ok {
		return Source{}, false
	}
	return Source{Dataset: src.Dataset, Tables: maps.Clone(src.Tables)}, true
}

// TableNames returns the logical table names of a source in sorted order.
func (r *Registry) TableNames(source string) ([]string, error) {
	src, ok := r.sources[source]
	if !ok {
		return nil, &KeyError{Source: source}
	}
	return slices.Sorted(maps.Keys(src.Tables)), nil
}

// Resolve returns the fully-qualified name "project.dataset.table" for a
// logical source and table.
func (r *Registry) Resolve(source, table string) (string, error) {
	r.logger.Debug("resolving table", "source", source, "table", table, "project", r.project, "sources", len(r.sources))

	src, ok := r.sources[source]
	if !ok {
		return "", &KeyError{Source: source}
	}

	physical, ok := src.Tables[table]
	if !ok {
		return "", &KeyError{Source: source, Table: table}
	}

	return strings.Join([]string{r.project, src.Dataset, physical}, "."), nil
}

// All returns every resolvable (source, table) pair, ordered by source and
// then table.
func (r *Registry) All() []TableRef {
	refs := []TableRef{}
	for _, source := range r.SourceNames() {
		src := r.sources[source]
		for _, table := range slices.Sorted(maps.Keys(src.Tables)) {
			refs = append(refs, TableRef{
				Source: source,
				Table:  table,
				FQN:    r.project + "." + src.Dataset + "." + src.Tables[table],
			})
		}
	}
	return refs
}

// Resolve looks up source and table in reg and returns the fully-qualified
// name. It is the function form of (*Registry).Resolve.
func Resolve(reg *Registry, source, table string) (string, error) {
	return reg.Resolve(source, table)
}
