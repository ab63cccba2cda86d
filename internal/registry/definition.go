package registry

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Definition is the decodable shape of a registry:
//
//	gcp:
//	  project:
//	    id: analytics-data-mart
//	sources:
//	  appsflyer:
//	    dataset: adm_appsflyer_reporting
//	    tables:
//	      installs: installs
type Definition struct {
	GCP     GCPConfig         `koanf:"gcp"`
	Sources map[string]Source `koanf:"sources"`
}

// GCPConfig holds the cloud project block of a definition.
type GCPConfig struct {
	Project ProjectConfig `koanf:"project"`
}

// ProjectConfig identifies the warehouse project.
type ProjectConfig struct {
	ID string `koanf:"id"`
}

// New builds an immutable Registry from a definition.
// The definition's maps are copied, so later changes to def are not seen.
func New(def Definition, opts ...Option) (*Registry, error) {
	if def.GCP.Project.ID == "" {
		return nil, &DefinitionError{Field: "gcp.project.id", Message: "project id is required"}
	}

	sources := make(map[string]Source, len(def.Sources))
	for name, src := range def.Sources {
		if src.Dataset == "" {
			return nil, &DefinitionError{Field: "sources." + name + ".dataset", Message: "dataset is required"}
		}
		tables := maps.Clone(src.Tables)
		if tables == nil {
			tables = map[string]string{}
		}
		sources[name] = Source{Dataset: src.Dataset, Tables: tables}
	}

	r := &Registry{
		project: def.GCP.Project.ID,
		sources: sources,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// DecodeDefinition decodes a definition from a generic settings map such as
// the one returned by an environment settings resource.
func DecodeDefinition(settings map[string]any) (Definition, error) {
	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "koanf",
		Result:  &def,
	})
	if err != nil {
		return Definition{}, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(settings); err != nil {
		return Definition{}, fmt.Errorf("failed to decode registry definition: %w", err)
	}
	return def, nil
}

// FromSettings decodes a definition from settings and builds a Registry.
func FromSettings(settings map[string]any, opts ...Option) (*Registry, error) {
	def, err := DecodeDefinition(settings)
	if err != nil {
		return nil, err
	}
	return New(def, opts...)
}

// LoadFile reads a YAML registry definition from path.
func LoadFile(path string, opts ...Option) (*Registry, error) {
	k := koanf.New("/")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading registry file %s: %w", path, err)
	}

	var def Definition
	if err := k.Unmarshal("", &def); err != nil {
		return nil, fmt.Errorf("unable to decode registry file %s: %w", path, err)
	}

	return New(def, opts...)
}
