// Package preset ships the built-in auto-router configurations.
// Presets are defined in presets.yaml and compiled in via go:embed.
// Principle: LOOKUP, DON'T COMPUTE - the catalog is static data,
// validated once at first use and never mutated.
package preset

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/nirmaker/routerctl/internal/gateway"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset is a named, immutable router configuration.
type Preset struct {
	Name         string
	DefaultModel string
	Routes       []gateway.RouteDefinition
}

// yamlCatalog holds the parsed YAML data.
type yamlCatalog struct {
	Presets map[string]yamlPreset `yaml:"presets"`
}

type yamlPreset struct {
	DefaultModel string      `yaml:"default_model"`
	Routes       []yamlRoute `yaml:"routes"`
}

type yamlRoute struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Utterances     []string `yaml:"utterances"`
	ScoreThreshold float64  `yaml:"score_threshold"`
}

var (
	catalog     map[string]Preset
	catalogOnce sync.Once
	catalogErr  error
)

// load parses and validates the embedded catalog. Called once and cached.
// Validation happens here rather than at lookup time so a bad edit to
// presets.yaml fails loudly on any use, not only when the broken preset
// is selected.
func load() (map[string]Preset, error) {
	catalogOnce.Do(func() {
		var parsed yamlCatalog
		if err := yaml.Unmarshal(presetsYAML, &parsed); err != nil {
			catalogErr = fmt.Errorf("parse presets.yaml: %w", err)
			return
		}

		catalog = make(map[string]Preset, len(parsed.Presets))
		for name, entry := range parsed.Presets {
			p := convertYAMLPreset(name, entry)
			if err := validate(p); err != nil {
				catalogErr = fmt.Errorf("preset %q: %w", name, err)
				return
			}
			catalog[name] = p
		}
	})
	return catalog, catalogErr
}

func convertYAMLPreset(name string, entry yamlPreset) Preset {
	routes := make([]gateway.RouteDefinition, 0, len(entry.Routes))
	for _, r := range entry.Routes {
		routes = append(routes, gateway.RouteDefinition{
			Name:           r.Name,
			Description:    r.Description,
			Utterances:     r.Utterances,
			ScoreThreshold: r.ScoreThreshold,
		})
	}
	return Preset{
		Name:         name,
		DefaultModel: entry.DefaultModel,
		Routes:       routes,
	}
}

func validate(p Preset) error {
	if p.DefaultModel == "" {
		return fmt.Errorf("default_model is empty")
	}
	if len(p.Routes) == 0 {
		return fmt.Errorf("no routes defined")
	}
	for i, r := range p.Routes {
		if r.Name == "" {
			return fmt.Errorf("route %d has no model name", i)
		}
		if len(r.Utterances) == 0 {
			return fmt.Errorf("route %q has no utterances", r.Name)
		}
		if r.ScoreThreshold < 0 || r.ScoreThreshold > 1 {
			return fmt.Errorf("route %q has score_threshold %v outside [0, 1]", r.Name, r.ScoreThreshold)
		}
	}
	return nil
}

// Get returns the preset for name. The bool is false for unknown names.
func Get(name string) (Preset, bool) {
	presets, err := load()
	if err != nil {
		return Preset{}, false
	}
	p, ok := presets[name]
	return p, ok
}

// Names returns all preset names, sorted.
func Names() []string {
	presets, err := load()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every preset, ordered by name.
func All() []Preset {
	presets, err := load()
	if err != nil {
		return nil
	}
	out := make([]Preset, 0, len(presets))
	for _, name := range Names() {
		out = append(out, presets[name])
	}
	return out
}
