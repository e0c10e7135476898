package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/qwave/internal/integrators"
	"github.com/san-kum/qwave/internal/potentials"
	"github.com/san-kum/qwave/internal/wavefunctions"
)

// Registry resolves the names used in settings files.
type Registry struct {
	potentials    map[string]func(map[string]float64) (potentials.Generator, error)
	wavefunctions map[string]func(map[string]float64) (wavefunctions.Generator, error)
	methods       map[string]integrators.Method
}

func NewRegistry() *Registry {
	r := &Registry{
		potentials:    make(map[string]func(map[string]float64) (potentials.Generator, error)),
		wavefunctions: make(map[string]func(map[string]float64) (wavefunctions.Generator, error)),
		methods:       make(map[string]integrators.Method),
	}

	for _, name := range potentials.Names() {
		name := name
		r.potentials[name] = func(params map[string]float64) (potentials.Generator, error) {
			return potentials.New(name, params)
		}
	}
	for _, name := range wavefunctions.Names() {
		name := name
		r.wavefunctions[name] = func(params map[string]float64) (wavefunctions.Generator, error) {
			return wavefunctions.New(name, params)
		}
	}
	for _, m := range integrators.All() {
		r.methods[m.String()] = m
	}

	return r
}

// RegisterPotential adds or replaces a potential. Parameters are passed
// through unchanged.
func (r *Registry) RegisterPotential(name string, fn func(map[string]float64) potentials.Generator) {
	r.potentials[name] = func(params map[string]float64) (potentials.Generator, error) {
		return fn(params), nil
	}
}

func (r *Registry) RegisterWavefunction(name string, fn func(map[string]float64) wavefunctions.Generator) {
	r.wavefunctions[name] = func(params map[string]float64) (wavefunctions.Generator, error) {
		return fn(params), nil
	}
}

func (r *Registry) GetPotential(name string, params map[string]float64) (potentials.Generator, error) {
	fn, ok := r.potentials[name]
	if !ok {
		return nil, fmt.Errorf("unknown potential: %s", name)
	}
	return fn(params)
}

func (r *Registry) GetWavefunction(name string, params map[string]float64) (wavefunctions.Generator, error) {
	fn, ok := r.wavefunctions[name]
	if !ok {
		return nil, fmt.Errorf("unknown wavefunction: %s", name)
	}
	return fn(params)
}

// GetMethod accepts settings-file names and CamelCase labels.
func (r *Registry) GetMethod(name string) (integrators.Method, error) {
	if m, ok := r.methods[name]; ok {
		return m, nil
	}
	return integrators.ParseMethod(name)
}

func (r *Registry) ListPotentials() []string { return sortedKeys(r.potentials) }

func (r *Registry) ListWavefunctions() []string { return sortedKeys(r.wavefunctions) }

// ListMethods returns the methods in enumeration order.
func (r *Registry) ListMethods() []string { return integrators.Names() }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
