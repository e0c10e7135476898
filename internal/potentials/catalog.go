package potentials

import (
	"fmt"
	"sort"
)

type entry struct {
	params map[string]float64
	build  func(p map[string]float64) Generator
}

var catalog = map[string]entry{
	"zero": {
		params: map[string]float64{},
		build:  func(map[string]float64) Generator { return Zero() },
	},
	"infinite_square_well": {
		params: map[string]float64{"a": 0.45},
		build:  func(p map[string]float64) Generator { return InfiniteSquareWell(p["a"]) },
	},
	"finite_square_well": {
		params: map[string]float64{"a": 0.45, "V0": 2},
		build:  func(p map[string]float64) Generator { return FiniteSquareWell(p["a"], p["V0"]) },
	},
	"harmonic_oscillator": {
		params: map[string]float64{"k": 50},
		build:  func(p map[string]float64) Generator { return HarmonicOscillator(p["k"]) },
	},
	"sine_double_well": {
		params: map[string]float64{"V0": 2},
		build:  func(p map[string]float64) Generator { return SineDoubleWell(p["V0"]) },
	},
}

// Names lists the catalogue in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultParams returns a copy of the default parameters of name.
func DefaultParams(name string) (map[string]float64, error) {
	e, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown potential: %s", name)
	}
	p := make(map[string]float64, len(e.params))
	for k, v := range e.params {
		p[k] = v
	}
	return p, nil
}

// New builds the named generator. Missing parameters take their defaults;
// unknown parameter names are rejected.
func New(name string, params map[string]float64) (Generator, error) {
	e, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown potential: %s", name)
	}
	p, _ := DefaultParams(name)
	for k, v := range params {
		if _, known := e.params[k]; !known {
			return nil, fmt.Errorf("potential %s has no parameter %q", name, k)
		}
		p[k] = v
	}
	return e.build(p), nil
}
