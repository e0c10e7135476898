package wavefunctions

import (
	"fmt"
	"sort"
)

type entry struct {
	params map[string]float64
	build  func(p map[string]float64) Generator
}

var catalog = map[string]entry{
	"wavepacket": {
		params: map[string]float64{"sigma": 0.1, "momentum": 10, "mu": 0},
		build: func(p map[string]float64) Generator {
			return Wavepacket(p["sigma"], p["momentum"], p["mu"])
		},
	},
	"sine": {
		params: map[string]float64{"n": 1, "a": 0.45},
		build:  func(p map[string]float64) Generator { return Sine(p["n"], p["a"]) },
	},
	"two_sines": {
		params: map[string]float64{"n": 1, "n2": 2, "a": 0.45},
		build:  func(p map[string]float64) Generator { return TwoSines(p["n"], p["n2"], p["a"]) },
	},
}

func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func DefaultParams(name string) (map[string]float64, error) {
	e, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown wavefunction: %s", name)
	}
	p := make(map[string]float64, len(e.params))
	for k, v := range e.params {
		p[k] = v
	}
	return p, nil
}

// New builds the named generator with params layered over the defaults.
func New(name string, params map[string]float64) (Generator, error) {
	e, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown wavefunction: %s", name)
	}
	p, _ := DefaultParams(name)
	for k, v := range params {
		if _, known := e.params[k]; !known {
			return nil, fmt.Errorf("wavefunction %s has no parameter %q", name, k)
		}
		p[k] = v
	}
	if name == "wavepacket" && !(p["sigma"] > 0) {
		return nil, fmt.Errorf("wavepacket sigma must be positive, got %g", p["sigma"])
	}
	if (name == "sine" || name == "two_sines") && p["a"] == 0 {
		return nil, fmt.Errorf("%s half-width a must be non-zero", name)
	}
	return e.build(p), nil
}
