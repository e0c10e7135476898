package config

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/qwave/internal/integrators"
	"github.com/san-kum/qwave/internal/potentials"
	"github.com/san-kum/qwave/internal/wavefunctions"
)

const (
	DefaultN             = 200
	DefaultL             = 1.0
	DefaultDt            = 0.5e-2
	DefaultMass          = 1000.0
	DefaultHbar          = 1.0
	DefaultInfAt         = 1000.0
	DefaultStepsPerFrame = 10
	DefaultFrames        = 100
)

// Config is the settings file. Keys mirror the settings of the original
// desktop program so old files load unchanged.
type Config struct {
	N    int     `yaml:"N"`
	L    float64 `yaml:"L"`
	Dt   float64 `yaml:"dt"`
	Mass float64 `yaml:"m"`
	Hbar float64 `yaml:"hbar"`

	// InfAt is the truncation threshold. An explicit null disables it.
	InfAt *float64 `yaml:"potential_inf_at"`

	Method        string `yaml:"method"`
	StepsPerFrame int    `yaml:"steps_per_frame"`
	Frames        int    `yaml:"frames"`

	Wavefunction GeneratorConfig `yaml:"wavefunction"`
	Potential    GeneratorConfig `yaml:"potential"`
}

// GeneratorConfig names a catalogue entry and overrides some of its
// parameters.
type GeneratorConfig struct {
	Kind   string             `yaml:"kind"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	infAt := DefaultInfAt
	return &Config{
		N:             DefaultN,
		L:             DefaultL,
		Dt:            DefaultDt,
		Mass:          DefaultMass,
		Hbar:          DefaultHbar,
		InfAt:         &infAt,
		Method:        integrators.ReImLeapfrog.String(),
		StepsPerFrame: DefaultStepsPerFrame,
		Frames:        DefaultFrames,
		Wavefunction:  GeneratorConfig{Kind: "wavepacket"},
		Potential:     GeneratorConfig{Kind: "infinite_square_well"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}

// Clone returns a deep copy, so presets can be handed out safely.
func (c *Config) Clone() *Config {
	out := *c
	if c.InfAt != nil {
		v := *c.InfAt
		out.InfAt = &v
	}
	out.Wavefunction.Params = cloneParams(c.Wavefunction.Params)
	out.Potential.Params = cloneParams(c.Potential.Params)
	return &out
}

func cloneParams(p map[string]float64) map[string]float64 {
	if p == nil {
		return nil
	}
	out := make(map[string]float64, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Validate checks the values an engine would reject, plus the
// driver-only settings.
func (c *Config) Validate() error {
	if c.N < 2 {
		return errors.Errorf("N must be at least 2, got %d", c.N)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{{"L", c.L}, {"dt", c.Dt}, {"m", c.Mass}, {"hbar", c.Hbar}} {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return errors.Errorf("%s must be positive and finite, got %g", p.name, p.v)
		}
	}
	if c.InfAt != nil && math.IsNaN(*c.InfAt) {
		return errors.New("potential_inf_at must be a number or null")
	}
	if _, err := integrators.ParseMethod(c.Method); err != nil {
		return errors.Wrap(err, "method")
	}
	if c.StepsPerFrame < 1 {
		return errors.Errorf("steps_per_frame must be at least 1, got %d", c.StepsPerFrame)
	}
	if c.Frames < 0 {
		return errors.Errorf("frames must not be negative, got %d", c.Frames)
	}
	if _, err := potentials.New(c.Potential.Kind, c.Potential.Params); err != nil {
		return errors.Wrap(err, "potential")
	}
	if _, err := wavefunctions.New(c.Wavefunction.Kind, c.Wavefunction.Params); err != nil {
		return errors.Wrap(err, "wavefunction")
	}
	return nil
}
