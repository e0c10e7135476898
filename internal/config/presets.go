package config

import "sort"

// Presets are grouped by potential kind.
var Presets = map[string]map[string]*Config{
	"zero": {
		"free_packet": {
			N: 256, L: 1, Dt: 0.5e-2, Mass: 1000, Hbar: 1,
			Method: "re_im_leapfrog", StepsPerFrame: 10, Frames: 200,
			Wavefunction: GeneratorConfig{Kind: "wavepacket", Params: map[string]float64{"sigma": 0.05, "momentum": 10}},
			Potential:    GeneratorConfig{Kind: "zero"},
		},
	},
	"infinite_square_well": {
		"packet": {
			N: 200, L: 1, Dt: 0.5e-2, Mass: 1000, Hbar: 1, InfAt: ptr(1000),
			Method: "re_im_leapfrog", StepsPerFrame: 10, Frames: 200,
			Wavefunction: GeneratorConfig{Kind: "wavepacket"},
			Potential:    GeneratorConfig{Kind: "infinite_square_well"},
		},
		"two_modes": {
			N: 200, L: 1, Dt: 0.5e-2, Mass: 1000, Hbar: 1, InfAt: ptr(1000),
			Method: "re_im_leapfrog", StepsPerFrame: 10, Frames: 200,
			Wavefunction: GeneratorConfig{Kind: "two_sines"},
			Potential:    GeneratorConfig{Kind: "infinite_square_well"},
		},
		"ground": {
			N: 200, L: 1, Dt: 0.5e-2, Mass: 1000, Hbar: 1, InfAt: ptr(1000),
			Method: "find_ground_state_arnoldi", StepsPerFrame: 10, Frames: 50,
			Wavefunction: GeneratorConfig{Kind: "two_sines"},
			Potential:    GeneratorConfig{Kind: "infinite_square_well"},
		},
	},
	"finite_square_well": {
		"leak": {
			N: 200, L: 1, Dt: 0.5e-2, Mass: 1000, Hbar: 1,
			Method: "re_im_leapfrog", StepsPerFrame: 10, Frames: 300,
			Wavefunction: GeneratorConfig{Kind: "sine", Params: map[string]float64{"n": 3}},
			Potential:    GeneratorConfig{Kind: "finite_square_well"},
		},
	},
	"harmonic_oscillator": {
		"coherent": {
			N: 200, L: 1, Dt: 0.5e-2, Mass: 1000, Hbar: 1,
			Method: "re_im_leapfrog", StepsPerFrame: 10, Frames: 200,
			Wavefunction: GeneratorConfig{Kind: "wavepacket", Params: map[string]float64{"sigma": 0.05, "momentum": 0, "mu": 0.2}},
			Potential:    GeneratorConfig{Kind: "harmonic_oscillator"},
		},
		"ground": {
			N: 200, L: 1, Dt: 0.5e-2, Mass: 1000, Hbar: 1,
			Method: "find_ground_state", StepsPerFrame: 10, Frames: 100,
			Wavefunction: GeneratorConfig{Kind: "wavepacket", Params: map[string]float64{"momentum": 0}},
			Potential:    GeneratorConfig{Kind: "harmonic_oscillator"},
		},
	},
	"sine_double_well": {
		"tunnel": {
			N: 200, L: 1, Dt: 0.5e-2, Mass: 1000, Hbar: 1,
			Method: "re_im_leapfrog", StepsPerFrame: 10, Frames: 400,
			Wavefunction: GeneratorConfig{Kind: "wavepacket", Params: map[string]float64{"sigma": 0.05, "momentum": 0, "mu": -0.25}},
			Potential:    GeneratorConfig{Kind: "sine_double_well"},
		},
		"ground": {
			N: 200, L: 1, Dt: 0.5e-2, Mass: 1000, Hbar: 1,
			Method: "find_ground_state_arnoldi", StepsPerFrame: 10, Frames: 100,
			Wavefunction: GeneratorConfig{Kind: "wavepacket", Params: map[string]float64{"sigma": 0.05, "momentum": 0, "mu": -0.25}},
			Potential:    GeneratorConfig{Kind: "sine_double_well"},
		},
	},
}

func ptr(v float64) *float64 { return &v }

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(potential, preset string) *Config {
	group, ok := Presets[potential]
	if !ok {
		return nil
	}
	cfg, ok := group[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(potential string) []string {
	group, ok := Presets[potential]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetGroups lists the potential kinds that have presets.
func PresetGroups() []string {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}
