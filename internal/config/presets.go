package config

var Presets = map[string]*Config{
	"decoupled": {
		Cells: 8, A: 0, B: 0, C: 0, D: 0, Mu: 0.5, Nu: 0.1,
		Profile: "spike", Amplitude: 1.0,
		Dt: 0.01, Duration: 10.0, Integrator: "rk4",
	},
	"stationary": {
		Cells: 20, A: 1, B: -2, C: 3, D: -4, Mu: 0.01, Nu: 1.0,
		Profile: "random", Amplitude: 0.05, Seed: 1,
		Dt: 0.005, Duration: 20.0, Integrator: "rk4",
	},
	"oscillatory": {
		Cells: 6, A: 0.5, B: 1, C: -1, D: 0.5, Mu: 0.25, Nu: 0.25,
		Profile: "cosine", Amplitude: 0.2, Wavenumber: 1,
		Dt: 0.005, Duration: 15.0, Integrator: "rk4",
	},
	"degenerate": {
		Cells: 8, A: 0.1, B: 0, C: 0, D: 0.1, Mu: 0.2, Nu: 0.2,
		Profile: "cosine", Amplitude: 0.3, Wavenumber: 2,
		Dt: 0.01, Duration: 10.0, Integrator: "rk4",
	},
	"two-cell": {
		Cells: 2, A: 1, B: -1, C: 2, D: -2, Mu: 0.5, Nu: 0.5,
		Profile: "spike", Amplitude: 0.01,
		Dt: 0.001, Duration: 8.0, Integrator: "rk45",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
