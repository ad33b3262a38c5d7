package config

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCells     = 20
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultAmplitude = 0.1
)

type Config struct {
	Cells      int     `yaml:"cells"`
	A          float64 `yaml:"a"`
	B          float64 `yaml:"b"`
	C          float64 `yaml:"c"`
	D          float64 `yaml:"d"`
	Mu         float64 `yaml:"mu"`
	Nu         float64 `yaml:"nu"`
	Profile    string  `yaml:"profile"`
	Amplitude  float64 `yaml:"amplitude"`
	Wavenumber int     `yaml:"wavenumber"`
	Seed       int64   `yaml:"seed"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Integrator string  `yaml:"integrator"`
}

func DefaultConfig() *Config {
	return &Config{
		Cells:      DefaultCells,
		A:          0.5,
		B:          -1.0,
		C:          1.0,
		D:          -0.5,
		Mu:         0.25,
		Nu:         0.5,
		Profile:    "cosine",
		Amplitude:  DefaultAmplitude,
		Wavenumber: 1,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Integrator: "rk4",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetInitProfiles builds the named initial concentration profiles for both
// morphogens. Profiles other than "random" are deterministic.
func (c *Config) GetInitProfiles() ([]float64, []float64, error) {
	n := c.Cells
	if n < 1 {
		return nil, nil, fmt.Errorf("config: cells must be at least 1, got %d", n)
	}

	x := make([]float64, n)
	y := make([]float64, n)

	switch c.Profile {
	case "uniform", "":
		for r := 0; r < n; r++ {
			x[r] = 1.0
			y[r] = 1.0
		}
	case "spike":
		for r := 0; r < n; r++ {
			x[r] = 1.0
			y[r] = 1.0
		}
		x[0] += c.Amplitude
	case "cosine":
		k := c.Wavenumber
		for r := 0; r < n; r++ {
			x[r] = 1.0 + c.Amplitude*math.Cos(2*math.Pi*float64(k)*float64(r)/float64(n))
			y[r] = 1.0
		}
	case "random":
		rng := rand.New(rand.NewSource(c.Seed))
		for r := 0; r < n; r++ {
			x[r] = 1.0 + c.Amplitude*(2*rng.Float64()-1)
			y[r] = 1.0 + c.Amplitude*(2*rng.Float64()-1)
		}
	default:
		return nil, nil, fmt.Errorf("config: unknown profile %q", c.Profile)
	}

	return x, y, nil
}
