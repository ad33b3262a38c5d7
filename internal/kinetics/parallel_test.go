package kinetics

import (
	"context"
	"math"
	"testing"
)

func TestEnsembleRun(t *testing.T) {
	ens := NewEnsemble(&decaySystem{}, func() Integrator { return &eulerStepper{} })

	cfg := Config{
		Dt:       0.1,
		Duration: 1.0,
	}

	x0s := []State{{1.0}, {2.0}, {4.0}}
	results, err := ens.Run(context.Background(), x0s, cfg)
	if err != nil {
		t.Fatalf("ensemble run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Linear system: each trajectory scales with its initial condition.
	base := results[0].States[len(results[0].States)-1][0]
	for i, scale := range []float64{1, 2, 4} {
		final := results[i].States[len(results[i].States)-1][0]
		if math.Abs(final-scale*base) > 1e-12 {
			t.Errorf("run %d: expected %v, got %v", i, scale*base, final)
		}
	}
}

func TestEnsembleRunPropagatesError(t *testing.T) {
	ens := NewEnsemble(&decaySystem{}, func() Integrator { return &eulerStepper{} })

	cfg := Config{Dt: 0.1, Duration: 1.0}

	x0s := []State{{1.0}, {1.0, 2.0}}
	if _, err := ens.Run(context.Background(), x0s, cfg); err == nil {
		t.Error("expected error for mismatched state dimension")
	}
}
