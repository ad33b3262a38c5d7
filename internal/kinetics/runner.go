package kinetics

import (
	"context"
	"fmt"
	"math"
)

type Runner struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func NewRunner(sys System, integrator Integrator) *Runner {
	return &Runner{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != r.sys.StateDim() {
		return nil, ErrDimensionMismatch
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialTotal := r.computeTotal(x)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(x, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(x, t)
		}

		var newX State
		var stepErr error

		if cfg.Adaptive {
			newX, dt, stepErr = r.adaptiveStep(x, t, dt, cfg)
		} else {
			newX = r.integrator.Step(r.sys, x, t, dt)
		}

		if stepErr != nil {
			result.Errors = append(result.Errors, stepErr)
		}

		if cfg.ValidateState && !newX.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		x = newX
		t += dt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	finalTotal := r.computeTotal(x)
	if initialTotal != 0 {
		result.TotalDrift = math.Abs(finalTotal-initialTotal) / math.Abs(initialTotal)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the system and hands each state to callback; a false
// return stops the run early.
func (r *Runner) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, float64) bool) error {
	if err := r.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, t) {
			return nil
		}

		x = r.integrator.Step(r.sys, x, t, dt)
		t += dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("invalid state at t=%.4f: %w", t, ErrInvalidState)
		}
	}

	return nil
}

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

func (r *Runner) computeTotal(x State) float64 {
	if c, ok := r.sys.(Conserved); ok {
		return c.Total(x)
	}
	return 0
}

func (r *Runner) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, error) {
	if adaptive, ok := r.integrator.(AdaptiveIntegrator); ok {
		return adaptive.StepAdaptive(r.sys, x, t, dt, cfg.Tolerance)
	}

	x1 := r.integrator.Step(r.sys, x, t, dt)
	xHalf := r.integrator.Step(r.sys, x, t, dt/2)
	x2 := r.integrator.Step(r.sys, xHalf, t+dt/2, dt/2)

	err := x1.Sub(x2).Norm()

	if err > cfg.Tolerance && dt > cfg.MinDt {
		return r.adaptiveStep(x, t, dt/2, cfg)
	}

	if err < cfg.Tolerance/10 && dt < cfg.MaxDt {
		dt = math.Min(dt*2, cfg.MaxDt)
	}

	return x2, dt, nil
}
