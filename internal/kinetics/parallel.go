package kinetics

import (
	"context"
	"sync"
)

// Ensemble runs the same system over many initial states concurrently.
// Integrators may carry scratch buffers, so each run builds its own from
// the factory. Metrics are stateful and not shared either; each run gets
// a bare Runner.
type Ensemble struct {
	sys           System
	newIntegrator func() Integrator
}

func NewEnsemble(sys System, newIntegrator func() Integrator) *Ensemble {
	return &Ensemble{sys: sys, newIntegrator: newIntegrator}
}

func (e *Ensemble) Run(ctx context.Context, x0s []State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(x0s))
	errs := make([]error, len(x0s))

	var wg sync.WaitGroup
	for i := range x0s {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			r := NewRunner(e.sys, e.newIntegrator())
			results[idx], errs[idx] = r.Run(ctx, x0s[idx], cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
