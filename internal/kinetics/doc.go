// Package kinetics provides core primitives for simulating chemical
// reaction networks as systems of ordinary differential equations.
//
// The package defines the fundamental interfaces and types shared by the
// rest of the repository:
//
//   - [State]: vector of morphogen concentrations
//   - [System]: interface for autonomous ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Runner]: orchestrates time-stepping runs
//
// # Example
//
//	sys := reaction.NewRingLattice(8)
//	integ := integrators.NewRK4()
//	run := kinetics.NewRunner(sys, integ)
//	result, _ := run.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Runner instances are NOT thread-safe. Independent Runner instances may
// execute concurrently.
package kinetics
