// Package ring computes exact solutions of the linear reaction-diffusion
// system on a periodic ring of cells carrying two morphogens.
//
// The dynamics per cell r are
//
//	dx_r/dt = a*x_r + b*y_r + mu*(x_{r+1} - 2*x_r + x_{r-1})
//	dy_r/dt = c*x_r + d*y_r + nu*(y_{r+1} - 2*y_r + y_{r-1})
//
// with indices taken modulo N. Because the system is linear and
// translation-invariant, a discrete Fourier transform decouples it into N
// independent 2x2 mode systems, each solved in closed form by its
// characteristic roots. [New] performs the decomposition once;
// [Solver.Evaluate] then yields the concentration profile at any time
// without stepping.
//
// A Solver is immutable after construction and safe for concurrent use.
package ring
