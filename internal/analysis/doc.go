// Package analysis provides spectral tools for ring reaction-diffusion
// solutions.
//
// The package includes:
//
//   - [FFT]: radix-2 fast Fourier transform for power-of-two lengths
//   - [DFT]: direct transform for arbitrary lengths
//   - [PowerSpectrum]: mode magnitudes of a spatial profile
//   - [Dispersion]: per-mode growth rates for a parameter set
//   - [Classify]: behaviour class of the dominant mode
//
// # Pattern Detection
//
// A dominant mode with positive real growth rate and nonzero wavenumber
// indicates spontaneous patterning from a near-uniform start:
//
//	d := analysis.Dispersion(p, n)
//	if d.Dominant().Class == analysis.StationaryWave {
//	    // Ring settles into a standing concentration wave
//	}
package analysis
