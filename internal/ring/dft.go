package ring

import "math"

// forwardDFT computes the unnormalized transform
// X_s = sum_r x[r] * exp(-i*2*pi*r*s/N).
func forwardDFT(x []float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for s := 0; s < n; s++ {
		var re, im float64
		for r := 0; r < n; r++ {
			ang := -2 * math.Pi * float64(r) * float64(s) / float64(n)
			re += x[r] * math.Cos(ang)
			im += x[r] * math.Sin(ang)
		}
		out[s] = complex(re, im)
	}
	return out
}

// inverseDFT applies the 1/N normalization and keeps the real parts,
// returning the largest normalized imaginary magnitude it discarded.
func inverseDFT(coef []complex128) ([]float64, float64) {
	n := len(coef)
	out := make([]float64, n)
	inv := 1 / float64(n)
	maxImag := 0.0
	for r := 0; r < n; r++ {
		var re, im float64
		for s := 0; s < n; s++ {
			ang := 2 * math.Pi * float64(r) * float64(s) / float64(n)
			c, sn := math.Cos(ang), math.Sin(ang)
			re += real(coef[s])*c - imag(coef[s])*sn
			im += real(coef[s])*sn + imag(coef[s])*c
		}
		out[r] = re * inv
		if a := math.Abs(im * inv); a > maxImag {
			maxImag = a
		}
	}
	return out, maxImag
}
