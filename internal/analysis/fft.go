package analysis

import (
	"math"
	"math/cmplx"
)

func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// DFT is the direct O(n^2) transform, valid for any length.
func DFT(data []float64) []complex128 {
	n := len(data)
	result := make([]complex128, n)
	for s := 0; s < n; s++ {
		var sum complex128
		for r := 0; r < n; r++ {
			sum += complex(data[r], 0) *
				cmplx.Exp(complex(0, -2*math.Pi*float64(r)*float64(s)/float64(n)))
		}
		result[s] = sum
	}
	return result
}

// PowerSpectrum gives mode magnitudes, via FFT when the length is a power
// of two and the direct transform otherwise.
func PowerSpectrum(data []float64) []float64 {
	var coef []complex128
	if n := len(data); n > 0 && n&(n-1) == 0 {
		coef = FFT(data)
	} else {
		coef = DFT(data)
	}

	ps := make([]float64, len(coef)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coef[i])
	}

	return ps
}
