// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package elastic

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// fft3 computes the unnormalized 3-D discrete Fourier transform of a flat
// n^3 complex grid in place, by applying the 1-D transform along each axis.
func fft3(data []complex128, n int) {
	fft := fourier.NewCmplxFFT(n)
	line := make([]complex128, n)
	coeffs := make([]complex128, n)

	// Strides of the three axes for the flat index (x*n + y)*n + z
	strides := [3]int{n * n, n, 1}

	for axis := 0; axis < 3; axis++ {
		stride := strides[axis]
		for _, base := range lineStarts(n, axis) {
			for i := 0; i < n; i++ {
				line[i] = data[base+i*stride]
			}
			fft.Coefficients(coeffs, line)
			for i := 0; i < n; i++ {
				data[base+i*stride] = coeffs[i]
			}
		}
	}
}

// lineStarts returns the flat start index of every 1-D line along an axis.
func lineStarts(n, axis int) []int {
	starts := make([]int, 0, n*n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			var x, y, z int
			switch axis {
			case 0:
				y, z = a, b
			case 1:
				x, z = a, b
			default:
				x, y = a, b
			}
			starts = append(starts, (x*n+y)*n+z)
		}
	}
	return starts
}
