// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package elastic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FFTFreq returns the wavevector components of an N-point discrete Fourier
// transform, 2*pi*k/N in standard FFT ordering (non-negative frequencies
// first, then the negative ones).
func FFTFreq(n int) []float64 {
	freqs := make([]float64, n)
	for i := 0; i <= (n-1)/2; i++ {
		freqs[i] = 2 * math.Pi * float64(i) / float64(n)
	}
	for i := (n-1)/2 + 1; i < n; i++ {
		freqs[i] = 2 * math.Pi * float64(i-n) / float64(n)
	}
	return freqs
}

// Kernel holds the reciprocal-space elastic interaction, precomputed once
// per lattice size and stiffness tensor.
type Kernel struct {
	// N is the edge length of the lattice the kernel was built for
	N int

	// Q holds the wavevector of every grid point, flat index order
	Q [][3]float64

	// B holds the interaction tensor of every grid point. The q=0 entry is
	// the zero tensor: the homogeneous mode carries no elastic interaction.
	B []Tensor4
}

// NewKernel precomputes the reciprocal-space grid and the elastic kernel
//
//	B(q) = C - (n.C) G(n) (C.n),  n = q/|q|
//
// where G is the inverse of the acoustic tensor G^-1_ij = C_imjn n_m n_n.
// Wavevectors with a singular acoustic tensor get a zero G.
func NewKernel(n int, c Tensor4) (*Kernel, error) {
	if n < 2 {
		return nil, fmt.Errorf("grid size must be at least 2 (got %d)", n)
	}

	freqs := FFTFreq(n)
	k := &Kernel{
		N: n,
		Q: make([][3]float64, n*n*n),
		B: make([]Tensor4, n*n*n),
	}

	idx := 0
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				q := [3]float64{freqs[x], freqs[y], freqs[z]}
				k.Q[idx] = q

				norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2])
				if norm > 0 {
					unit := [3]float64{q[0] / norm, q[1] / norm, q[2] / norm}
					k.B[idx] = interactionTensor(c, unit)
				}
				idx++
			}
		}
	}

	return k, nil
}

// At returns the kernel tensor at lattice coordinates (x, y, z).
func (k *Kernel) At(x, y, z int) *Tensor4 {
	return &k.B[(x*k.N+y)*k.N+z]
}

func interactionTensor(c Tensor4, unit [3]float64) Tensor4 {
	g := acousticInverse(c, unit)

	// i1_qij = n_p C_pqij
	var i1 [3][3][3]float64
	for q := 0; q < 3; q++ {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				for p := 0; p < 3; p++ {
					i1[q][i][j] += unit[p] * c[p][q][i][j]
				}
			}
		}
	}

	// i2_ijr = i1_qij G_qr
	var i2 [3][3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for r := 0; r < 3; r++ {
				for q := 0; q < 3; q++ {
					i2[i][j][r] += i1[q][i][j] * g[q][r]
				}
			}
		}
	}

	// i3_rkl = C_rskl n_s
	var i3 [3][3][3]float64
	for r := 0; r < 3; r++ {
		for k := 0; k < 3; k++ {
			for l := 0; l < 3; l++ {
				for s := 0; s < 3; s++ {
					i3[r][k][l] += c[r][s][k][l] * unit[s]
				}
			}
		}
	}

	var b Tensor4
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					acc := 0.0
					for r := 0; r < 3; r++ {
						acc += i2[i][j][r] * i3[r][k][l]
					}
					b[i][j][k][l] = c[i][j][k][l] - acc
				}
			}
		}
	}

	return b
}

// acousticInverse returns G = (C_imjn n_m n_n)^-1, or the zero matrix when
// the acoustic tensor is singular.
func acousticInverse(c Tensor4, unit [3]float64) Mat3 {
	data := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			acc := 0.0
			for m := 0; m < 3; m++ {
				for n := 0; n < 3; n++ {
					acc += c[i][m][j][n] * unit[m] * unit[n]
				}
			}
			data[i*3+j] = acc
		}
	}

	var inv mat.Dense
	err := inv.Inverse(mat.NewDense(3, 3, data))
	if err != nil {
		return Mat3{}
	}

	var g Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			g[i][j] = inv.At(i, j)
		}
	}
	return g
}
