// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package elastic implements the elastic model of the microstructure
// simulation: the dimensionless misfit strains of the three orientation
// variants, the cubic stiffness tensor, the reciprocal-space interaction
// kernel and the elastic energy functional.
package elastic

// Mat3 is a real 3x3 tensor
type Mat3 [3][3]float64

// CMat3 is a complex 3x3 tensor, used for Fourier-space strain fields
type CMat3 [3][3]complex128

// Tensor4 is a real rank-4 tensor over 3 dimensions
type Tensor4 [3][3][3][3]float64

// NumVariants is the number of orientation variants of the misfit strain
const NumVariants = 3

// MisfitStrains returns the dimensionless lattice misfit strain of each
// orientation variant. The misfit of variant v is factor*I plus a unit
// stretch along axis v, with factor = epsilonA/gamma0.
func MisfitStrains(epsilonA, gamma0 float64) [NumVariants]Mat3 {
	factor := epsilonA / gamma0

	var strains [NumVariants]Mat3
	for v := 0; v < NumVariants; v++ {
		for i := 0; i < 3; i++ {
			strains[v][i][i] = factor
		}
		strains[v][v][v] += 1
	}

	return strains
}

// Stiffness returns the stiffness tensor for cubic symmetry, normalized so
// that C44 = 1. The anisotropy parameter sets C11 = 4/aniso and C12 = C11/2.
func Stiffness(aniso float64) Tensor4 {
	c11 := 4 / aniso
	c12 := c11 / 2
	c44 := 1.0

	var c Tensor4
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					switch {
					case i == j && k == l:
						if i == k {
							c[i][j][k][l] = c11
						} else {
							c[i][j][k][l] = c12
						}
					case i == k && j == l:
						if i != j {
							c[i][j][k][l] = c44
						}
					}
				}
			}
		}
	}

	return c
}
