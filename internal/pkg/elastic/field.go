// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package elastic

import (
	"github.com/hpcng/mcecm/internal/pkg/lattice"
)

// StrainField maps every lattice site to the misfit strain of its variant.
func StrainField(l *lattice.Lattice, strains [NumVariants]Mat3) []Mat3 {
	field := make([]Mat3, l.Sites())
	for idx := range field {
		field[idx] = strains[l.At(idx)-1]
	}
	return field
}

// MacroStrain returns the volume average of a strain field.
func MacroStrain(field []Mat3) Mat3 {
	var mean Mat3
	for idx := range field {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				mean[i][j] += field[idx][i][j]
			}
		}
	}
	inv := 1 / float64(len(field))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			mean[i][j] *= inv
		}
	}
	return mean
}

// TransformField computes the 3-D Fourier transform of a strain field,
// component by component.
func TransformField(field []Mat3, n int) []CMat3 {
	ft := make([]CMat3, len(field))
	scratch := make([]complex128, len(field))

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for idx := range field {
				scratch[idx] = complex(field[idx][i][j], 0)
			}
			fft3(scratch, n)
			for idx := range ft {
				ft[idx][i][j] = scratch[idx]
			}
		}
	}

	return ft
}
