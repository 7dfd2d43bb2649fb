// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package elastic

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcng/mcecm/internal/pkg/lattice"
)

func TestFFTFreq(t *testing.T) {
	// Even length: non-negative frequencies first, then the negative ones
	freqs := FFTFreq(4)
	expected := []float64{0, 2 * math.Pi / 4, -4 * math.Pi / 4, -2 * math.Pi / 4}
	require.Len(t, freqs, 4)
	for i := range expected {
		assert.InDelta(t, expected[i], freqs[i], 1e-12, "index %d", i)
	}

	// Odd length
	freqs = FFTFreq(5)
	expected = []float64{0, 2 * math.Pi / 5, 4 * math.Pi / 5, -4 * math.Pi / 5, -2 * math.Pi / 5}
	require.Len(t, freqs, 5)
	for i := range expected {
		assert.InDelta(t, expected[i], freqs[i], 1e-12, "index %d", i)
	}
}

func TestMisfitStrains(t *testing.T) {
	strains := MisfitStrains(0.2, 0.4)
	factor := 0.5

	for v := 0; v < NumVariants; v++ {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				expected := 0.0
				if i == j {
					expected = factor
				}
				if i == v && j == v {
					expected = 1 + factor
				}
				assert.InDelta(t, expected, strains[v][i][j], 1e-12, "variant %d entry (%d,%d)", v, i, j)
			}
		}
	}
}

func TestStiffness(t *testing.T) {
	c := Stiffness(1.0)

	assert.InDelta(t, 4.0, c[0][0][0][0], 1e-12) // C11
	assert.InDelta(t, 2.0, c[0][0][1][1], 1e-12) // C12
	assert.InDelta(t, 1.0, c[0][1][0][1], 1e-12) // C44
	assert.InDelta(t, 0.0, c[0][1][1][0], 1e-12)
	assert.InDelta(t, 0.0, c[0][1][2][2], 1e-12)

	// Major symmetry C_ijkl = C_klij
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				for l := 0; l < 3; l++ {
					assert.InDelta(t, c[k][l][i][j], c[i][j][k][l], 1e-12)
				}
			}
		}
	}
}

func TestKernelZeroMode(t *testing.T) {
	c := Stiffness(1.0)
	k, err := NewKernel(4, c)
	require.NoError(t, err)

	// The q=0 entry must be the zero tensor
	zero := k.At(0, 0, 0)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for kk := 0; kk < 3; kk++ {
				for l := 0; l < 3; l++ {
					assert.Zero(t, zero[i][j][kk][l])
				}
			}
		}
	}

	// Every other entry carries a finite interaction
	b := k.At(1, 0, 0)
	finite := false
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for kk := 0; kk < 3; kk++ {
				for l := 0; l < 3; l++ {
					require.False(t, math.IsNaN(b[i][j][kk][l]))
					require.False(t, math.IsInf(b[i][j][kk][l], 0))
					if b[i][j][kk][l] != 0 {
						finite = true
					}
				}
			}
		}
	}
	assert.True(t, finite, "kernel at q != 0 should not vanish")
}

func TestKernelTooSmall(t *testing.T) {
	_, err := NewKernel(1, Stiffness(1.0))
	assert.Error(t, err)
}

func TestUniformFieldHasZeroEnergy(t *testing.T) {
	// A single-variant lattice has a spatially constant strain field: all of
	// its Fourier weight sits in the q=0 mode, which the kernel excludes, so
	// the elastic energy must vanish.
	l, err := lattice.New(4)
	require.NoError(t, err)

	strains := MisfitStrains(0.0, 0.4)
	c := Stiffness(1.0)
	k, err := NewKernel(l.N, c)
	require.NoError(t, err)

	field := StrainField(l, strains)
	ft := TransformField(field, l.N)

	e, err := Energy(context.Background(), k, ft, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, e, 1e-9)
}

func TestMixedFieldHasPositiveEnergy(t *testing.T) {
	l, err := lattice.New(4)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(3))
	l.Randomize(rng)

	strains := MisfitStrains(0.0, 0.4)
	k, err := NewKernel(l.N, Stiffness(1.0))
	require.NoError(t, err)

	field := StrainField(l, strains)
	ft := TransformField(field, l.N)

	e, err := Energy(context.Background(), k, ft, 2)
	require.NoError(t, err)
	assert.Greater(t, e, 0.0)
}

func TestEnergyWorkerCountInvariance(t *testing.T) {
	l, err := lattice.New(4)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(5))
	l.Randomize(rng)

	k, err := NewKernel(l.N, Stiffness(1.0))
	require.NoError(t, err)
	ft := TransformField(StrainField(l, MisfitStrains(0.1, 0.4)), l.N)

	e1, err := Energy(context.Background(), k, ft, 1)
	require.NoError(t, err)
	e8, err := Energy(context.Background(), k, ft, 8)
	require.NoError(t, err)

	assert.InDelta(t, e1, e8, 1e-9)
}

func TestMacroStrain(t *testing.T) {
	l, err := lattice.New(2)
	require.NoError(t, err)

	strains := MisfitStrains(0.0, 0.4)
	field := StrainField(l, strains)
	mean := MacroStrain(field)

	// Uniform variant-1 lattice: the mean is the variant-1 misfit
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, strains[0][i][j], mean[i][j], 1e-12)
		}
	}
}

func TestTransformFieldZeroMode(t *testing.T) {
	l, err := lattice.New(4)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(9))
	l.Randomize(rng)

	strains := MisfitStrains(0.1, 0.4)
	field := StrainField(l, strains)
	ft := TransformField(field, l.N)

	// The q=0 coefficient is the field sum: mean times the site count
	mean := MacroStrain(field)
	sites := float64(l.Sites())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, mean[i][j]*sites, real(ft[0][i][j]), 1e-6)
			assert.InDelta(t, 0.0, imag(ft[0][i][j]), 1e-6)
		}
	}
}
