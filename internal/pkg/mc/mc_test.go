// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package mc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcng/mcecm/internal/pkg/params"
	"github.com/hpcng/mcecm/internal/pkg/replica"
)

func testParams(t *testing.T) params.Params {
	p := params.Defaults()
	p.LatticeSize = 4
	p.NTemps = 1
	p.TStart = 0.5
	p.MaxSteps = 2
	p.MaxStableSteps = 2
	p.Workers = 2
	p.Seed = 13
	p.Init = params.InitRandom
	p.OutputDir = t.TempDir()
	return p
}

func TestTrackedEnergyMatchesRecomputation(t *testing.T) {
	e, err := New(testParams(t), replica.Info{Rank: 0, Size: 1})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, e.Init(ctx))

	for i := 0; i < 20; i++ {
		_, err := e.Step(ctx, 0.5)
		require.NoError(t, err)
	}

	energy, macro, err := e.evaluate(ctx)
	require.NoError(t, err)
	assert.InDelta(t, e.Energy, energy, 1e-9, "tracked energy drifted from the configuration")
	assert.InDelta(t, e.MacroStrain[0][0], macro[0][0], 1e-12)
}

func TestColdLimitOnlyAcceptsDownhill(t *testing.T) {
	p := testParams(t)
	e, err := New(p, replica.Info{Rank: 0, Size: 1})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, e.Init(ctx))

	// At a vanishing temperature every accepted move must lower the energy
	// (or leave it unchanged)
	for i := 0; i < 30; i++ {
		before := e.Energy
		accepted, err := e.Step(ctx, 1e-12)
		require.NoError(t, err)
		if accepted {
			assert.LessOrEqual(t, e.Energy, before+1e-12)
		} else {
			assert.Equal(t, before, e.Energy)
		}
	}
}

func TestUniformStartHasZeroEnergy(t *testing.T) {
	p := testParams(t)
	p.Init = params.InitUniform

	e, err := New(p, replica.Info{Rank: 0, Size: 1})
	require.NoError(t, err)
	require.NoError(t, e.Init(context.Background()))

	assert.InDelta(t, 0.0, e.Energy, 1e-9)
}

func TestRunWritesStageOutputs(t *testing.T) {
	p := testParams(t)
	e, err := New(p, replica.Info{Rank: 0, Size: 1})
	require.NoError(t, err)

	require.NoError(t, e.Run(context.Background()))

	for _, name := range []string{"totalE_T0.50.txt", "macroStrain_T0.50.txt"} {
		_, err := os.Stat(filepath.Join(p.OutputDir, name))
		assert.NoError(t, err, "missing %s", name)
	}

	// One spin dump is written per stage, either the converged or the
	// max-step one
	finalSpins := filepath.Join(p.OutputDir, "final_spins_T0.50.txt")
	maxStepSpins := filepath.Join(p.OutputDir, "maxStep_spins_T0.50.txt")
	_, errFinal := os.Stat(finalSpins)
	_, errMax := os.Stat(maxStepSpins)
	assert.True(t, errFinal == nil || errMax == nil, "no spin dump was written")
}

func TestReplicaOutputsAreTagged(t *testing.T) {
	p := testParams(t)
	e, err := New(p, replica.Info{Rank: 5, Size: 64})
	require.NoError(t, err)

	require.NoError(t, e.Run(context.Background()))

	_, err = os.Stat(filepath.Join(p.OutputDir, "totalE_T0.50_r005.txt"))
	assert.NoError(t, err)
}

func TestReplicasDecorrelate(t *testing.T) {
	p := testParams(t)
	p.Init = params.InitRandom

	e0, err := New(p, replica.Info{Rank: 0, Size: 2})
	require.NoError(t, err)
	e1, err := New(p, replica.Info{Rank: 1, Size: 2})
	require.NoError(t, err)

	same := true
	for i := 0; i < e0.Lattice.Sites(); i++ {
		if e0.Lattice.At(i) != e1.Lattice.At(i) {
			same = false
			break
		}
	}
	assert.False(t, same, "replicas with different ranks should start from different configurations")
}
