// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package mc drives the Metropolis Monte Carlo evolution of the spin
// lattice under the elastic interaction.
package mc

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/hpcng/mcecm/internal/pkg/elastic"
	"github.com/hpcng/mcecm/internal/pkg/lattice"
	"github.com/hpcng/mcecm/internal/pkg/params"
	"github.com/hpcng/mcecm/internal/pkg/replica"
)

// maxExpArg clamps the argument of the Boltzmann factor so that the
// acceptance probability never underflows to a NaN-producing exponent
const maxExpArg = 700

// Engine holds the full state of one simulation replica
type Engine struct {
	// Params are the physical and numerical parameters of the run
	Params params.Params

	// Replica identifies this instance within the launched set
	Replica replica.Info

	// Lattice is the spin configuration being evolved
	Lattice *lattice.Lattice

	// Kernel is the precomputed reciprocal-space elastic interaction
	Kernel *elastic.Kernel

	strains [elastic.NumVariants]elastic.Mat3
	rng     *rand.Rand

	// Energy is the elastic energy of the current configuration
	Energy float64

	// MacroStrain is the volume-averaged strain of the current configuration
	MacroStrain elastic.Mat3
}

// New builds a simulation engine: lattice, misfit strains and elastic
// kernel, with the random number generator seeded per replica.
func New(p params.Params, rep replica.Info) (*Engine, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}

	l, err := lattice.New(p.LatticeSize)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(p.Seed + int64(rep.Rank)))
	if p.Init == params.InitRandom {
		l.Randomize(rng)
	}

	kernel, err := elastic.NewKernel(p.LatticeSize, elastic.Stiffness(p.Aniso))
	if err != nil {
		return nil, err
	}

	return &Engine{
		Params:  p,
		Replica: rep,
		Lattice: l,
		Kernel:  kernel,
		strains: elastic.MisfitStrains(p.EpsilonA, p.Gamma0),
		rng:     rng,
	}, nil
}

// evaluate computes the elastic energy and macro strain of the current
// lattice configuration from scratch.
func (e *Engine) evaluate(ctx context.Context) (float64, elastic.Mat3, error) {
	field := elastic.StrainField(e.Lattice, e.strains)
	ft := elastic.TransformField(field, e.Lattice.N)
	energy, err := elastic.Energy(ctx, e.Kernel, ft, e.Params.Workers)
	if err != nil {
		return 0, elastic.Mat3{}, err
	}
	return energy, elastic.MacroStrain(field), nil
}

// Init computes the energy of the initial configuration. It must be called
// once before stepping.
func (e *Engine) Init(ctx context.Context) error {
	energy, macro, err := e.evaluate(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute the initial energy: %s", err)
	}
	e.Energy = energy
	e.MacroStrain = macro
	return nil
}

// Step performs one Metropolis trial move at a given temperature: propose a
// different variant on a random site, evaluate the resulting energy and
// accept with probability min(1, exp(-dE/T)).
func (e *Engine) Step(ctx context.Context, temperature float64) (bool, error) {
	idx, proposed := e.Lattice.Propose(e.rng)
	current := e.Lattice.At(idx)

	e.Lattice.Set(idx, proposed)
	newEnergy, newMacro, err := e.evaluate(ctx)
	if err != nil {
		e.Lattice.Set(idx, current)
		return false, err
	}

	deltaE := newEnergy - e.Energy
	accepted := true
	if deltaE > 0 {
		arg := deltaE / temperature
		if arg > maxExpArg {
			arg = maxExpArg
		}
		accepted = e.rng.Float64() < math.Exp(-arg)
	}

	if !accepted {
		e.Lattice.Set(idx, current)
		return false, nil
	}

	e.Energy = newEnergy
	e.MacroStrain = newMacro
	return true, nil
}

// Sweep performs one trial move per lattice site and returns the number of
// accepted moves.
func (e *Engine) Sweep(ctx context.Context, temperature float64) (int, error) {
	accepted := 0
	for i := 0; i < e.Lattice.Sites(); i++ {
		ok, err := e.Step(ctx, temperature)
		if err != nil {
			return accepted, err
		}
		if ok {
			accepted++
		}
	}
	return accepted, nil
}

// Run anneals the lattice through the temperature schedule, writing the
// energy and macro-strain logs and the spin dumps of every stage.
func (e *Engine) Run(ctx context.Context) error {
	err := e.Init(ctx)
	if err != nil {
		return err
	}
	log.Printf("* Initial energy: %g\n", e.Energy)

	for _, temperature := range e.Params.Temperatures() {
		err := e.runStage(ctx, temperature)
		if err != nil {
			return fmt.Errorf("stage at T=%.2f failed: %s", temperature, err)
		}
	}

	return nil
}

func (e *Engine) runStage(ctx context.Context, temperature float64) error {
	logs, err := newStageLogs(e.Params.OutputDir, temperature, e.Replica.Tag())
	if err != nil {
		return err
	}
	defer logs.Close()

	zeroMoveSteps := 0
	for step := 1; step <= e.Params.MaxSteps; step++ {
		prevEnergy := e.Energy
		accepted, err := e.Sweep(ctx, temperature)
		if err != nil {
			return err
		}

		err = logs.Record(e.Energy, e.MacroStrain)
		if err != nil {
			return err
		}

		dErel := 0.0
		if prevEnergy != 0 {
			dErel = (e.Energy - prevEnergy) / prevEnergy
		}
		log.Printf("Timestep %d: totE=%g, dErel=%g, Accepted Moves=%d\n", step, e.Energy, dErel, accepted)

		if accepted == 0 {
			zeroMoveSteps++
		} else {
			zeroMoveSteps = 0
		}
		if zeroMoveSteps >= e.Params.MaxStableSteps {
			log.Printf("* Zero accepted moves for %d successive steps, stage converged\n", zeroMoveSteps)
			return e.Lattice.WriteSpins(logs.spinsPath("final_spins"))
		}
	}

	return e.Lattice.WriteSpins(logs.spinsPath("maxStep_spins"))
}
