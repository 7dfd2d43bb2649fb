// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package params loads and validates the simulation parameter file.
package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init modes for the spin lattice
const (
	// InitUniform starts from a single-variant lattice
	InitUniform = "uniform"

	// InitRandom starts from a lattice with uniformly random variants
	InitRandom = "random"
)

// Params holds all the physical and numerical parameters of a simulation run
type Params struct {
	// EpsilonA is the dilatational part of the lattice misfit
	EpsilonA float64 `yaml:"epsilon_a"`

	// Gamma0 is the reference shear strain used to make the misfit dimensionless
	Gamma0 float64 `yaml:"gamma_0"`

	// Aniso is the cubic anisotropy parameter; C11 = 4/Aniso
	Aniso float64 `yaml:"aniso"`

	// LatticeSize is the edge length N of the N^3 simulation lattice
	LatticeSize int `yaml:"lattice_size"`

	// TStart and TEnd bound the linear temperature schedule
	TStart float64 `yaml:"t_start"`
	TEnd   float64 `yaml:"t_end"`

	// NTemps is the number of stages in the temperature schedule
	NTemps int `yaml:"n_temps"`

	// MaxSteps is the maximum number of sweeps per temperature stage
	MaxSteps int `yaml:"max_steps"`

	// MaxStableSteps is the number of consecutive sweeps without any accepted
	// move after which a stage is considered converged
	MaxStableSteps int `yaml:"max_stable_steps"`

	// Seed is the base seed of the random number generator; the replica ID is
	// added to it so that replicas decorrelate
	Seed int64 `yaml:"seed"`

	// Workers is the number of goroutines used for the energy evaluation;
	// zero means one per available CPU
	Workers int `yaml:"workers"`

	// Init selects the initial lattice configuration (uniform or random)
	Init string `yaml:"init"`

	// OutputDir is the directory where logs and spin dumps are written
	OutputDir string `yaml:"output_dir"`
}

// Defaults returns the parameters used when no configuration file is given.
// The values match the reference study this tool was written for.
func Defaults() Params {
	return Params{
		EpsilonA:       0.0,
		Gamma0:         0.4,
		Aniso:          1.0,
		LatticeSize:    12,
		TStart:         1.0,
		TEnd:           0.1,
		NTemps:         10,
		MaxSteps:       500,
		MaxStableSteps: 20,
		Seed:           1,
		Init:           InitUniform,
		OutputDir:      ".",
	}
}

// Load reads a YAML parameter file and merges it over the defaults.
func Load(path string) (Params, error) {
	p := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read parameter file %s: %s", path, err)
	}

	err = yaml.Unmarshal(data, &p)
	if err != nil {
		return p, fmt.Errorf("failed to parse parameter file %s: %s", path, err)
	}

	err = p.Validate()
	if err != nil {
		return p, fmt.Errorf("invalid parameter file %s: %s", path, err)
	}

	return p, nil
}

// Validate checks the parameters for combinations the simulation cannot run with.
func (p *Params) Validate() error {
	if p.LatticeSize < 2 {
		return fmt.Errorf("lattice size must be at least 2 (got %d)", p.LatticeSize)
	}
	if p.Gamma0 == 0 {
		return fmt.Errorf("gamma_0 must be non-zero")
	}
	if p.Aniso == 0 {
		return fmt.Errorf("aniso must be non-zero")
	}
	if p.NTemps < 1 {
		return fmt.Errorf("the temperature schedule needs at least one stage (got %d)", p.NTemps)
	}
	if p.MaxSteps < 1 {
		return fmt.Errorf("max_steps must be at least 1 (got %d)", p.MaxSteps)
	}
	if p.MaxStableSteps < 1 {
		return fmt.Errorf("max_stable_steps must be at least 1 (got %d)", p.MaxStableSteps)
	}
	if p.Init != InitUniform && p.Init != InitRandom {
		return fmt.Errorf("unknown init mode %q", p.Init)
	}
	return nil
}

// Temperatures returns the temperature schedule, a linear ramp from TStart
// to TEnd. A single-stage schedule uses TStart only.
func (p *Params) Temperatures() []float64 {
	if p.NTemps == 1 {
		return []float64{p.TStart}
	}

	temps := make([]float64, p.NTemps)
	step := (p.TEnd - p.TStart) / float64(p.NTemps-1)
	for i := range temps {
		temps[i] = p.TStart + float64(i)*step
	}
	return temps
}
