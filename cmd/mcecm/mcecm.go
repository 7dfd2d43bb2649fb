// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// mcecm runs one replica of the Monte Carlo simulation of elastically
// constrained microstructure evolution. A process launcher (mpirun, srun)
// can start many copies of this binary; each copy detects its rank from the
// launcher's environment and anneals an independent replica.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gvallee/go_util/pkg/util"

	"github.com/hpcng/mcecm/internal/pkg/mc"
	"github.com/hpcng/mcecm/internal/pkg/params"
	"github.com/hpcng/mcecm/internal/pkg/replica"
	"github.com/hpcng/mcecm/internal/pkg/slurm"
)

func main() {
	configFile := flag.String("config", "", "path to the YAML parameter file")
	size := flag.Int("size", 0, "override the lattice size")
	seed := flag.Int64("seed", 0, "override the base random seed")
	steps := flag.Int("steps", 0, "override the maximum number of sweeps per stage")
	workers := flag.Int("workers", 0, "number of goroutines for the energy evaluation (0 = one per CPU)")
	outputDir := flag.String("o", "", "override the output directory")
	rank := flag.Int("replica", -1, "replica ID (default: detected from the launcher environment)")
	nreplicas := flag.Int("nreplicas", 0, "total number of replicas (default: detected from the launcher environment)")
	verbose := flag.Bool("v", false, "enable verbose output")
	flag.Parse()

	logFile := util.OpenLogFile("mcecm")
	defer logFile.Close()
	if *verbose {
		multiWriters := io.MultiWriter(os.Stdout, logFile)
		log.SetOutput(multiWriters)
	} else {
		log.SetOutput(logFile)
	}

	p := params.Defaults()
	if *configFile != "" {
		var err error
		p, err = params.Load(*configFile)
		if err != nil {
			log.Fatalf("failed to load the parameter file: %s", err)
		}
	}
	if *size > 0 {
		p.LatticeSize = *size
	}
	if *seed != 0 {
		p.Seed = *seed
	}
	if *steps > 0 {
		p.MaxSteps = *steps
	}
	if *workers > 0 {
		p.Workers = *workers
	}
	if *outputDir != "" {
		p.OutputDir = *outputDir
	}

	rep := replica.Detect()
	if *rank >= 0 && *nreplicas > 0 {
		rep = replica.Info{Rank: *rank, Size: *nreplicas}
	}
	log.Printf("* Replica %d of %d\n", rep.Rank, rep.Size)

	if nodelist := os.Getenv("SLURM_JOB_NODELIST"); nodelist != "" {
		nodes, err := slurm.ExpandNodeList(nodelist)
		if err != nil {
			log.Printf("unable to parse the node list %s: %s", nodelist, err)
		} else {
			log.Printf("* Allocation spans %d node(s): %s\n", len(nodes), strings.Join(nodes, ", "))
		}
	}

	engine, err := mc.New(p, rep)
	if err != nil {
		log.Fatalf("failed to set up the simulation: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = engine.Run(ctx)
	if err != nil {
		log.Fatalf("simulation failed: %s", err)
	}
	log.Printf("* Simulation complete; final energy: %g\n", engine.Energy)
}
