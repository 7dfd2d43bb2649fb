// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package replica identifies one simulation instance within a launched set.
// When the process launcher starts N copies of the simulation binary, each
// copy discovers its rank from the launcher's environment and runs an
// independent annealing replica.
package replica

import (
	"fmt"
	"os"
	"strconv"
)

// Info identifies one replica of a launched set
type Info struct {
	// Rank is the index of this replica, in [0, Size)
	Rank int

	// Size is the total number of replicas that were launched
	Size int
}

// envPairs lists the rank/size environment variables of the supported
// process launchers, in detection order.
var envPairs = [][2]string{
	{"SLURM_PROCID", "SLURM_NTASKS"},
	{"OMPI_COMM_WORLD_RANK", "OMPI_COMM_WORLD_SIZE"},
	{"PMI_RANK", "PMI_SIZE"},
}

// Detect figures out the replica identity from the process launcher's
// environment. A process started outside any launcher is the single replica
// of a set of one.
func Detect() Info {
	for _, pair := range envPairs {
		rankStr := os.Getenv(pair[0])
		sizeStr := os.Getenv(pair[1])
		if rankStr == "" || sizeStr == "" {
			continue
		}
		rank, err := strconv.Atoi(rankStr)
		if err != nil {
			continue
		}
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 || rank < 0 || rank >= size {
			continue
		}
		return Info{Rank: rank, Size: size}
	}

	return Info{Rank: 0, Size: 1}
}

// Tag returns the suffix to append to output file names so that replicas do
// not overwrite each other. The single-replica case keeps the bare names.
func (i Info) Tag() string {
	if i.Size <= 1 {
		return ""
	}
	return fmt.Sprintf("_r%03d", i.Rank)
}
