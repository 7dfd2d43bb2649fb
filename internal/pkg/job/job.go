// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package job

import (
	"bytes"

	"github.com/hpcng/mcecm/internal/pkg/sys"
)

// CleanUpFn is a "function pointer" to call to clean up the system after the completion of a job
type CleanUpFn func(...interface{}) error

// GetOutputFn is a "function pointer" to call to gather the output of a run after completion of a job
type GetOutputFn func(*Job, *sys.Config) string

// GetErrorFn is a "function pointer" to call to gather stderr from a run after completion of a job
type GetErrorFn func(*Job, *sys.Config) string

// Job represents a simulation job to be submitted to the resource manager
type Job struct {
	// Name is the job name passed to the scheduler
	Name string

	// Partition is the scheduler partition to submit to (optional)
	Partition string

	// NNodes is the number of nodes to request
	NNodes int

	// NTasksPerNode is the number of tasks to start on each node
	NTasksPerNode int

	// NP is the total number of replicas to launch; when zero it is
	// derived from NNodes and NTasksPerNode
	NP int

	// TimeLimit is the wall-clock limit in scheduler syntax, e.g. "48:00:00" (optional)
	TimeLimit string

	// Mem is the per-node memory request in scheduler syntax, e.g. "64G" (optional)
	Mem string

	// UseSrun selects srun instead of mpirun as the process launcher inside the batch script
	UseSrun bool

	// Detach requests a fire-and-forget submission: the submit command
	// returns as soon as the scheduler accepted the job
	Detach bool

	// BatchScript is the path to the script required to start a job (optional)
	BatchScript string

	// AppBin is the path to the simulation binary, i.e., the binary to start
	AppBin string

	// Args is a set of arguments to pass to the simulation binary
	Args []string

	// CleanUp is the function to call once the job is completed to clean the system
	CleanUp CleanUpFn

	// OutBuffer is a buffer with the output of the job
	OutBuffer bytes.Buffer

	// ErrBuffer is a buffer with the stderr of the job
	ErrBuffer bytes.Buffer

	// GetOutput is the function to call to gather the output of the run based on the job manager that was used
	GetOutput GetOutputFn

	// GetError is the function to call to gather stderr of the run based on the job manager that was used
	GetError GetErrorFn
}

// NTasks returns the total number of tasks the job launches.
func (j *Job) NTasks() int {
	if j.NP > 0 {
		return j.NP
	}
	if j.NNodes > 0 && j.NTasksPerNode > 0 {
		return j.NNodes * j.NTasksPerNode
	}
	return 0
}
