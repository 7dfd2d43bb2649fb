// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package mpirun

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hpcng/mcecm/internal/pkg/job"
)

// Args returns the arguments to pass to mpirun to launch a given job.
func Args(j *job.Job) ([]string, error) {
	if j.AppBin == "" {
		return nil, fmt.Errorf("application binary is undefined")
	}

	var args []string
	if np := j.NTasks(); np > 0 {
		args = append(args, "-n", strconv.Itoa(np))
	}
	args = append(args, j.AppBin)
	args = append(args, j.Args...)

	return args, nil
}

// LauncherLine returns the process-launcher command line to embed in a batch
// script. mpirun is the default; srun is the alternative launcher and relies
// on the scheduler's task count rather than an explicit one.
func LauncherLine(j *job.Job) (string, error) {
	if j.UseSrun {
		if j.AppBin == "" {
			return "", fmt.Errorf("application binary is undefined")
		}
		line := "srun " + j.AppBin
		if len(j.Args) > 0 {
			line += " " + strings.Join(j.Args, " ")
		}
		return line, nil
	}

	args, err := Args(j)
	if err != nil {
		return "", err
	}
	return "mpirun " + strings.Join(args, " "), nil
}
