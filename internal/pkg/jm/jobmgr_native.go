// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package jm

import (
	"fmt"

	"github.com/hpcng/mcecm/internal/pkg/cmdexec"
	"github.com/hpcng/mcecm/internal/pkg/job"
	"github.com/hpcng/mcecm/internal/pkg/mpirun"
	"github.com/hpcng/mcecm/internal/pkg/sys"
)

// NativeGetOutput retrieves the run's output after the completion of a job
func NativeGetOutput(j *job.Job, sysCfg *sys.Config) string {
	return j.OutBuffer.String()
}

// NativeGetError retrieves the error messages from a run after the completion of a job
func NativeGetError(j *job.Job, sysCfg *sys.Config) string {
	return j.ErrBuffer.String()
}

// NativeLoad is the function called when the native job manager is selected
func NativeLoad(jm *JM, sysCfg *sys.Config) error {
	return nil
}

// NativeSubmit is the function to call to start a run through the native job
// manager, i.e., by executing mpirun directly without going through a batch
// scheduler.
func NativeSubmit(j *job.Job, sysCfg *sys.Config) (cmdexec.Cmd, error) {
	var cmd cmdexec.Cmd

	if j.AppBin == "" {
		return cmd, fmt.Errorf("application binary is undefined")
	}

	args, err := mpirun.Args(j)
	if err != nil {
		return cmd, fmt.Errorf("unable to get mpirun arguments: %s", err)
	}
	cmd.BinPath = "mpirun"
	cmd.CmdArgs = args

	j.GetOutput = NativeGetOutput
	j.GetError = NativeGetError

	return cmd, nil
}

// NativeDetect returns the component for the native job manager. This is the
// default job manager so nothing is actually checked; if mpirun is not
// correctly installed the framework will pick it up at execution time.
func NativeDetect() (bool, JM) {
	var jm JM
	jm.ID = NativeID
	jm.Load = NativeLoad
	jm.Submit = NativeSubmit

	return true, jm
}
