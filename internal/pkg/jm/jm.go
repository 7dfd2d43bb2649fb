// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package jm

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gvallee/go_util/pkg/util"
	"github.com/hpcng/mcecm/internal/pkg/cmdexec"
	"github.com/hpcng/mcecm/internal/pkg/job"
	"github.com/hpcng/mcecm/internal/pkg/mcerr"
	"github.com/hpcng/mcecm/internal/pkg/sys"
)

const (
	// NativeID is the value set to JM.ID when mpirun shall be used directly to start a run
	NativeID = "native"

	// SlurmID is the value set to JM.ID when Slurm shall be used to submit a job
	SlurmID = "slurm"
)

// SubmitFn is a "function pointer" that lets us prepare the submission of a job with a given job manager
type SubmitFn func(*job.Job, *sys.Config) (cmdexec.Cmd, error)

// LoadFn is a "function pointer" that lets us load a job manager once it has been detected
type LoadFn func(*JM, *sys.Config) error

// JM is the structure representing a specific job manager
type JM struct {
	// ID identifies which job manager has been detected on the system
	ID string

	// Load is the function to call when the job manager is selected
	Load LoadFn

	// Submit is the function to submit a job through the current job manager
	Submit SubmitFn
}

// Detect figures out which job manager must be used on the system and returns
// a structure that gathers all the data necessary to interact with it.
func Detect() JM {
	// Default job manager: launch through mpirun directly
	loaded, comp := NativeDetect()
	if !loaded {
		log.Fatalln("unable to find a default job manager")
	}

	// Now we check if we can find better
	loaded, slurmComp := SlurmDetect()
	if loaded {
		return slurmComp
	}

	return comp
}

// TempFile creates the file that is used to store the batch script of a job.
// In persistent mode the script is kept under the persistent directory and
// reused across runs.
func TempFile(j *job.Job, sysCfg *sys.Config) error {
	filePrefix := "sbatch-" + j.Name
	path := ""
	if sysCfg.Persistent == "" {
		f, err := os.CreateTemp("", filePrefix+"-")
		if err != nil {
			return fmt.Errorf("failed to create temporary file: %s", err)
		}
		path = f.Name()
		f.Close()
	} else {
		fileName := filePrefix + ".sh"
		path = filepath.Join(sysCfg.Persistent, fileName)
		if util.PathExists(path) {
			j.BatchScript = path
			return mcerr.ErrFileExists
		}
	}
	j.BatchScript = path

	j.CleanUp = func(...interface{}) error {
		err := os.RemoveAll(path)
		if err != nil {
			return fmt.Errorf("unable to delete %s: %s", path, err)
		}
		return nil
	}

	return nil
}

// PrepareLaunchCmd interacts with a job manager backend to figure out how to launch a job
func PrepareLaunchCmd(j *job.Job, jobmgr *JM, sysCfg *sys.Config) (cmdexec.Cmd, error) {
	var cmd cmdexec.Cmd

	launchCmd, err := jobmgr.Submit(j, sysCfg)
	if err != nil {
		return cmd, fmt.Errorf("failed to create a launcher object: %s", err)
	}
	log.Printf("* Command object for '%s %s' is ready", launchCmd.BinPath, strings.Join(launchCmd.CmdArgs, " "))

	cmd.BinPath = launchCmd.BinPath
	cmd.CmdArgs = launchCmd.CmdArgs
	cmd.Env = launchCmd.Env
	cmd.Ctx, cmd.CancelFn = context.WithTimeout(context.Background(), sys.JobTimeout)
	cmd.Cmd = exec.CommandContext(cmd.Ctx, launchCmd.BinPath, launchCmd.CmdArgs...)
	cmd.Cmd.Stdout = &j.OutBuffer
	cmd.Cmd.Stderr = &j.ErrBuffer
	if len(launchCmd.Env) > 0 {
		cmd.Cmd.Env = launchCmd.Env
	}

	return cmd, nil
}
