// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package jm

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/gvallee/kv/pkg/kv"
	"github.com/hpcng/mcecm/internal/pkg/cmdexec"
	"github.com/hpcng/mcecm/internal/pkg/conf"
	"github.com/hpcng/mcecm/internal/pkg/job"
	"github.com/hpcng/mcecm/internal/pkg/mcerr"
	"github.com/hpcng/mcecm/internal/pkg/mpirun"
	"github.com/hpcng/mcecm/internal/pkg/slurm"
	"github.com/hpcng/mcecm/internal/pkg/sys"
)

// SlurmDetect is the function used by our job management framework to figure
// out if Slurm can be used and if so return a JM structure with all the
// "function pointers" to interact with Slurm through our generic API.
func SlurmDetect() (bool, JM) {
	var jm JM

	_, err := exec.LookPath("sbatch")
	if err != nil {
		log.Println("* Slurm not detected")
		return false, jm
	}

	jm.ID = SlurmID
	jm.Load = SlurmLoad
	jm.Submit = SlurmSubmit

	return true, jm
}

// SlurmLoad is the function called when Slurm has been selected; it records
// in the tool's configuration file that Slurm is available on the system.
func SlurmLoad(jm *JM, sysCfg *sys.Config) error {
	kvs, err := conf.Load(sysCfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("unable to load configuration from %s: %s", sysCfg.ConfigFile, err)
	}
	if kv.GetValue(kvs, slurm.EnabledKey) == "" {
		err := conf.UpdateEntry(sysCfg.ConfigFile, slurm.EnabledKey, "true")
		if err != nil {
			return fmt.Errorf("unable to add Slurm entry in configuration file: %s", err)
		}
	}

	return nil
}

// SlurmGetOutput reads the content of the Slurm output file that is associated to a job
func SlurmGetOutput(j *job.Job, sysCfg *sys.Config) string {
	output, err := os.ReadFile(getJobOutputFilePath(j, sysCfg))
	if err != nil {
		return ""
	}

	return string(output)
}

// SlurmGetError reads the content of the Slurm error file that is associated to a job
func SlurmGetError(j *job.Job, sysCfg *sys.Config) string {
	errorTxt, err := os.ReadFile(getJobErrorFilePath(j, sysCfg))
	if err != nil {
		return ""
	}

	return string(errorTxt)
}

func getJobOutputFilePath(j *job.Job, sysCfg *sys.Config) string {
	outputFilename := j.Name + ".out"
	path := filepath.Join(sysCfg.ScratchDir, outputFilename)
	if sysCfg.Persistent != "" {
		path = filepath.Join(sysCfg.Persistent, outputFilename)
	}
	return path
}

func getJobErrorFilePath(j *job.Job, sysCfg *sys.Config) string {
	errorFilename := j.Name + ".err"
	path := filepath.Join(sysCfg.ScratchDir, errorFilename)
	if sysCfg.Persistent != "" {
		path = filepath.Join(sysCfg.Persistent, errorFilename)
	}
	return path
}

// applyDefaults fills the job's resource requests that were left empty with
// the defaults from the tool's configuration file.
func applyDefaults(j *job.Job, kvs []kv.KV) {
	if j.Partition == "" {
		j.Partition = kv.GetValue(kvs, slurm.PartitionKey)
	}
	if j.TimeLimit == "" {
		j.TimeLimit = kv.GetValue(kvs, slurm.TimeLimitKey)
	}
	if j.Mem == "" {
		j.Mem = kv.GetValue(kvs, slurm.MemKey)
	}
}

// GenerateBatchScript writes the batch script for a given job. Every
// directive is emitted only when the matching resource request is set.
func GenerateBatchScript(j *job.Job, sysCfg *sys.Config) error {
	// Sanity checks
	if j == nil {
		return fmt.Errorf("undefined job")
	}
	if j.AppBin == "" {
		return fmt.Errorf("application binary is undefined")
	}
	if sysCfg.ScratchDir == "" {
		return fmt.Errorf("undefined scratch directory")
	}

	err := TempFile(j, sysCfg)
	if err != nil {
		if err == mcerr.ErrFileExists {
			log.Printf("* Script %s already exists, skipping\n", j.BatchScript)
			return nil
		}
		return fmt.Errorf("unable to create batch script: %s", err)
	}

	// TempFile is supposed to set the path to the batch script
	if j.BatchScript == "" {
		return fmt.Errorf("batch script path is undefined")
	}

	scriptText := "#!/bin/bash\n#\n"
	if j.Name != "" {
		scriptText += slurm.ScriptCmdPrefix + " --job-name=" + j.Name + "\n"
	}
	if j.Partition != "" {
		scriptText += slurm.ScriptCmdPrefix + " --partition=" + j.Partition + "\n"
	}
	if j.NNodes > 0 {
		scriptText += slurm.ScriptCmdPrefix + " --nodes=" + strconv.Itoa(j.NNodes) + "\n"
	}
	if j.NTasksPerNode > 0 {
		scriptText += slurm.ScriptCmdPrefix + " --ntasks-per-node=" + strconv.Itoa(j.NTasksPerNode) + "\n"
	}
	if j.TimeLimit != "" {
		scriptText += slurm.ScriptCmdPrefix + " --time=" + j.TimeLimit + "\n"
	}
	if j.Mem != "" {
		scriptText += slurm.ScriptCmdPrefix + " --mem=" + j.Mem + "\n"
	}
	scriptText += slurm.ScriptCmdPrefix + " --error=" + getJobErrorFilePath(j, sysCfg) + "\n"
	scriptText += slurm.ScriptCmdPrefix + " --output=" + getJobOutputFilePath(j, sysCfg) + "\n"

	launcherLine, err := mpirun.LauncherLine(j)
	if err != nil {
		return fmt.Errorf("unable to get the launcher command line: %s", err)
	}
	scriptText += "\n" + launcherLine + "\n"

	err = os.WriteFile(j.BatchScript, []byte(scriptText), 0644)
	if err != nil {
		return fmt.Errorf("unable to write to file %s: %s", j.BatchScript, err)
	}

	return nil
}

// SlurmSubmit prepares the batch script necessary to start a given job.
//
// Note that a script does not need any specific environment to be submitted
func SlurmSubmit(j *job.Job, sysCfg *sys.Config) (cmdexec.Cmd, error) {
	var cmd cmdexec.Cmd
	cmd.BinPath = "sbatch"

	// Sanity checks
	if j == nil {
		return cmd, fmt.Errorf("job is undefined")
	}

	if !j.Detach {
		// We wait until the submitted job terminates
		cmd.CmdArgs = append(cmd.CmdArgs, "-W")
	}

	kvs, err := conf.Load(sysCfg.ConfigFile)
	if err != nil {
		return cmd, fmt.Errorf("unable to load configuration: %s", err)
	}
	applyDefaults(j, kvs)

	err = GenerateBatchScript(j, sysCfg)
	if err != nil {
		return cmd, fmt.Errorf("unable to generate Slurm script: %s", err)
	}
	cmd.CmdArgs = append(cmd.CmdArgs, j.BatchScript)

	j.GetOutput = SlurmGetOutput
	j.GetError = SlurmGetError

	return cmd, nil
}
