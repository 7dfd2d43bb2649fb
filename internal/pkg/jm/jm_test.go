// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package jm

import (
	"testing"

	"github.com/gvallee/go_util/pkg/util"
	"github.com/hpcng/mcecm/internal/pkg/job"
	"github.com/hpcng/mcecm/internal/pkg/sys"
)

func TestDetect(t *testing.T) {
	jm := Detect()
	t.Logf("Selected job manager: %s\n", jm.ID)
}

func TestTempFile(t *testing.T) {
	var j job.Job
	var sysCfg sys.Config
	j.Name = "mc_ecm"

	err := TempFile(&j, &sysCfg)
	if err != nil {
		t.Fatalf("unable to create temporary file: %s", err)
	}
	if j.BatchScript == "" {
		t.Fatalf("temporary file path is undefined")
	}

	t.Logf("Temporary file is: %s\n", j.BatchScript)
	err = j.CleanUp()
	if err != nil {
		t.Fatalf("failed to clean up: %s", err)
	}

	if util.PathExists(j.BatchScript) {
		t.Fatalf("temporary file %s still exists even after cleanup", j.BatchScript)
	}
}

func TestNativeSubmit(t *testing.T) {
	var sysCfg sys.Config

	j := job.Job{
		Name:   "mc_ecm",
		NP:     64,
		AppBin: "/opt/mcecm/bin/mcecm",
	}

	cmd, err := NativeSubmit(&j, &sysCfg)
	if err != nil {
		t.Fatalf("native submit failed: %s", err)
	}
	if cmd.BinPath != "mpirun" {
		t.Fatalf("wrong launcher returned: %s", cmd.BinPath)
	}
	if len(cmd.CmdArgs) < 3 || cmd.CmdArgs[0] != "-n" || cmd.CmdArgs[1] != "64" {
		t.Fatalf("unexpected mpirun arguments: %v", cmd.CmdArgs)
	}
}

func TestNativeSubmitNoBinary(t *testing.T) {
	var j job.Job
	var sysCfg sys.Config

	_, err := NativeSubmit(&j, &sysCfg)
	if err == nil {
		t.Fatalf("submitting a job without a binary should have failed")
	}
}
