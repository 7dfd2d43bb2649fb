// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package conf

import (
	"path/filepath"
	"testing"

	"github.com/gvallee/kv/pkg/kv"
	"github.com/hpcng/mcecm/internal/pkg/slurm"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcecm.conf")

	kvs, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load configuration: %s", err)
	}

	if kv.GetValue(kvs, slurm.PartitionKey) != "compute" {
		t.Fatalf("default partition is %s instead of compute", kv.GetValue(kvs, slurm.PartitionKey))
	}
	if kv.GetValue(kvs, slurm.TimeLimitKey) != "48:00:00" {
		t.Fatalf("default time limit is %s instead of 48:00:00", kv.GetValue(kvs, slurm.TimeLimitKey))
	}
}

func TestUpdateEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcecm.conf")
	_, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load configuration: %s", err)
	}

	// Update an existing key
	err = UpdateEntry(path, slurm.PartitionKey, "debug")
	if err != nil {
		t.Fatalf("failed to update entry: %s", err)
	}

	// Add a new key
	err = UpdateEntry(path, slurm.EnabledKey, "true")
	if err != nil {
		t.Fatalf("failed to add entry: %s", err)
	}

	kvs, err := Load(path)
	if err != nil {
		t.Fatalf("failed to reload configuration: %s", err)
	}
	if kv.GetValue(kvs, slurm.PartitionKey) != "debug" {
		t.Fatalf("partition is %s instead of debug", kv.GetValue(kvs, slurm.PartitionKey))
	}
	if kv.GetValue(kvs, slurm.EnabledKey) != "true" {
		t.Fatalf("%s is %s instead of true", slurm.EnabledKey, kv.GetValue(kvs, slurm.EnabledKey))
	}
}
