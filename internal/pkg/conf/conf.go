// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package conf manages the tool's key=value configuration file. The file
// stores the submission defaults (partition, wall-clock limit, memory) so
// that they do not need to be repeated on every command line.
package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/gvallee/go_util/pkg/util"
	"github.com/gvallee/kv/pkg/kv"
	"github.com/hpcng/mcecm/internal/pkg/slurm"
)

const defaultContent = `# mcecm configuration
#
# Default resource requests used when submitting a simulation.
` + slurm.PartitionKey + ` = compute
` + slurm.TimeLimitKey + ` = 48:00:00
` + slurm.MemKey + ` = 64G
`

// Create ensures that the tool's configuration file exists, creating a
// default one when necessary, and returns its path.
func Create(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("undefined configuration file path")
	}

	if util.PathExists(path) {
		return path, nil
	}

	err := os.WriteFile(path, []byte(defaultContent), 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create configuration file %s: %s", path, err)
	}

	return path, nil
}

// Load reads the tool's configuration file, creating a default one first
// when it does not exist yet.
func Load(path string) ([]kv.KV, error) {
	_, err := Create(path)
	if err != nil {
		return nil, err
	}

	kvs, err := kv.LoadKeyValueConfig(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load configuration from %s: %s", path, err)
	}

	return kvs, nil
}

// UpdateEntry sets the value of a key in the configuration file, appending
// the entry when the key is not present yet.
func UpdateEntry(path string, key string, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %s", path, err)
	}

	updated := false
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		tokens := strings.SplitN(trimmed, "=", 2)
		if len(tokens) == 2 && strings.TrimSpace(tokens[0]) == key {
			lines[i] = key + " = " + value
			updated = true
		}
	}
	if !updated {
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		lines = append(lines, key+" = "+value, "")
	}

	err = os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
	if err != nil {
		return fmt.Errorf("failed to update %s: %s", path, err)
	}

	return nil
}
