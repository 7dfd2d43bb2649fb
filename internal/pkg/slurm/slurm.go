// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package slurm

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// EnabledKey is the key used in the mcecm.conf file to specify if Slurm shall be used
	EnabledKey = "enable_slurm"

	// PartitionKey is the key to use to retrieve the optional partition name that
	// can be specified in the tool's configuration file.
	PartitionKey = "slurm_partition"

	// TimeLimitKey is the key to use to retrieve the optional wall-clock limit that
	// can be specified in the tool's configuration file.
	TimeLimitKey = "slurm_time_limit"

	// MemKey is the key to use to retrieve the optional per-node memory request that
	// can be specified in the tool's configuration file.
	MemKey = "slurm_mem"

	// ScriptCmdPrefix is the prefix to add to a script
	ScriptCmdPrefix = "#SBATCH"
)

// Job states reported by squeue/sacct that we care about. The list follows
// the Slurm documentation; states not listed here are treated as pending.
const (
	StateCompleted = "COMPLETED"
	StateFailed    = "FAILED"
	StateCancelled = "CANCELLED"
	StateTimeout   = "TIMEOUT"
	StateRunning   = "RUNNING"
	StatePending   = "PENDING"
)

// IsTerminalState reports whether a job state means the job is done,
// successfully or not. sacct decorates some states (e.g., "CANCELLED by 0"),
// so only the first word is considered.
func IsTerminalState(state string) bool {
	s := strings.ToUpper(state)
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	switch s {
	case StateCompleted, StateFailed, StateTimeout:
		return true
	}
	return strings.HasPrefix(s, StateCancelled)
}

// ExpandNodeList expands a compressed Slurm node list (e.g., "node[1-3],gpu5")
// into the list of individual host names.
func ExpandNodeList(nodelist string) ([]string, error) {
	var nodes []string

	for _, entry := range splitTopLevel(nodelist) {
		if entry == "" {
			continue
		}
		open := strings.Index(entry, "[")
		if open == -1 {
			nodes = append(nodes, entry)
			continue
		}
		close := strings.Index(entry, "]")
		if close == -1 || close < open {
			return nil, fmt.Errorf("malformed node list entry: %s", entry)
		}
		prefix := entry[:open]
		for _, rangeSpec := range strings.Split(entry[open+1:close], ",") {
			bounds := strings.Split(rangeSpec, "-")
			switch len(bounds) {
			case 1:
				nodes = append(nodes, prefix+bounds[0])
			case 2:
				low, err := strconv.Atoi(bounds[0])
				if err != nil {
					return nil, fmt.Errorf("invalid node index %s: %s", bounds[0], err)
				}
				high, err := strconv.Atoi(bounds[1])
				if err != nil {
					return nil, fmt.Errorf("invalid node index %s: %s", bounds[1], err)
				}
				width := len(bounds[0])
				for i := low; i <= high; i++ {
					nodes = append(nodes, fmt.Sprintf("%s%0*d", prefix, width, i))
				}
			default:
				return nil, fmt.Errorf("malformed node range: %s", rangeSpec)
			}
		}
	}

	return nodes, nil
}

// splitTopLevel splits a node list on commas that are not inside brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, c := range s {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}
