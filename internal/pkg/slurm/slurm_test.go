// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package slurm

import (
	"reflect"
	"testing"
)

func TestExpandNodeList(t *testing.T) {
	tests := []struct {
		nodelist string
		expected []string
	}{
		{"node1", []string{"node1"}},
		{"node[1-3]", []string{"node1", "node2", "node3"}},
		{"node[01-03]", []string{"node01", "node02", "node03"}},
		{"node[1,4]", []string{"node1", "node4"}},
		{"node[1-2],gpu5", []string{"node1", "node2", "gpu5"}},
		{"a[1-2],b[7-8]", []string{"a1", "a2", "b7", "b8"}},
	}

	for _, tt := range tests {
		nodes, err := ExpandNodeList(tt.nodelist)
		if err != nil {
			t.Fatalf("failed to expand %s: %s", tt.nodelist, err)
		}
		if !reflect.DeepEqual(nodes, tt.expected) {
			t.Fatalf("expanding %s returned %v instead of %v", tt.nodelist, nodes, tt.expected)
		}
	}
}

func TestExpandNodeListInvalid(t *testing.T) {
	invalid := []string{"node[1-3", "node[a-b]", "node[1-2-3]"}
	for _, nodelist := range invalid {
		_, err := ExpandNodeList(nodelist)
		if err == nil {
			t.Fatalf("expanding %s should have failed", nodelist)
		}
	}
}

func TestIsTerminalState(t *testing.T) {
	terminal := []string{"COMPLETED", "FAILED", "TIMEOUT", "CANCELLED", "CANCELLED by 1000"}
	for _, state := range terminal {
		if !IsTerminalState(state) {
			t.Fatalf("%s should be a terminal state", state)
		}
	}

	active := []string{"PENDING", "RUNNING", "CONFIGURING", ""}
	for _, state := range active {
		if IsTerminalState(state) {
			t.Fatalf("%s should not be a terminal state", state)
		}
	}
}
