// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package lattice

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	l, err := New(4)
	if err != nil {
		t.Fatalf("failed to create lattice: %s", err)
	}
	if l.Sites() != 64 {
		t.Fatalf("expected 64 sites, got %d", l.Sites())
	}
	for i := 0; i < l.Sites(); i++ {
		if l.At(i) != 1 {
			t.Fatalf("site %d is %d instead of 1", i, l.At(i))
		}
	}

	_, err = New(1)
	if err == nil {
		t.Fatalf("creating a lattice of size 1 should have failed")
	}
}

func TestRandomizeStaysInRange(t *testing.T) {
	l, err := New(6)
	if err != nil {
		t.Fatalf("failed to create lattice: %s", err)
	}

	rng := rand.New(rand.NewSource(7))
	l.Randomize(rng)

	seen := make(map[uint8]int)
	for i := 0; i < l.Sites(); i++ {
		spin := l.At(i)
		if spin < 1 || spin > NumVariants {
			t.Fatalf("site %d carries invalid variant %d", i, spin)
		}
		seen[spin]++
	}
	if len(seen) != NumVariants {
		t.Fatalf("expected all %d variants on a randomized lattice, saw %d", NumVariants, len(seen))
	}
}

func TestProposeChangesVariant(t *testing.T) {
	l, err := New(4)
	if err != nil {
		t.Fatalf("failed to create lattice: %s", err)
	}

	rng := rand.New(rand.NewSource(11))
	l.Randomize(rng)

	for i := 0; i < 1000; i++ {
		idx, proposed := l.Propose(rng)
		if proposed < 1 || proposed > NumVariants {
			t.Fatalf("proposed variant %d is out of range", proposed)
		}
		if proposed == l.At(idx) {
			t.Fatalf("proposed variant must differ from the current one")
		}
	}
}

func TestWriteSpins(t *testing.T) {
	l, err := New(2)
	if err != nil {
		t.Fatalf("failed to create lattice: %s", err)
	}
	l.Set(l.Idx(0, 0, 1), 3)

	path := filepath.Join(t.TempDir(), "final_spins.txt")
	err = l.WriteSpins(path)
	if err != nil {
		t.Fatalf("failed to write spins: %s", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %s", path, err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != l.Sites() {
		t.Fatalf("expected %d lines, got %d", l.Sites(), len(lines))
	}
	if lines[1] != "3" {
		t.Fatalf("line 2 is %s instead of 3", lines[1])
	}
}
