// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package lattice holds the N^3 spin lattice the Monte Carlo simulation
// evolves. Each site carries one of three orientation variants.
package lattice

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

// NumVariants is the number of orientation variants a site can take
const NumVariants = 3

// Lattice is an N^3 grid of spins in {1, 2, 3}
type Lattice struct {
	// N is the edge length of the lattice
	N int

	// Spins is the flat spin storage, indexed x*N*N + y*N + z
	Spins []uint8
}

// New returns a lattice of edge length n with all sites set to variant 1.
func New(n int) (*Lattice, error) {
	if n < 2 {
		return nil, fmt.Errorf("lattice size must be at least 2 (got %d)", n)
	}
	l := &Lattice{
		N:     n,
		Spins: make([]uint8, n*n*n),
	}
	l.Fill(1)
	return l, nil
}

// Sites returns the total number of lattice sites.
func (l *Lattice) Sites() int {
	return len(l.Spins)
}

// Idx converts lattice coordinates into the flat index.
func (l *Lattice) Idx(x, y, z int) int {
	return (x*l.N+y)*l.N + z
}

// At returns the spin at a given site.
func (l *Lattice) At(idx int) uint8 {
	return l.Spins[idx]
}

// Set assigns the spin at a given site.
func (l *Lattice) Set(idx int, spin uint8) {
	l.Spins[idx] = spin
}

// Fill sets every site to the same variant.
func (l *Lattice) Fill(spin uint8) {
	for i := range l.Spins {
		l.Spins[i] = spin
	}
}

// Randomize assigns a uniformly random variant to every site.
func (l *Lattice) Randomize(rng *rand.Rand) {
	for i := range l.Spins {
		l.Spins[i] = uint8(1 + rng.Intn(NumVariants))
	}
}

// Propose returns a uniformly random site and a variant different from the
// one currently there.
func (l *Lattice) Propose(rng *rand.Rand) (int, uint8) {
	idx := rng.Intn(len(l.Spins))
	current := l.Spins[idx]

	// Pick among the two other variants
	offset := uint8(1 + rng.Intn(NumVariants-1))
	proposed := current + offset
	if proposed > NumVariants {
		proposed -= NumVariants
	}

	return idx, proposed
}

// WriteSpins dumps the lattice to a text file, one spin per line, in flat
// index order.
func (l *Lattice) WriteSpins(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %s", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, spin := range l.Spins {
		_, err := w.WriteString(strconv.Itoa(int(spin)) + "\n")
		if err != nil {
			return fmt.Errorf("failed to write to %s: %s", path, err)
		}
	}

	return w.Flush()
}
