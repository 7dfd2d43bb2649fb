// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package elastic

import (
	"context"
	"fmt"
	"math/cmplx"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Energy computes the elastic energy of a Fourier-space strain field,
//
//	E = sum_{q != 0} Re( e_ij(q) B_ijkl(q) conj(e_kl(q)) ) / (2 N^3)
//
// The sum over wavevectors is split into slabs along the first axis and the
// slabs are evaluated concurrently, one goroutine per slab up to the worker
// limit. A zero worker count means one worker per available CPU.
func Energy(ctx context.Context, k *Kernel, ft []CMat3, workers int) (float64, error) {
	n := k.N
	if len(ft) != n*n*n {
		return 0, fmt.Errorf("strain field has %d entries, the kernel grid has %d", len(ft), n*n*n)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	partial := make([]float64, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for x := 0; x < n; x++ {
		x := x
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			partial[x] = slabEnergy(k, ft, x)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0.0
	for _, e := range partial {
		total += e
	}
	return total / (2 * float64(n*n*n)), nil
}

// slabEnergy sums the energy contribution of all wavevectors with a given
// first-axis index. The q=0 mode has a zero kernel tensor so it naturally
// contributes nothing.
func slabEnergy(k *Kernel, ft []CMat3, x int) float64 {
	n := k.N
	acc := 0.0
	for y := 0; y < n; y++ {
		for z := 0; z < n; z++ {
			idx := (x*n+y)*n + z
			b := &k.B[idx]
			e := &ft[idx]
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					eij := e[i][j]
					for kk := 0; kk < 3; kk++ {
						for l := 0; l < 3; l++ {
							prod := eij * cmplx.Conj(e[kk][l])
							acc += b[i][j][kk][l] * real(prod)
						}
					}
				}
			}
		}
	}
	return acc
}
