// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package mcerr gathers the sentinel errors shared across the tool's packages.
package mcerr

import "errors"

var (
	// ErrFileExists indicates that a file already exists on the system
	ErrFileExists = errors.New("file already exists")
)
