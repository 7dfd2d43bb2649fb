// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gvallee/go_util/pkg/util"
)

func getFileHash(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	hasher := sha256.New()
	_, err = io.Copy(hasher, f)
	if err != nil {
		return ""
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

// HashFiles returns the hash for a list of files (absolute paths)
func HashFiles(files []string) []string {
	var hashData []string

	for _, file := range files {
		hashData = append(hashData, file+": "+getFileHash(file))
	}

	return hashData
}

// Create a new manifest
func Create(filepath string, entries []string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %s", filepath, err)
	}
	defer f.Close()

	_, err = f.WriteString(strings.Join(entries, "\n") + "\n")
	if err != nil {
		return fmt.Errorf("failed to write to %s: %s", filepath, err)
	}

	err = os.Chmod(filepath, 0444)
	if err != nil {
		return fmt.Errorf("failed to set manifest to read only: %s", err)
	}

	return nil
}

// Check parses a given manifest and checks that the files it records still
// have the same hashes.
func Check(path string) error {
	if !util.FileExists(path) {
		// Not having a manifest is not an error
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest %s: %s", path, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		tokens := strings.Split(line, ": ")
		if len(tokens) != 2 {
			continue
		}
		file := tokens[0]
		recordedHash := tokens[1]
		if !util.FileExists(file) {
			continue
		}
		actualHash := getFileHash(file)
		if actualHash != recordedHash {
			return fmt.Errorf("hashes for %s differ (record: %s; actual: %s)", file, recordedHash, actualHash)
		}
	}

	return nil
}
