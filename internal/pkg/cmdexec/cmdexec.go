// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package cmdexec

import (
	"bytes"
	"context"
	"log"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gvallee/go_util/pkg/util"
	"github.com/hpcng/mcecm/internal/pkg/manifest"
	"github.com/hpcng/mcecm/internal/pkg/sys"
)

// Result represents the result of the execution of a command
type Result struct {
	// Err is the Go error associated to the command execution
	Err error
	// Stdout is the messages that were displayed on stdout during the execution of the command
	Stdout string
	// Stderr is the messages that were displayed on stderr during the execution of the command
	Stderr string
}

// Cmd represents a command to be executed
type Cmd struct {
	// Cmd represents the underlying command once it is prepared
	Cmd *exec.Cmd

	// Timeout is the maximum time a command can run
	Timeout time.Duration

	// BinPath is the path to the binary to execute
	BinPath string

	// CmdArgs is a slice of string representing the command's arguments
	CmdArgs []string

	// ExecDir is the directory where to execute the command
	ExecDir string

	// Env is a slice of string representing the environment to be used with the command
	Env []string

	// Ctx is the context of the command to execute
	Ctx context.Context

	// CancelFn is the function to cancel the command
	CancelFn context.CancelFunc

	// ManifestDir is the directory where to create the manifest related to the command execution
	ManifestDir string

	// ManifestData is extra content to add to the manifest
	ManifestData []string

	// ManifestFileHash is a list of absolute paths to files for which we want a hash in the manifest
	ManifestFileHash []string
}

// Run executes a command and creates the appropriate manifest (when requested)
func (c *Cmd) Run() Result {
	var res Result

	cmdTimeout := c.Timeout
	if cmdTimeout == 0 {
		cmdTimeout = sys.CmdTimeout * time.Minute
	}

	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	if c.Cmd == nil {
		c.Cmd = exec.CommandContext(ctx, c.BinPath, c.CmdArgs...)
		c.Cmd.Dir = c.ExecDir
		c.Cmd.Stdout = &stdout
		c.Cmd.Stderr = &stderr
		if len(c.Env) > 0 {
			c.Cmd.Env = c.Env
		}
	}

	log.Printf("-> Running %s %s\n", c.BinPath, strings.Join(c.CmdArgs, " "))
	err := c.Cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	if err != nil {
		res.Err = err
		return res
	}

	if c.ManifestDir != "" {
		path := filepath.Join(c.ManifestDir, "exec.MANIFEST")
		if !util.FileExists(path) {
			data := []string{"Command: " + c.BinPath + " " + strings.Join(c.CmdArgs, " ")}
			data = append(data, "Execution path: "+c.ExecDir)
			data = append(data, "Execution time: "+time.Now().Format("2006-01-02 15:04:05"))
			data = append(data, c.ManifestData...)

			filesToHash := []string{c.BinPath} // we always get the fingerprint of the binary we execute
			filesToHash = append(filesToHash, c.ManifestFileHash...)
			data = append(data, manifest.HashFiles(filesToHash)...)

			err := manifest.Create(path, data)
			if err != nil {
				// This is not a fatal error, we just log it
				log.Printf("failed to create manifest: %s", err)
			}
		} else {
			log.Printf("Manifest %s already exists, skipping...", path)
			err := manifest.Check(path)
			if err != nil {
				log.Printf("manifest check failed: %s", err)
			}
		}
	}

	return res
}
