// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package sys

import (
	"os"
	"path/filepath"
	"time"
)

// Config captures the system configuration aspects that are necessary
// to prepare and launch simulation runs
type Config struct {
	BinPath    string // Path to the current binary
	CurPath    string // Current path
	ScratchDir string // Where batch scripts and job output files are written
	Persistent string // When set, scripts and outputs are kept under this directory instead of temporary files
	ConfigFile string // Path to the tool's configuration file
	OutputFile string // Path to the results file
	Debug      bool   // Debug mode is active/inactive
	Verbose    bool   // Verbose mode is active/inactive
}

const (
	// CmdTimeout is the maximum time, in minutes, we allow a short external command to run
	CmdTimeout = 10

	// JobTimeout is the maximum time we wait for a submitted job to terminate
	JobTimeout = 72 * time.Hour

	// ToolName is the name used for the tool's configuration directory
	ToolName = "mcecm"

	// ConfigFileName is the name of the tool's configuration file
	ConfigFileName = "mcecm.conf"
)

// ConfigDir returns the directory where the tool's configuration lives,
// creating it if necessary.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, "."+ToolName)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return ""
		}
	}
	return dir
}

// GetDefaultSysConfig returns a system configuration with all the defaults
// set so that a command can run without any further setup.
func GetDefaultSysConfig() Config {
	var cfg Config

	bin, err := os.Executable()
	if err == nil {
		cfg.BinPath = filepath.Dir(bin)
	}
	cfg.CurPath, _ = os.Getwd()
	cfg.ScratchDir = filepath.Join(ConfigDir(), "scratch")
	cfg.ConfigFile = filepath.Join(ConfigDir(), ConfigFileName)
	cfg.OutputFile = filepath.Join(ConfigDir(), "runs.txt")

	return cfg
}
