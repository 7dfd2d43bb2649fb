// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package mc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpcng/mcecm/internal/pkg/elastic"
)

// stageLogs gathers the per-stage output files: the total energy log and
// the macro-strain log, one line per sweep.
type stageLogs struct {
	dir    string
	suffix string

	energyFile *os.File
	strainFile *os.File
	energyW    *bufio.Writer
	strainW    *bufio.Writer
}

func newStageLogs(dir string, temperature float64, tag string) (*stageLogs, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %s", dir, err)
	}

	logs := &stageLogs{
		dir:    dir,
		suffix: fmt.Sprintf("_T%.2f%s", temperature, tag),
	}

	logs.energyFile, err = os.Create(filepath.Join(dir, "totalE"+logs.suffix+".txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to create the energy log: %s", err)
	}
	logs.strainFile, err = os.Create(filepath.Join(dir, "macroStrain"+logs.suffix+".txt"))
	if err != nil {
		logs.energyFile.Close()
		return nil, fmt.Errorf("failed to create the macro-strain log: %s", err)
	}

	logs.energyW = bufio.NewWriter(logs.energyFile)
	logs.strainW = bufio.NewWriter(logs.strainFile)
	return logs, nil
}

// Record appends one sweep's energy and macro strain to the logs.
func (l *stageLogs) Record(energy float64, macro elastic.Mat3) error {
	_, err := fmt.Fprintf(l.energyW, "%g\n", energy)
	if err != nil {
		return fmt.Errorf("failed to write the energy log: %s", err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sep := " "
			if i == 2 && j == 2 {
				sep = "\n"
			}
			_, err := fmt.Fprintf(l.strainW, "%g%s", macro[i][j], sep)
			if err != nil {
				return fmt.Errorf("failed to write the macro-strain log: %s", err)
			}
		}
	}

	return nil
}

// spinsPath returns the path of a spin dump for this stage.
func (l *stageLogs) spinsPath(prefix string) string {
	return filepath.Join(l.dir, prefix+l.suffix+".txt")
}

// Close flushes and closes the stage logs.
func (l *stageLogs) Close() error {
	l.energyW.Flush()
	l.strainW.Flush()
	err1 := l.energyFile.Close()
	err2 := l.strainFile.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
