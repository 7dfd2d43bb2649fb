// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package results

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Result represents the outcome of a submitted run
type Result struct {
	// JobName is the name under which the job was submitted
	JobName string

	// Backend is the job manager that was used (slurm or native)
	Backend string

	// NP is the number of replicas the run launched
	NP int

	// Pass indicates whether the run completed successfully
	Pass bool

	// Note carries free-form details about the run (final job state, error summary)
	Note string
}

// Load reads a results file and returns the list of run records it holds.
// A missing file is not an error, it simply means no run was recorded yet.
func Load(outputFile string) ([]Result, error) {
	var existingResults []Result

	f, err := os.Open(outputFile)
	if err != nil {
		// No result file, it is okay
		return existingResults, nil
	}
	defer f.Close()

	lineReader := bufio.NewScanner(f)
	for lineReader.Scan() {
		line := lineReader.Text()
		if line == "" {
			continue
		}
		words := strings.Split(line, "\t")
		if len(words) < 5 {
			return existingResults, fmt.Errorf("invalid format: %s", line)
		}

		var newResult Result
		newResult.JobName = words[0]
		newResult.Backend = words[1]
		newResult.NP, err = strconv.Atoi(words[2])
		if err != nil {
			return existingResults, fmt.Errorf("invalid replica count %s: %s", words[2], err)
		}
		switch words[3] {
		case "PASS":
			newResult.Pass = true
		case "FAIL":
			newResult.Pass = false
		default:
			return existingResults, fmt.Errorf("invalid run result: %s", words[3])
		}
		newResult.Note = words[4]

		existingResults = append(existingResults, newResult)
	}

	return existingResults, nil
}

// Save appends a run record to the results file.
func Save(outputFile string, r Result) error {
	f, err := os.OpenFile(outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %s", outputFile, err)
	}
	defer f.Close()

	status := "FAIL"
	if r.Pass {
		status = "PASS"
	}
	// Notes are a single field of the record
	note := strings.ReplaceAll(r.Note, "\t", " ")
	note = strings.ReplaceAll(note, "\n", " ")

	_, err = f.WriteString(r.JobName + "\t" + r.Backend + "\t" + strconv.Itoa(r.NP) + "\t" + status + "\t" + note + "\n")
	if err != nil {
		return fmt.Errorf("failed to write result: %s", err)
	}

	return f.Sync()
}

// Passed reports whether a previous run with the same job name and replica
// count already succeeded.
func Passed(r []Result, jobName string, np int) bool {
	for i := 0; i < len(r); i++ {
		if r[i].JobName == jobName && r[i].NP == np && r[i].Pass {
			return true
		}
	}

	return false
}

// Print writes a human readable view of the records to stdout.
func Print(r []Result) {
	for _, res := range r {
		status := "FAIL"
		if res.Pass {
			status = "PASS"
		}
		fmt.Printf("%s\t%s\tnp=%d\t%s\t%s\n", res.JobName, res.Backend, res.NP, status, res.Note)
	}
}
