// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package monitor tracks the state of jobs that were handed to the batch
// scheduler. The scheduler is an external collaborator: everything here goes
// through its command line tools (squeue, sacct, scancel) and parses their
// output.
package monitor

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hpcng/mcecm/internal/pkg/slurm"
)

// DefaultPollInterval is the time between two job state queries
const DefaultPollInterval = 5 * time.Second

var submitRe = regexp.MustCompile(`Submitted batch job (\d+)`)

// ParseJobID extracts the job ID from the output of sbatch.
func ParseJobID(sbatchOutput string) (string, error) {
	matches := submitRe.FindStringSubmatch(sbatchOutput)
	if len(matches) != 2 {
		return "", errors.Errorf("unable to find a job ID in %q", strings.TrimSpace(sbatchOutput))
	}
	return matches[1], nil
}

// runner abstracts the execution of a scheduler command so that state
// parsing can be exercised without a live scheduler.
type runner func(bin string, args ...string) (string, error)

func run(bin string, args ...string) (string, error) {
	out, err := exec.Command(bin, args...).Output()
	return string(out), err
}

// Monitor polls the scheduler for the state of a job
type Monitor struct {
	// JobID is the scheduler-assigned identifier of the job
	JobID string

	// PollInterval is the time between two state queries
	PollInterval time.Duration

	run runner
}

// New returns a monitor for a given job ID.
func New(jobID string) *Monitor {
	return &Monitor{
		JobID:        jobID,
		PollInterval: DefaultPollInterval,
		run:          run,
	}
}

// State queries the scheduler for the current state of the job. squeue only
// knows about active jobs so sacct is used as a fallback once the job left
// the queue.
func (m *Monitor) State() (string, error) {
	out, err := m.run("squeue", "--noheader", "-j", m.JobID, "-o", "%T")
	if err == nil {
		if state := strings.TrimSpace(out); state != "" {
			return state, nil
		}
	}

	// The job is no longer in the queue, ask the accounting database
	out, err = m.run("sacct", "-j", m.JobID, "-o", "State", "-n", "-X", "-P")
	if err != nil {
		return "", errors.Wrapf(err, "failed to query the state of job %s", m.JobID)
	}
	state := strings.TrimSpace(out)
	if state == "" {
		return "", errors.Errorf("job %s is unknown to the scheduler", m.JobID)
	}
	// sacct may report one state per job step, the first one is the job itself
	if idx := strings.IndexByte(state, '\n'); idx != -1 {
		state = state[:idx]
	}
	return state, nil
}

// Wait polls the scheduler until the job reaches a terminal state or the
// context is done, and returns the final state.
func (m *Monitor) Wait(ctx context.Context) (string, error) {
	interval := m.PollInterval
	if interval == 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		state, err := m.State()
		if err != nil {
			return "", err
		}
		if slurm.IsTerminalState(state) {
			return state, nil
		}

		select {
		case <-ctx.Done():
			return state, errors.Wrapf(ctx.Err(), "gave up waiting for job %s (last state: %s)", m.JobID, state)
		case <-ticker.C:
		}
	}
}

// Cancel asks the scheduler to cancel the job.
func (m *Monitor) Cancel() error {
	_, err := m.run("scancel", m.JobID)
	if err != nil {
		return errors.Wrapf(err, "failed to cancel job %s", m.JobID)
	}
	return nil
}
