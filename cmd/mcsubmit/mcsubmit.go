// Copyright (c) 2026, the mcecm developers. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hpcng/mcecm/internal/pkg/jm"
	"github.com/hpcng/mcecm/internal/pkg/job"
	"github.com/hpcng/mcecm/internal/pkg/monitor"
	"github.com/hpcng/mcecm/internal/pkg/results"
	"github.com/hpcng/mcecm/internal/pkg/sys"
)

func newRootCmd(logFile *os.File) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "mcsubmit",
		Short:        "Request cluster resources and launch the mcecm simulation",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				multiWriters := io.MultiWriter(os.Stdout, logFile)
				log.SetOutput(multiWriters)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also print the log to stdout")

	cmd.AddCommand(newSubmitCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newCancelCmd())
	cmd.AddCommand(newResultsCmd())

	return cmd
}

func newSubmitCmd() *cobra.Command {
	var j job.Job
	var detach bool
	var force bool
	var persistent string

	cmd := &cobra.Command{
		Use:   "submit -a <binary> [-- <binary args...>]",
		Short: "Generate the batch script for a simulation run and submit it",
		RunE: func(cmd *cobra.Command, args []string) error {
			sysCfg := sys.GetDefaultSysConfig()
			sysCfg.Persistent = persistent
			err := os.MkdirAll(sysCfg.ScratchDir, 0755)
			if err != nil {
				return fmt.Errorf("failed to create scratch directory %s: %s", sysCfg.ScratchDir, err)
			}

			j.Detach = detach
			j.Args = args

			// Skip runs that already passed unless asked otherwise
			records, err := results.Load(sysCfg.OutputFile)
			if err != nil {
				return fmt.Errorf("failed to load existing results: %s", err)
			}
			if !force && results.Passed(records, j.Name, j.NTasks()) {
				fmt.Printf("Run %s (np=%d) already passed, skipping (use --force to resubmit)\n", j.Name, j.NTasks())
				return nil
			}

			jobmgr := jm.Detect()
			err = jobmgr.Load(&jobmgr, &sysCfg)
			if err != nil {
				return fmt.Errorf("failed to load the %s job manager: %s", jobmgr.ID, err)
			}
			log.Printf("* Using the %s job manager\n", jobmgr.ID)

			submitCmd, err := jm.PrepareLaunchCmd(&j, &jobmgr, &sysCfg)
			if err != nil {
				return fmt.Errorf("failed to prepare the launch command: %s", err)
			}
			defer submitCmd.CancelFn()
			if j.CleanUp != nil && persistent == "" {
				defer j.CleanUp()
			}

			// Keep a manifest of what was launched next to the job outputs
			submitCmd.ManifestDir = sysCfg.ScratchDir
			if j.BatchScript != "" {
				submitCmd.ManifestFileHash = append(submitCmd.ManifestFileHash, j.BatchScript)
			}

			res := submitCmd.Run()
			execErr := res.Err

			pass := execErr == nil
			if detach && jobmgr.ID == jm.SlurmID && execErr == nil {
				jobID, err := monitor.ParseJobID(j.OutBuffer.String())
				if err != nil {
					return fmt.Errorf("job was submitted but its ID could not be determined: %s", err)
				}
				fmt.Printf("Job %s submitted; track it with 'mcsubmit status -j %s'\n", jobID, jobID)
				return nil
			}
			var note string
			if execErr != nil {
				note = strings.TrimSpace(j.GetError(&j, &sysCfg))
				if note == "" {
					note = execErr.Error()
				}
				fmt.Printf("Run failed: %s\n", execErr)
			} else {
				note = "COMPLETED"
				fmt.Printf("Run completed\n")
			}

			err = results.Save(sysCfg.OutputFile, results.Result{
				JobName: j.Name,
				Backend: jobmgr.ID,
				NP:      j.NTasks(),
				Pass:    pass,
				Note:    note,
			})
			if err != nil {
				return fmt.Errorf("failed to record the run: %s", err)
			}

			return execErr
		},
	}

	cmd.Flags().StringVarP(&j.Name, "name", "n", "mc_ecm", "job name")
	cmd.Flags().StringVarP(&j.Partition, "partition", "p", "", "partition to submit to (default from mcecm.conf)")
	cmd.Flags().IntVar(&j.NNodes, "nodes", 4, "number of nodes to request")
	cmd.Flags().IntVar(&j.NTasksPerNode, "ntasks-per-node", 16, "number of tasks per node")
	cmd.Flags().IntVar(&j.NP, "np", 0, "total number of replicas (default nodes * ntasks-per-node)")
	cmd.Flags().StringVarP(&j.TimeLimit, "time", "t", "", "wall-clock limit (default from mcecm.conf)")
	cmd.Flags().StringVarP(&j.Mem, "mem", "m", "", "per-node memory request (default from mcecm.conf)")
	cmd.Flags().StringVarP(&j.AppBin, "app", "a", "", "path to the simulation binary to launch")
	cmd.Flags().BoolVar(&j.UseSrun, "use-srun", false, "launch through srun instead of mpirun")
	cmd.Flags().BoolVarP(&detach, "detach", "d", false, "return as soon as the scheduler accepted the job")
	cmd.Flags().BoolVar(&force, "force", false, "submit even if an identical run already passed")
	cmd.Flags().StringVar(&persistent, "persistent", "", "keep batch scripts and job outputs under this directory")
	cmd.MarkFlagRequired("app")

	return cmd
}

func newStatusCmd() *cobra.Command {
	var jobID string
	var wait bool

	cmd := &cobra.Command{
		Use:   "status -j <jobID>",
		Short: "Query the scheduler for the state of a submitted job",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := monitor.New(jobID)
			if !wait {
				state, err := m.State()
				if err != nil {
					return err
				}
				fmt.Printf("Job %s: %s\n", jobID, state)
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), sys.JobTimeout)
			defer cancel()
			state, err := m.Wait(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Job %s reached terminal state: %s\n", jobID, state)
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobID, "job", "j", "", "scheduler job ID")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "poll until the job reaches a terminal state")
	cmd.MarkFlagRequired("job")

	return cmd
}

func newCancelCmd() *cobra.Command {
	var jobID string

	cmd := &cobra.Command{
		Use:   "cancel -j <jobID>",
		Short: "Cancel a submitted job",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := monitor.New(jobID).Cancel()
			if err != nil {
				return err
			}
			fmt.Printf("Job %s cancelled\n", jobID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobID, "job", "j", "", "scheduler job ID")
	cmd.MarkFlagRequired("job")

	return cmd
}

func newResultsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "results",
		Short: "List the recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = sys.GetDefaultSysConfig().OutputFile
			}
			records, err := results.Load(file)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No run recorded yet")
				return nil
			}
			results.Print(records)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "results file to read (default the tool's results file)")

	return cmd
}
