package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nwbsweep",
		Short: "nwbsweep - status reporting for NWB compression-sweep array jobs",
		Long: `nwbsweep consolidates the state of a chunk/compression parameter sweep
submitted as a Slurm array job.

It maps each array task back to its configuration row, polls the scheduler's
accounting database for task state and wall time, pulls a short diagnostic
excerpt from failed tasks' error logs, and renders a single report so nobody
has to open hundreds of log files by hand.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newStatusCommand())
	cmd.AddCommand(newRegisterCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newRenameCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
