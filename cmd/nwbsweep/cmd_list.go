package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var listDBPath string

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered sweeps",
		Args:  cobra.NoArgs,
		RunE:  listCommandE,
	}

	cmd.Flags().StringVar(&listDBPath, "db", "", "Registry database path (default: ~/.nwbsweep/sweeps.db)")

	return cmd
}

func listCommandE(cmd *cobra.Command, args []string) error {
	reg, err := openRegistry(listDBPath)
	if err != nil {
		return fmt.Errorf("opening registry: %w", err)
	}
	defer reg.Close()

	sweeps, err := reg.List()
	if err != nil {
		return err
	}
	if len(sweeps) == 0 {
		fmt.Println("No sweeps registered.")
		return nil
	}

	w := os.Stdout
	fmt.Fprintf(w, "%-10s %-20s %-20s %s\n", "Job", "Label", "Submitted", "Last summary")
	for _, s := range sweeps {
		summary := s.LastSummary
		if summary == "" {
			summary = "-"
		}
		fmt.Fprintf(w, "%-10s %-20s %-20s %s\n",
			s.JobID, s.Label, humanize.Time(s.SubmittedAt), summary)
	}
	return nil
}
