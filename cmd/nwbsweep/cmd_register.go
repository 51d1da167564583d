package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/NeurodataWithoutBorders/nwbsweep/internal/registry"
)

var (
	registerJobID      string
	registerLabel      string
	registerConfigPath string
	registerLogDir     string
	registerDBPath     string
)

func newRegisterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Record a submitted sweep in the local registry",
		Long: `Record a submitted sweep so later status runs need no flags.

Registration stores the job id together with the configuration table path,
log directory, and experiment label used at submission time.`,
		Args: cobra.NoArgs,
		RunE: registerCommandE,
	}

	cmd.Flags().StringVar(&registerJobID, "job", "", "Slurm job id of the submitted array (required)")
	cmd.Flags().StringVar(&registerLabel, "label", "", "Experiment label used in log file names (required)")
	cmd.Flags().StringVarP(&registerConfigPath, "config", "c", "", "Path to the sweep configuration table (required)")
	cmd.Flags().StringVarP(&registerLogDir, "log-dir", "l", "", "Directory holding the per-task log files (required)")
	cmd.Flags().StringVar(&registerDBPath, "db", "", "Registry database path (default: ~/.nwbsweep/sweeps.db)")

	return cmd
}

func registerCommandE(cmd *cobra.Command, args []string) error {
	if registerJobID == "" || registerLabel == "" || registerConfigPath == "" || registerLogDir == "" {
		return errors.New("--job, --label, --config and --log-dir are all required")
	}

	configPath, err := filepath.Abs(registerConfigPath)
	if err != nil {
		return err
	}
	logDir, err := filepath.Abs(registerLogDir)
	if err != nil {
		return err
	}

	reg, err := openRegistry(registerDBPath)
	if err != nil {
		return fmt.Errorf("opening registry: %w", err)
	}
	defer reg.Close()

	s := &registry.Sweep{
		JobID:      registerJobID,
		Label:      registerLabel,
		ConfigPath: configPath,
		LogDir:     logDir,
	}
	if err := reg.Add(s); err != nil {
		return err
	}

	fmt.Printf("Registered sweep %s (job %s)\n", s.Label, s.JobID)
	return nil
}
