package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/NeurodataWithoutBorders/nwbsweep/internal/excerpt"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/models"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/registry"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/report"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/reporting"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/slurm"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/sweep"
)

var (
	statusConfigPath   string
	statusLogDir       string
	statusLabel        string
	statusSettingsPath string
	statusWorkers      int
	statusSerial       bool
	statusFormat       string
	statusOutputPath   string
	statusNoColor      bool
	statusDBPath       string
)

func newStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [job-id]",
		Short: "Report the state of every task in a sweep",
		Long: `Report the consolidated state of a submitted sweep.

With a job id, sweep details (config table, log dir, label) come from flags,
falling back to the registry entry for that job. With no argument the most
recently registered sweep is reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: statusCommandE,
	}

	cmd.Flags().StringVarP(&statusConfigPath, "config", "c", "", "Path to the sweep configuration table")
	cmd.Flags().StringVarP(&statusLogDir, "log-dir", "l", "", "Directory holding the per-task log files")
	cmd.Flags().StringVar(&statusLabel, "label", "", "Experiment label used in log file names")
	cmd.Flags().StringVar(&statusSettingsPath, "settings", "", "Report settings YAML (denylist, columns, widths)")
	cmd.Flags().IntVar(&statusWorkers, "workers", 0, "Number of concurrent accounting queries (default: 4)")
	cmd.Flags().BoolVar(&statusSerial, "serial", false, "Query accounting one task at a time")
	cmd.Flags().StringVar(&statusFormat, "format", "default", "Output format: default, junit")
	cmd.Flags().StringVarP(&statusOutputPath, "output", "o", "", "Write junit output to a file instead of stdout")
	cmd.Flags().BoolVar(&statusNoColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&statusDBPath, "db", "", "Registry database path (default: ~/.nwbsweep/sweeps.db)")

	return cmd
}

func statusCommandE(cmd *cobra.Command, args []string) error {
	jobID := ""
	if len(args) == 1 {
		jobID = args[0]
	}

	settings, err := loadSettings(statusSettingsPath)
	if err != nil {
		return err
	}
	if statusWorkers > 0 {
		settings.Workers = statusWorkers
	}
	if statusSerial {
		settings.Workers = 1
	}

	configPath, logDir, label := statusConfigPath, statusLogDir, statusLabel

	// Fill what flags left open from the registry. Flags always win.
	var registered *registry.Sweep
	var reg *registry.Registry
	if jobID == "" || configPath == "" || logDir == "" || label == "" {
		reg, err = openRegistry(statusDBPath)
		if err == nil {
			defer reg.Close()
			if jobID == "" {
				registered, err = reg.Latest()
			} else {
				registered, err = reg.Lookup(jobID)
			}
			if err != nil && jobID == "" {
				return fmt.Errorf("no job id given and %w", err)
			}
		}
		if registered != nil {
			jobID = registered.JobID
			if configPath == "" {
				configPath = registered.ConfigPath
			}
			if logDir == "" {
				logDir = registered.LogDir
			}
			if label == "" {
				label = registered.Label
			}
		}
	}

	if jobID == "" {
		return errors.New("a job id is required (argument or registered sweep)")
	}
	if configPath == "" {
		return errors.New("a configuration table is required (--config or registered sweep)")
	}
	if logDir == "" || label == "" {
		return errors.New("--log-dir and --label are required (or a registered sweep)")
	}

	// The configuration table defines N; failing to load it is the one
	// fatal error in a report.
	rows, err := sweep.LoadTable(configPath)
	if err != nil {
		return err
	}

	var client slurm.AccountingClient
	switch settings.Accounting {
	case "sacct":
		client = slurm.NewSacctClient()
	case "mock":
		client = slurm.NewMockClient()
	default:
		return fmt.Errorf("unknown accounting backend: %s", settings.Accounting)
	}

	matchers, err := excerpt.BuildMatchers(settings.Denylist)
	if err != nil {
		return err
	}
	extractor := excerpt.NewExtractor(matchers, settings.ExcerptLimit)

	builder := report.NewBuilder(jobID, label, logDir, rows, settings, client, extractor)
	outcome, err := builder.Build(context.Background())
	if err != nil {
		return err
	}

	switch statusFormat {
	case "default":
		colored := !statusNoColor && term.IsTerminal(int(os.Stdout.Fd()))
		renderOutcome(os.Stdout, outcome, settings, colored)
	case "junit":
		out := os.Stdout
		if statusOutputPath != "" {
			f, err := os.Create(statusOutputPath)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		if err := reporting.WriteJUnit(out, reporting.ConvertToJUnit(outcome)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format: %s (supported: default, junit)", statusFormat)
	}

	// Remember the newest counts next to the registration.
	if registered != nil && reg != nil {
		if err := reg.UpdateSummary(registered.ID, summaryLine(outcome)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to update registry summary: %v\n", err)
		}
	}

	return nil
}

func loadSettings(path string) (*models.ReportSettings, error) {
	if path == "" {
		return models.DefaultSettings(), nil
	}
	settings, err := models.LoadReportSettings(path)
	if err != nil {
		return nil, fmt.Errorf("loading report settings: %w", err)
	}
	return settings, nil
}

func openRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		p, err := registry.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return registry.Open(path)
}
