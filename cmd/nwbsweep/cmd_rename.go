package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/NeurodataWithoutBorders/nwbsweep/internal/rename"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/sweep"
)

var (
	renameWidth  int
	renameDryRun bool
	renameYes    bool
)

func newRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <dir>",
		Short: "Zero-pad the Config suffix in output filenames",
		Long: `Normalize filenames whose numeric Config suffix was written unpadded,
e.g. exp12_gzip_Config7.nwb -> exp12_gzip_Config007.nwb.

Already-normalized names are left alone, so the command is safe to re-run.`,
		Args: cobra.ExactArgs(1),
		RunE: renameCommandE,
	}

	cmd.Flags().IntVar(&renameWidth, "width", sweep.DefaultPadWidth, "Target digit width")
	cmd.Flags().BoolVarP(&renameDryRun, "dry-run", "n", false, "Print the plan without renaming")
	cmd.Flags().BoolVarP(&renameYes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func renameCommandE(cmd *cobra.Command, args []string) error {
	dir := args[0]

	changes, err := rename.Plan(dir, renameWidth)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Println("Nothing to rename.")
		return nil
	}

	for _, c := range changes {
		fmt.Printf("%s -> %s\n", c.From, c.To)
	}
	if renameDryRun {
		fmt.Printf("Dry run: %d file(s) would be renamed.\n", len(changes))
		return nil
	}

	if !renameYes && term.IsTerminal(int(os.Stdin.Fd())) {
		var confirmed bool
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Rename %d file(s)?", len(changes))).
					Affirmative("Yes").
					Negative("No").
					Value(&confirmed),
			),
		).Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := rename.Apply(dir, changes); err != nil {
		return err
	}
	fmt.Printf("Renamed %d file(s).\n", len(changes))
	return nil
}
