package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/BioRxn-Tools/internal/domain/reaction"
)

// NewValidateCmd creates the validate command: a fast syntactic check of
// enzymatic reaction SMILES lines.  Offending line numbers go to stdout; the
// command fails when any line is invalid.
func NewValidateCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Syntactically validate enzymatic reaction SMILES",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := ""
			if len(args) == 1 {
				inputPath = args[0]
			}

			lines, err := readLines(cmd.InOrStdin(), inputPath)
			if err != nil {
				return err
			}

			invalid := 0
			for i, line := range lines {
				if reaction.IsValid(line) {
					continue
				}
				invalid++
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "line %d: invalid: %s\n", i+1, line)
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d lines are invalid", invalid, len(lines))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "all %d lines valid\n", len(lines))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-line output")

	return cmd
}
