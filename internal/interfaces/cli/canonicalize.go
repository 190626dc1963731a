package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/BioRxn-Tools/internal/domain/molecule"
	"github.com/turtacn/BioRxn-Tools/internal/domain/reaction"
	"github.com/turtacn/BioRxn-Tools/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BioRxn-Tools/pkg/tokenizer"
)

// NewCanonicalizeCmd creates the canonicalize command.  It normalizes model
// output lines: molecule sets are canonicalized, deduplicated, sorted, and
// re-tokenized.  Lines that carry trailing EC level tags (starting with
// "[v") keep them verbatim; lines that cannot be parsed pass through
// unchanged so downstream scoring can count them as misses.
func NewCanonicalizeCmd() *cobra.Command {
	var pipe bool

	cmd := &cobra.Command{
		Use:   "canonicalize INPUT_FILE OUTPUT_FILE",
		Short: "Canonicalize, deduplicate, and sort predicted molecule sets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			lines, err := readLines(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			out := make([]string, 0, len(lines))
			for _, line := range lines {
				out = append(out, canonicalizeLine(line, pipe, cliCtx.Logger))
			}

			return writeLines(cmd.OutOrStdout(), args[1], out)
		},
	}

	cmd.Flags().BoolVar(&pipe, "pipe", false, "append the EC delimiter token after the molecules")

	return cmd
}

func canonicalizeLine(line string, pipe bool, logger logging.Logger) string {
	pipeSuffix := ""
	if pipe {
		pipeSuffix = " |"
	}

	smilesPart := strings.ReplaceAll(line, " ", "")
	ecPart := ""

	// Predicted sources may include the EC number as level tags; split those
	// off and re-space them.
	if ecIndex := strings.Index(smilesPart, "[v"); ecIndex > -1 {
		ecPart = " " + strings.ReplaceAll(strings.TrimSpace(smilesPart[ecIndex:]), "][", "] [")
		smilesPart = strings.TrimSpace(smilesPart[:ecIndex])
	}

	// A trailing ">>" makes the molecule set parseable as a reaction, which
	// provides canonicalization, deduplication, and ordering in one pass.
	rxn, err := reaction.NewEnzymatic(molecule.NewTextOracle(), smilesPart+">>")
	if err != nil {
		logger.Debug("passing through non-reaction line", logging.Err(err))
		return line
	}
	rxn.SortAll()

	sorted := strings.Join(rxn.ReactantsAsSmiles(), ".")
	return tokenizer.TokenizeSmiles(sorted) + pipeSuffix + ecPart
}
