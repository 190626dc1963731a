package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/BioRxn-Tools/internal/application/preprocess"
	"github.com/turtacn/BioRxn-Tools/internal/domain/molecule"
	"github.com/turtacn/BioRxn-Tools/internal/domain/reaction"
	"github.com/turtacn/BioRxn-Tools/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BioRxn-Tools/internal/infrastructure/monitoring/prometheus"
)

// NewPreprocessCmd creates the preprocess command: the full dataset pipeline
// from raw reaction files to tokenized export files.
func NewPreprocessCmd() *cobra.Command {
	var (
		removePatternsPath  string
		removeMoleculesPath string
		ecLevels            []int
		maxProducts         int
		minAtomCount        int
		biDirectional       bool
		splitProducts       bool
		metricsOut          string
	)

	cmd := &cobra.Command{
		Use:   "preprocess INPUT_FILE... OUTPUT_DIR",
		Short: "Preprocess reaction datasets for model training",
		Long: "Parse reaction files (one enzymatic reaction SMILES per line, the file\n" +
			"stem is the source tag), scrub and filter the reactions, and write the\n" +
			"combined summary plus one tokenized file per requested EC level into\n" +
			"OUTPUT_DIR.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			inputPaths := args[:len(args)-1]
			outputDir := args[len(args)-1]
			if info, statErr := os.Stat(outputDir); statErr != nil || !info.IsDir() {
				return fmt.Errorf("output directory %q does not exist", outputDir)
			}

			cfg := cliCtx.Config
			cfg.Preprocess.MaxProducts = maxProducts
			cfg.Preprocess.MinAtomCount = minAtomCount
			cfg.Preprocess.BiDirectional = biDirectional
			cfg.Preprocess.SplitProducts = splitProducts

			if removePatternsPath != "" {
				cfg.Preprocess.RemovePatterns, err = readAnnotatedList(cmd.InOrStdin(), removePatternsPath)
				if err != nil {
					return err
				}
			}
			if removeMoleculesPath != "" {
				cfg.Preprocess.RemoveMolecules, err = readAnnotatedList(cmd.InOrStdin(), removeMoleculesPath)
				if err != nil {
					return err
				}
			}

			for _, level := range ecLevels {
				if level < 0 || level > reaction.MaxECDepth {
					return fmt.Errorf("ec-level %d out of range [0, %d]", level, reaction.MaxECDepth)
				}
			}

			collector, err := prometheus.NewMetricsCollector(
				prometheus.CollectorConfig{Namespace: "biorxn"}, cliCtx.Logger)
			if err != nil {
				return err
			}
			metrics := prometheus.NewEngineMetrics(collector)

			service, err := preprocess.NewService(molecule.NewTextOracle(), cfg, cliCtx.Logger, metrics)
			if err != nil {
				return err
			}

			inputs := make([]preprocess.Input, 0, len(inputPaths))
			for _, path := range inputPaths {
				lines, err := readLines(cmd.InOrStdin(), path)
				if err != nil {
					return err
				}
				source := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				inputs = append(inputs, preprocess.Input{Source: source, Lines: lines})
			}

			records, err := service.Run(cmd.Context(), inputs)
			if err != nil {
				return err
			}

			for source, count := range preprocess.CountBySource(records) {
				cliCtx.Logger.Info("source summary",
					logging.String("source", source), logging.Int("reactions", count))
			}

			summary := make([]string, 0, len(records))
			for _, rec := range records {
				summary = append(summary, preprocess.SummaryLine(rec))
			}
			combinedPath := filepath.Join(outputDir, "combined_rxn_ec_sources.txt")
			if err := writeLines(cmd.OutOrStdout(), combinedPath, summary); err != nil {
				return err
			}

			for _, level := range ecLevels {
				tokenized, err := exportLevel(service, records, level)
				if err != nil {
					return err
				}
				levelPath := filepath.Join(outputDir, fmt.Sprintf("tokenized-ec%d.txt", level))
				if err := writeLines(cmd.OutOrStdout(), levelPath, tokenized); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "EC level %d: %d unique reactions\n", level, len(tokenized))
			}

			if metricsOut != "" {
				if err := dumpMetrics(collector, metricsOut); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "emitted %d reactions to %s\n", len(records), outputDir)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&removePatternsPath, "remove-patterns", "",
		"file of substructure patterns (one per line); matching molecules are removed from the products")
	f.StringVar(&removeMoleculesPath, "remove-molecules", "",
		"file of molecule SMILES (one per line) to be removed from the products")
	f.IntSliceVar(&ecLevels, "ec-level", []int{3}, "EC level(s) to export; repeatable")
	f.IntVar(&maxProducts, "max-products", 1, "maximum number of product molecules allowed in a reaction")
	f.IntVar(&minAtomCount, "min-atom-count", 4, "molecules with fewer heavy atoms are removed from the products")
	f.BoolVar(&biDirectional, "bi-directional", false, "consider all reactions to be bi-directional")
	f.BoolVar(&splitProducts, "split-products", false, "split multi-product reactions into one reaction per product")
	f.StringVar(&metricsOut, "metrics-out", "",
		"write the run's metrics in Prometheus text format to this file")

	return cmd
}

// dumpMetrics writes the collector state to path in the Prometheus text
// exposition format.
func dumpMetrics(collector prometheus.MetricsCollector, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	writeErr := collector.WriteTo(f)
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	return writeErr
}

// exportLevel tokenizes the records at one EC depth, deduplicating by the
// depth-truncated rendering (reactions distinct at full depth can collide at
// a shallower one).
func exportLevel(service *preprocess.Service, records []preprocess.Record, level int) ([]string, error) {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, rec := range records {
		rendered, err := rec.Reaction.ToString(level)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[rendered]; dup {
			continue
		}
		seen[rendered] = struct{}{}

		tokenized, err := service.ExportLine(rec, level, true)
		if err != nil {
			return nil, err
		}
		out = append(out, tokenized)
	}
	return out, nil
}

// readAnnotatedList reads a list file ("-" means r) where blank lines and
// lines starting with "//" are skipped, and trailing "//" comments are
// stripped.
func readAnnotatedList(r io.Reader, path string) ([]string, error) {
	lines, err := readLines(r, path)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "//") {
			continue
		}
		entry := strings.TrimSpace(strings.SplitN(line, "//", 2)[0])
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out, nil
}
