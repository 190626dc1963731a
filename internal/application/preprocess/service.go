// Package preprocess implements the reaction dataset preprocessing pipeline:
// parse raw enzymatic reaction SMILES, scrub products, optionally split and
// reverse, then filter and deduplicate for export.
package preprocess

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/BioRxn-Tools/internal/config"
	"github.com/turtacn/BioRxn-Tools/internal/domain/molecule"
	"github.com/turtacn/BioRxn-Tools/internal/domain/reaction"
	"github.com/turtacn/BioRxn-Tools/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BioRxn-Tools/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/BioRxn-Tools/pkg/errors"
	"github.com/turtacn/BioRxn-Tools/pkg/types/common"
)

// Input is one source dataset: a provenance tag and its raw reaction lines.
type Input struct {
	Source string
	Lines  []string
}

// Record is one reaction that survived the pipeline.
type Record struct {
	common.BaseRecord

	Reaction *reaction.EnzymaticReaction
	Source   string
}

// Service runs the preprocessing pipeline.  It is safe for sequential reuse;
// a Service holds no per-run state.
type Service struct {
	oracle  molecule.Oracle
	cfg     config.PreprocessConfig
	chem    config.ChemConfig
	logger  logging.Logger
	metrics *prometheus.EngineMetrics

	patterns  []molecule.Pattern
	removeSet map[string]struct{}
}

// NewService builds a Service.  Removal patterns are compiled once and the
// removal molecules are canonicalized through the oracle so that membership
// tests compare canonical strings.  Unparseable entries in either list are
// logged and skipped.
func NewService(
	oracle molecule.Oracle,
	cfg *config.Config,
	logger logging.Logger,
	metrics *prometheus.EngineMetrics,
) (*Service, error) {
	if oracle == nil {
		return nil, errors.InvalidParam("oracle must not be nil")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	s := &Service{
		oracle:    oracle,
		cfg:       cfg.Preprocess,
		chem:      cfg.Chem,
		logger:    logger.Named("preprocess"),
		metrics:   metrics,
		removeSet: make(map[string]struct{}, len(cfg.Preprocess.RemoveMolecules)),
	}

	for _, raw := range cfg.Preprocess.RemovePatterns {
		p, err := oracle.ParsePattern(raw)
		if err != nil {
			s.logger.Warn("skipping unparseable removal pattern",
				logging.String("pattern", raw), logging.Err(err))
			continue
		}
		s.patterns = append(s.patterns, p)
	}

	for _, raw := range cfg.Preprocess.RemoveMolecules {
		h, err := oracle.Parse(raw, cfg.Chem.Sanitize)
		if err != nil {
			s.logger.Warn("skipping unparseable removal molecule",
				logging.String("smiles", raw), logging.Err(err))
			continue
		}
		s.removeSet[oracle.Render(h, cfg.Chem.RenderOptions())] = struct{}{}
	}

	return s, nil
}

// ParseLine parses one raw line into an enzymatic reaction tagged with its
// source.
func (s *Service) ParseLine(line, source string) (*reaction.EnzymaticReaction, error) {
	rxn, err := reaction.NewEnzymatic(
		s.oracle,
		strings.TrimSpace(line),
		reaction.WithSanitize(s.chem.Sanitize),
		reaction.WithRenderOptions(s.chem.RenderOptions()),
		reaction.WithSource(source),
	)
	if s.metrics != nil {
		prometheus.RecordParse(s.metrics, source, err)
		if err == nil {
			s.metrics.ECDepthObserved.WithLabelValues().Observe(float64(rxn.EC.Depth()))
		}
	}
	return rxn, err
}

// ProcessReaction scrubs one reaction in place: precursors are removed from
// the products, molecules that failed to parse are dropped, and products
// below the heavy-atom threshold are removed.
func (s *Service) ProcessReaction(rxn *reaction.EnzymaticReaction) {
	rxn.RemovePrecursorsFromProducts()
	rxn.RemoveNone()

	kept := rxn.Products[:0]
	for _, e := range rxn.Products {
		if s.oracle.HeavyAtomCount(e.Handle) >= s.cfg.MinAtomCount {
			kept = append(kept, e)
			continue
		}
		s.countMoleculeRemoved("small")
	}
	rxn.Products = kept
}

// RemoveFromProducts removes the configured cofactors from the products,
// first by substructure pattern and then by canonical SMILES membership.
//
// A reaction that enters with a single product is exempt, and each pattern
// pass stops the scrub as soon as a single product remains.  The SMILES pass
// carries no such guard and may empty the products; such reactions are culled
// later by Keep.
func (s *Service) RemoveFromProducts(rxn *reaction.EnzymaticReaction) {
	if presentCount(rxn.Products) == 1 {
		return
	}

	for _, p := range s.patterns {
		kept := rxn.Products[:0]
		for _, e := range rxn.Products {
			if e.Present && s.oracle.Match(e.Handle, p) {
				s.countMoleculeRemoved("pattern")
				continue
			}
			kept = append(kept, e)
		}
		rxn.Products = kept

		if presentCount(rxn.Products) == 1 {
			return
		}
	}

	if len(s.removeSet) == 0 {
		return
	}
	kept := rxn.Products[:0]
	for _, e := range rxn.Products {
		if e.Present {
			smiles := s.oracle.Render(e.Handle, s.chem.RenderOptions())
			if _, drop := s.removeSet[smiles]; drop {
				s.countMoleculeRemoved("molecule")
				continue
			}
		}
		kept = append(kept, e)
	}
	rxn.Products = kept
}

// SplitProducts splits a multi-product reaction into one reaction per
// product, each keeping the full reactant set, EC, and source.  A reaction
// that already has a single product is returned as-is.
func (s *Service) SplitProducts(rxn *reaction.EnzymaticReaction) ([]*reaction.EnzymaticReaction, error) {
	products := rxn.ProductsAsSmiles()
	if len(products) == 1 {
		return []*reaction.EnzymaticReaction{rxn}, nil
	}

	reactants := strings.Join(rxn.ReactantsAsSmiles(), ".")
	out := make([]*reaction.EnzymaticReaction, 0, len(products))
	for _, product := range products {
		split, err := reaction.FromSmartsAndEC(
			s.oracle,
			reactants+">>"+product,
			rxn.GetEC(reaction.MaxECDepth),
			rxn.Source,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, split)
	}

	if s.metrics != nil {
		s.metrics.ReactionsSplitTotal.WithLabelValues().Inc()
	}
	return out, nil
}

// Keep reports whether a processed reaction survives the structural filter:
// at least one reactant, and between one and MaxProducts products.
func (s *Service) Keep(rxn *reaction.EnzymaticReaction) bool {
	n := presentCount(rxn.Products)
	return presentCount(rxn.Reactants) > 0 && n > 0 && n <= s.cfg.MaxProducts
}

// Run executes the full pipeline over the inputs and returns the surviving
// reactions as records: parse (with optional bi-directional expansion),
// scrub, cofactor removal, optional product split, structural filter, sort,
// and finally deduplication by canonical string with empty-EC reactions
// dropped.
func (s *Service) Run(ctx context.Context, inputs []Input) ([]Record, error) {
	var rxns []*reaction.EnzymaticReaction

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		parsed := 0
		for _, line := range input.Lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			rxn, err := s.ParseLine(line, input.Source)
			if err != nil {
				s.logger.Warn("skipping unparseable reaction",
					logging.String("source", input.Source), logging.Err(err))
				s.countReactionDropped("parse_error")
				continue
			}
			rxns = append(rxns, rxn)
			parsed++

			if s.cfg.BiDirectional {
				rev, err := rxn.Reverse()
				if err != nil {
					s.logger.Warn("skipping unreversible reaction",
						logging.String("source", input.Source), logging.Err(err))
					continue
				}
				rxns = append(rxns, rev)
				if s.metrics != nil {
					s.metrics.ReactionsReversedTotal.WithLabelValues().Inc()
				}
			}
		}
		s.recordStage("parse", start)
		s.logger.Info("parsed source",
			logging.String("source", input.Source), logging.Int("reactions", parsed))
	}

	start := time.Now()
	for _, rxn := range rxns {
		s.ProcessReaction(rxn)
	}
	s.recordStage("scrub", start)

	start = time.Now()
	for _, rxn := range rxns {
		s.RemoveFromProducts(rxn)
	}
	s.recordStage("cofactors", start)

	if s.cfg.SplitProducts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start = time.Now()
		split := make([]*reaction.EnzymaticReaction, 0, len(rxns))
		for _, rxn := range rxns {
			parts, err := s.SplitProducts(rxn)
			if err != nil {
				s.logger.Warn("skipping unsplittable reaction", logging.Err(err))
				s.countReactionDropped("split_error")
				continue
			}
			split = append(split, parts...)
		}
		rxns = split
		s.recordStage("split", start)
	}

	start = time.Now()
	filtered := rxns[:0]
	for _, rxn := range rxns {
		if !s.Keep(rxn) {
			s.countReactionDropped("structure")
			continue
		}
		rxn.SortAll()
		filtered = append(filtered, rxn)
	}
	rxns = filtered
	s.recordStage("filter", start)

	start = time.Now()
	seen := make(map[string]struct{}, len(rxns))
	records := make([]Record, 0, len(rxns))
	for _, rxn := range rxns {
		if rxn.EC.IsEmpty() {
			s.countReactionDropped("no_ec")
			continue
		}
		key := rxn.String()
		if _, dup := seen[key]; dup {
			s.countReactionDropped("duplicate")
			continue
		}
		seen[key] = struct{}{}

		records = append(records, Record{
			BaseRecord: common.NewBaseRecord(),
			Reaction:   rxn,
			Source:     rxn.Source,
		})
		if s.metrics != nil {
			s.metrics.ReactionsEmittedTotal.WithLabelValues(rxn.Source).Inc()
		}
	}
	s.recordStage("dedupe", start)

	s.logger.Info("pipeline complete",
		logging.Int("emitted", len(records)))
	return records, nil
}

// CountBySource tallies surviving records per provenance tag.
func CountBySource(records []Record) map[string]int {
	out := make(map[string]int, 4)
	for _, rec := range records {
		out[rec.Source]++
	}
	return out
}

func (s *Service) recordStage(stage string, start time.Time) {
	if s.metrics == nil {
		return
	}
	prometheus.RecordStage(s.metrics, stage, time.Since(start))
}

func (s *Service) countReactionDropped(reason string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReactionsDroppedTotal.WithLabelValues(reason).Inc()
}

func (s *Service) countMoleculeRemoved(reason string) {
	if s.metrics == nil {
		return
	}
	s.metrics.MoleculesRemovedTotal.WithLabelValues(reason).Inc()
}

func presentCount(group []reaction.Entry) int {
	n := 0
	for _, e := range group {
		if e.Present {
			n++
		}
	}
	return n
}
