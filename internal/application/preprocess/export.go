package preprocess

import (
	"strings"

	"github.com/turtacn/BioRxn-Tools/internal/domain/reaction"
	"github.com/turtacn/BioRxn-Tools/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/BioRxn-Tools/pkg/tokenizer"
)

// ExportLine renders one record for export at the requested EC depth and
// tokenizes it: "C C O [v1] [u1] >> C C = O".  With keepPipe the EC delimiter
// token is retained in front of the level tags.
func (s *Service) ExportLine(rec Record, ecDepth int, keepPipe bool) (string, error) {
	rendered, err := rec.Reaction.ToString(ecDepth)
	if err != nil {
		return "", err
	}

	tokenized, err := tokenizer.TokenizeEnzymaticReactionSmiles(rendered, keepPipe)
	if s.metrics != nil {
		prometheus.RecordTokenization(s.metrics, "tokenize", err)
	}
	if err != nil {
		return "", err
	}
	return tokenized, nil
}

// SummaryLine renders one record as the combined export row:
// "<reaction>,<ec>,<source>".
func SummaryLine(rec Record) string {
	return strings.Join([]string{
		rec.Reaction.String(),
		rec.Reaction.GetEC(reaction.MaxECDepth),
		rec.Source,
	}, ",")
}
