package reaction

import (
	"strings"

	"github.com/turtacn/BioRxn-Tools/pkg/errors"
)

// MaxECDepth is the maximum number of levels in an enzyme classification
// number (class, subclass, sub-subclass, serial).
const MaxECDepth = 4

// ECNumber is a fixed-capacity enzyme classification sequence of zero to
// four levels.  The zero value is the empty EC.
type ECNumber struct {
	levels [MaxECDepth]string
	depth  int
}

// ParseEC parses a dot-separated EC string such as "4.1.1.28".  Each level is
// trimmed.  An empty (or all-whitespace) input yields the empty EC; more than
// four levels is a CodeECDepth error, because silent truncation would break
// lossless tokenization round trips.
func ParseEC(s string) (ECNumber, error) {
	if strings.TrimSpace(s) == "" {
		return ECNumber{}, nil
	}

	parts := strings.Split(s, ".")
	if len(parts) > MaxECDepth {
		return ECNumber{}, errors.New(errors.CodeECDepth, "EC number exceeds four levels").
			WithDetail("ec=" + s)
	}

	var ec ECNumber
	for _, p := range parts {
		ec.levels[ec.depth] = strings.TrimSpace(p)
		ec.depth++
	}
	return ec, nil
}

// Depth returns the number of levels present (0 to 4).
func (ec ECNumber) Depth() int {
	return ec.depth
}

// IsEmpty reports whether no levels are present.
func (ec ECNumber) IsEmpty() bool {
	return ec.depth == 0
}

// Levels returns a copy of the present levels.
func (ec ECNumber) Levels() []string {
	out := make([]string, ec.depth)
	copy(out, ec.levels[:ec.depth])
	return out
}

// String returns the full dot-joined EC, or "" when empty.
func (ec ECNumber) String() string {
	return strings.Join(ec.levels[:ec.depth], ".")
}

// Prefix returns the dot-joined first depth levels (top-down).  A depth
// larger than the stored depth returns the full EC.
func (ec ECNumber) Prefix(depth int) string {
	if depth > ec.depth {
		depth = ec.depth
	}
	if depth < 0 {
		depth = 0
	}
	return strings.TrimSpace(strings.Join(ec.levels[:depth], "."))
}

// Truncate returns a copy limited to the first depth levels.
func (ec ECNumber) Truncate(depth int) ECNumber {
	if depth >= ec.depth {
		return ec
	}
	if depth < 0 {
		depth = 0
	}
	var out ECNumber
	copy(out.levels[:], ec.levels[:depth])
	out.depth = depth
	return out
}

// Equal reports whether both sequences have the same depth and the same
// levels in order.
func (ec ECNumber) Equal(other ECNumber) bool {
	if ec.depth != other.depth {
		return false
	}
	for i := 0; i < ec.depth; i++ {
		if ec.levels[i] != other.levels[i] {
			return false
		}
	}
	return true
}
