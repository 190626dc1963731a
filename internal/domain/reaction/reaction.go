// Package reaction provides the core domain model for multi-part chemical
// reactions: three ordered molecule groups (reactants, agents, products)
// parsed from a two-separator reaction SMILES, with mutation, equality, and
// canonical rendering delegated to a molecule Oracle.
package reaction

import (
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/BioRxn-Tools/internal/domain/molecule"
	"github.com/turtacn/BioRxn-Tools/pkg/errors"
)

// Part identifies one of the three groups of a reaction.
type Part int

const (
	PartReactants Part = iota + 1
	PartAgents
	PartProducts
)

// Entry is one slot in a reaction group.  A molecule that failed to parse
// keeps its slot with Present=false so that list indices stay stable across
// mutation passes; vacant slots are dropped only by RemoveNone and contribute
// nothing to rendered output.
type Entry struct {
	Handle  molecule.Handle
	Present bool
}

// Reaction owns three ordered groups of molecule entries.  Render options are
// fixed at construction and reused for every render and for all sort and
// equality key derivation.
type Reaction struct {
	Reactants []Entry
	Agents    []Entry
	Products  []Entry

	oracle     molecule.Oracle
	renderOpts molecule.RenderOptions
}

// config carries constructor settings shared by New and NewEnzymatic.
type config struct {
	removeDuplicates bool
	sanitize         bool
	renderOpts       molecule.RenderOptions
	source           string
}

// Option customizes reaction construction.
type Option func(*config)

// WithRemoveDuplicates toggles per-group dedup of raw molecule substrings
// (first-seen order, before parsing).
func WithRemoveDuplicates(v bool) Option {
	return func(c *config) { c.removeDuplicates = v }
}

// WithSanitize toggles molecule validation during parsing.  Defaults to true.
func WithSanitize(v bool) Option {
	return func(c *config) { c.sanitize = v }
}

// WithRenderOptions fixes the render options used for every render, sort, and
// equality key of the instance.
func WithRenderOptions(opts molecule.RenderOptions) Option {
	return func(c *config) { c.renderOpts = opts }
}

// WithSource sets the provenance tag of an enzymatic reaction.  It has no
// effect on plain reactions.
func WithSource(source string) Option {
	return func(c *config) { c.source = source }
}

// New parses a reaction SMILES of the form reactants>agents>products.
// Each group is '.'-joined; empty group text yields an empty group.  A
// molecule that fails to parse occupies a vacant slot instead of aborting
// construction.  Returns a CodeReactionFormat error unless the input contains
// exactly two '>' separators.
func New(oracle molecule.Oracle, reactionSmarts string, opts ...Option) (*Reaction, error) {
	cfg := config{
		sanitize:   true,
		renderOpts: molecule.DefaultRenderOptions(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newWithConfig(oracle, reactionSmarts, cfg)
}

func newWithConfig(oracle molecule.Oracle, reactionSmarts string, cfg config) (*Reaction, error) {
	if strings.Count(reactionSmarts, ">") != 2 {
		return nil, errors.FormatError("a valid reaction SMARTS must contain two '>'").
			WithDetail("input=" + reactionSmarts)
	}

	r := &Reaction{
		oracle:     oracle,
		renderOpts: cfg.renderOpts,
	}

	groups := strings.Split(reactionSmarts, ">")
	parsed := make([][]Entry, 3)
	for i, raw := range groups {
		subs := strings.Split(raw, ".")
		if cfg.removeDuplicates {
			subs = RemoveDuplicates(subs)
		}
		entries := make([]Entry, 0, len(subs))
		for _, s := range subs {
			if s == "" {
				continue
			}
			h, err := oracle.Parse(s, cfg.sanitize)
			if err != nil {
				// Parse failure is not an error at this layer: keep an
				// index-stable vacant slot for the caller to scrub.
				entries = append(entries, Entry{})
				continue
			}
			entries = append(entries, Entry{Handle: h, Present: true})
		}
		parsed[i] = entries
	}
	r.Reactants, r.Agents, r.Products = parsed[0], parsed[1], parsed[2]

	return r, nil
}

// Len returns the number of molecules participating in the reaction across
// all three groups, vacant slots included.
func (r *Reaction) Len() int {
	return len(r.Reactants) + len(r.Agents) + len(r.Products)
}

// groups returns the three groups in canonical order.
func (r *Reaction) groups() [3][]Entry {
	return [3][]Entry{r.Reactants, r.Agents, r.Products}
}

// render produces the canonical string of one entry; vacant slots render
// empty.
func (r *Reaction) render(e Entry) string {
	if !e.Present {
		return ""
	}
	return r.oracle.Render(e.Handle, r.renderOpts)
}

// groupSmiles renders the present entries of a group, in order.
func (r *Reaction) groupSmiles(group []Entry) []string {
	out := make([]string, 0, len(group))
	for _, e := range group {
		if e.Present {
			out = append(out, r.render(e))
		}
	}
	return out
}

// ReactantsAsSmiles returns the canonical strings of the present reactants.
func (r *Reaction) ReactantsAsSmiles() []string { return r.groupSmiles(r.Reactants) }

// AgentsAsSmiles returns the canonical strings of the present agents.
func (r *Reaction) AgentsAsSmiles() []string { return r.groupSmiles(r.Agents) }

// ProductsAsSmiles returns the canonical strings of the present products.
func (r *Reaction) ProductsAsSmiles() []string { return r.groupSmiles(r.Products) }

// String renders the reaction as reactants>agents>products using the fixed
// render options.  Vacant slots are skipped silently: a reaction that lost
// molecules to parse failures renders shorter than its input.
func (r *Reaction) String() string {
	g := r.groups()
	parts := make([]string, 3)
	for i := range g {
		parts[i] = strings.Join(r.groupSmiles(g[i]), ".")
	}
	return strings.Join(parts, ">")
}

// Equal compares molecule count, order, and the canonical string of every
// position in every group.  Comparing by current render rather than handle
// identity is intentionally expensive: it stays correct when handles mutate
// between comparisons.
func (r *Reaction) Equal(other *Reaction) bool {
	if other == nil {
		return false
	}
	if r.Len() != other.Len() {
		return false
	}

	a, b := r.groups(), other.groups()
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j].Present != b[i][j].Present {
				return false
			}
			if !a[i][j].Present {
				continue
			}
			// Both sides are rendered under this instance's options so the
			// comparison key is consistent regardless of the other's options.
			if r.render(a[i][j]) != r.render(b[i][j]) {
				return false
			}
		}
	}
	return true
}

// Find compiles the pattern once and returns, per group, the ascending
// indices of entries with at least one substructure match.  Vacant slots
// never match.
func (r *Reaction) Find(pattern string) ([3][]int, error) {
	var result [3][]int
	p, err := r.oracle.ParsePattern(pattern)
	if err != nil {
		return result, err
	}

	g := r.groups()
	for i := range g {
		result[i] = r.matchIndices(g[i], p)
	}
	return result, nil
}

// FindIn compiles the pattern once and searches a single group.
func (r *Reaction) FindIn(pattern string, part Part) ([]int, error) {
	p, err := r.oracle.ParsePattern(pattern)
	if err != nil {
		return nil, err
	}

	switch part {
	case PartReactants:
		return r.matchIndices(r.Reactants, p), nil
	case PartAgents:
		return r.matchIndices(r.Agents, p), nil
	case PartProducts:
		return r.matchIndices(r.Products, p), nil
	}
	return nil, errors.InvalidParam("unknown reaction part")
}

func (r *Reaction) matchIndices(group []Entry, p molecule.Pattern) []int {
	var idx []int
	for i, e := range group {
		if e.Present && r.oracle.Match(e.Handle, p) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Remove deletes entries by index per group: the first index list addresses
// reactants, the second agents, the third products.  Supplying fewer than
// three lists leaves the trailing groups untouched.  Deletion proceeds in
// descending index order within a group so earlier indices stay valid.
func (r *Reaction) Remove(indices ...[]int) error {
	if len(indices) > 3 {
		return errors.InvalidParam("at most three index groups may be supplied")
	}

	targets := []*[]Entry{&r.Reactants, &r.Agents, &r.Products}
	for i, idx := range indices {
		if err := deleteIndices(targets[i], idx); err != nil {
			return err
		}
	}
	return nil
}

// Filter is the complement of Remove: it deletes every index not named in
// the per-group lists.  A group whose list is omitted or empty is kept whole.
func (r *Reaction) Filter(indices ...[]int) error {
	if len(indices) > 3 {
		return errors.InvalidParam("at most three index groups may be supplied")
	}

	targets := []*[]Entry{&r.Reactants, &r.Agents, &r.Products}
	for i, keep := range indices {
		if len(keep) == 0 {
			continue
		}
		keepSet := make(map[int]bool, len(keep))
		for _, k := range keep {
			keepSet[k] = true
		}
		group := *targets[i]
		for j := len(group) - 1; j >= 0; j-- {
			if !keepSet[j] {
				group = append(group[:j], group[j+1:]...)
			}
		}
		*targets[i] = group
	}
	return nil
}

func deleteIndices(group *[]Entry, idx []int) error {
	if len(idx) == 0 {
		return nil
	}
	sorted := make([]int, len(idx))
	copy(sorted, idx)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	g := *group
	for _, i := range sorted {
		if i < 0 || i >= len(g) {
			return errors.InvalidParam("index out of range").
				WithDetail("index=" + strconv.Itoa(i))
		}
		g = append(g[:i], g[i+1:]...)
	}
	*group = g
	return nil
}

// Sort stable-sorts the selected groups by the canonical string of each
// entry under the fixed render options.  This is the canonicalization step
// downstream tooling relies on for deterministic ordering.  Vacant slots
// render empty and therefore sort first.
func (r *Reaction) Sort(sortReactants, sortAgents, sortProducts bool) {
	if sortReactants {
		r.sortGroup(r.Reactants)
	}
	if sortAgents {
		r.sortGroup(r.Agents)
	}
	if sortProducts {
		r.sortGroup(r.Products)
	}
}

// SortAll sorts all three groups.
func (r *Reaction) SortAll() {
	r.Sort(true, true, true)
}

func (r *Reaction) sortGroup(group []Entry) {
	// Render each entry once per call: the key must reflect the current
	// handle state, but re-rendering inside the comparator would be quadratic.
	type keyed struct {
		entry Entry
		key   string
	}
	items := make([]keyed, len(group))
	for i, e := range group {
		items[i] = keyed{entry: e, key: r.render(e)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].key < items[j].key
	})
	for i := range items {
		group[i] = items[i].entry
	}
}

// RemovePrecursorsFromProducts drops every product whose canonical string
// already appears among the rendered reactants or agents.  Iteration and
// deletion run in reverse index order so earlier indices remain valid.
func (r *Reaction) RemovePrecursorsFromProducts() {
	precursors := make(map[string]bool)
	for _, s := range r.ReactantsAsSmiles() {
		precursors[s] = true
	}
	for _, s := range r.AgentsAsSmiles() {
		precursors[s] = true
	}

	for i := len(r.Products) - 1; i >= 0; i-- {
		if !r.Products[i].Present {
			continue
		}
		if precursors[r.render(r.Products[i])] {
			r.Products = append(r.Products[:i], r.Products[i+1:]...)
		}
	}
}

// HasNone reports whether any group contains a vacant slot from a failed
// parse.
func (r *Reaction) HasNone() bool {
	for _, g := range r.groups() {
		for _, e := range g {
			if !e.Present {
				return true
			}
		}
	}
	return false
}

// RemoveNone drops all vacant slots from the three groups, collapsing
// positions.
func (r *Reaction) RemoveNone() {
	r.Reactants = compact(r.Reactants)
	r.Agents = compact(r.Agents)
	r.Products = compact(r.Products)
}

func compact(group []Entry) []Entry {
	out := group[:0]
	for _, e := range group {
		if e.Present {
			out = append(out, e)
		}
	}
	return out
}

// Oracle returns the molecule oracle the reaction was constructed with.
func (r *Reaction) Oracle() molecule.Oracle {
	return r.oracle
}

// RenderOptions returns the fixed render options of the instance.
func (r *Reaction) RenderOptions() molecule.RenderOptions {
	return r.renderOpts
}
