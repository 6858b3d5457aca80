// Package filter decides which catalog elements match a set of category,
// state, period and block selections.
package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"elementhub/pkg/models"
)

// ErrInvalidFilter wraps every rejection from Parse.
var ErrInvalidFilter = errors.New("invalid filter")

// Set holds the selected values per dimension. An empty dimension places no
// constraint; values within one dimension are ORed and the dimensions are
// ANDed.
type Set struct {
	Categories []models.Category      `json:"categories"`
	States     []models.PhysicalState `json:"states"`
	Periods    []int                  `json:"periods"`
	Blocks     []models.Block         `json:"blocks"`
}

// Empty reports whether no dimension constrains anything.
func (s Set) Empty() bool {
	return len(s.Categories) == 0 && len(s.States) == 0 && len(s.Periods) == 0 && len(s.Blocks) == 0
}

// Count is the number of selected values across all dimensions.
func (s Set) Count() int {
	return len(s.Categories) + len(s.States) + len(s.Periods) + len(s.Blocks)
}

// Match reports whether e passes every dimension of s.
func Match(e models.Element, s Set) bool {
	return anyOf(s.Categories, e.Category) &&
		anyOf(s.States, e.State) &&
		anyOf(s.Periods, e.Period) &&
		anyOf(s.Blocks, e.Block)
}

func anyOf[T comparable](selected []T, v T) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == v {
			return true
		}
	}
	return false
}

// MatchingIDs returns the atomic numbers of the elements that match s.
// With an empty s every atomic number is returned.
func MatchingIDs(elems []models.Element, s Set) map[int]struct{} {
	out := make(map[int]struct{}, len(elems))
	for _, e := range elems {
		if Match(e, s) {
			out[e.AtomicNumber] = struct{}{}
		}
	}
	return out
}

// Select returns the matching elements in input order.
func Select(elems []models.Element, s Set) []models.Element {
	out := make([]models.Element, 0, len(elems))
	for _, e := range elems {
		if Match(e, s) {
			out = append(out, e)
		}
	}
	return out
}

// Normalize returns a copy with each dimension sorted and de-duplicated.
// Matching results are unchanged.
func (s Set) Normalize() Set {
	return Set{
		Categories: sortedUnique(s.Categories, func(a, b models.Category) bool { return a < b }),
		States:     sortedUnique(s.States, func(a, b models.PhysicalState) bool { return a < b }),
		Periods:    sortedUnique(s.Periods, func(a, b int) bool { return a < b }),
		Blocks:     sortedUnique(s.Blocks, func(a, b models.Block) bool { return a < b }),
	}
}

func sortedUnique[T comparable](in []T, less func(a, b T) bool) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, 0, len(in))
	seen := make(map[T]struct{}, len(in))
	for _, v := range in {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Key is a canonical string for s: two sets with the same matching
// semantics produce the same key regardless of value order or repeats.
func (s Set) Key() string {
	n := s.Normalize()
	var b strings.Builder
	b.WriteString("c=")
	for i, v := range n.Categories {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(v))
	}
	b.WriteString(";s=")
	for i, v := range n.States {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(v))
	}
	b.WriteString(";p=")
	for i, v := range n.Periods {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteString(";b=")
	for i, v := range n.Blocks {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(v))
	}
	return b.String()
}

// Validate checks that every selected value is one the catalog can hold.
func (s Set) Validate() error {
	for _, c := range s.Categories {
		if !c.Valid() {
			return errors.Wrapf(ErrInvalidFilter, "unknown category %q", c)
		}
	}
	for _, st := range s.States {
		if !st.Valid() {
			return errors.Wrapf(ErrInvalidFilter, "unknown state %q", st)
		}
	}
	for _, p := range s.Periods {
		if p < models.MinPeriod || p > models.MaxPeriod {
			return errors.Wrapf(ErrInvalidFilter, "period %d out of range %d-%d", p, models.MinPeriod, models.MaxPeriod)
		}
	}
	for _, b := range s.Blocks {
		if !b.Valid() {
			return errors.Wrapf(ErrInvalidFilter, "unknown block %q", b)
		}
	}
	return nil
}

// Parse builds a validated Set from raw string values, as they arrive from
// query strings or command-line flags. Each raw value may itself be a
// comma-separated list; blanks are ignored and values are lower-cased.
func Parse(categories, states, periods, blocks []string) (Set, error) {
	var s Set
	for _, v := range splitAll(categories) {
		s.Categories = append(s.Categories, models.Category(v))
	}
	for _, v := range splitAll(states) {
		s.States = append(s.States, models.PhysicalState(v))
	}
	for _, v := range splitAll(periods) {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Set{}, errors.Wrapf(ErrInvalidFilter, "period %q is not a number", v)
		}
		s.Periods = append(s.Periods, p)
	}
	for _, v := range splitAll(blocks) {
		s.Blocks = append(s.Blocks, models.Block(v))
	}
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

func splitAll(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
