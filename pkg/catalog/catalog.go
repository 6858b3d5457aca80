// Package catalog holds the immutable element catalog: an ordered list of
// element records keyed by atomic number.
//
// A Catalog is built once (from the embedded fixture, a JSON or CSV file, or
// the sqlite store) and only read afterwards. Callers pass it explicitly into
// the grid builder and filter evaluator; there is no package-level mutable
// state.
package catalog

import (
	"sort"

	"github.com/cockroachdb/errors"

	"elementhub/pkg/models"
)

var (
	// ErrInvalidCatalog is returned by New when the records cannot form a catalog.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrNotFound is returned when an atomic number is not in the catalog.
	ErrNotFound = errors.New("element not found")
)

type Catalog struct {
	elements []models.Element
	index    map[int]int
}

// New validates elems and returns a catalog that keeps their order.
//
// Validation rejects non-positive or repeated atomic numbers, unknown
// category / state / block values, and two elements whose (period, group)
// coordinates land on the same grid cell. The grid builder itself never
// checks for collisions, so this is the only place they are caught.
func New(elems []models.Element) (*Catalog, error) {
	if err := Validate(elems); err != nil {
		return nil, err
	}
	c := &Catalog{
		elements: make([]models.Element, len(elems)),
		index:    make(map[int]int, len(elems)),
	}
	copy(c.elements, elems)
	for i, e := range c.elements {
		c.index[e.AtomicNumber] = i
	}
	return c, nil
}

// MustNew is New for fixtures that are known to be valid.
func MustNew(elems []models.Element) *Catalog {
	c, err := New(elems)
	if err != nil {
		panic(err)
	}
	return c
}

func Validate(elems []models.Element) error {
	seen := make(map[int]struct{}, len(elems))
	type cell struct{ period, group int }
	cells := make(map[cell]int, len(elems))

	for _, e := range elems {
		if e.AtomicNumber <= 0 {
			return errors.Wrapf(ErrInvalidCatalog, "atomic number %d is not positive (%s)", e.AtomicNumber, e.Symbol)
		}
		if _, dup := seen[e.AtomicNumber]; dup {
			return errors.Wrapf(ErrInvalidCatalog, "duplicate atomic number %d", e.AtomicNumber)
		}
		seen[e.AtomicNumber] = struct{}{}

		if !e.Category.Valid() {
			return errors.Wrapf(ErrInvalidCatalog, "element %d: unknown category %q", e.AtomicNumber, e.Category)
		}
		if !e.State.Valid() {
			return errors.Wrapf(ErrInvalidCatalog, "element %d: unknown state %q", e.AtomicNumber, e.State)
		}
		if !e.Block.Valid() {
			return errors.Wrapf(ErrInvalidCatalog, "element %d: unknown block %q", e.AtomicNumber, e.Block)
		}

		if e.Period < models.MinPeriod || e.Period > models.MaxPeriod {
			return errors.Wrapf(ErrInvalidCatalog, "element %d: period %d out of range %d-%d",
				e.AtomicNumber, e.Period, models.MinPeriod, models.MaxPeriod)
		}

		if e.Group == nil {
			continue
		}
		if *e.Group < models.MinGroup || *e.Group > models.MaxGroup {
			return errors.Wrapf(ErrInvalidCatalog, "element %d: group %d out of range %d-%d",
				e.AtomicNumber, *e.Group, models.MinGroup, models.MaxGroup)
		}
		k := cell{period: e.Period, group: *e.Group}
		if other, taken := cells[k]; taken {
			return errors.Wrapf(ErrInvalidCatalog,
				"elements %d and %d both sit at period %d group %d",
				other, e.AtomicNumber, e.Period, *e.Group)
		}
		cells[k] = e.AtomicNumber
	}
	return nil
}

// Elements returns the records in catalog order. The slice is a copy; the
// records themselves must be treated as read-only.
func (c *Catalog) Elements() []models.Element {
	out := make([]models.Element, len(c.elements))
	copy(out, c.elements)
	return out
}

func (c *Catalog) Len() int {
	return len(c.elements)
}

// Get looks an element up by atomic number.
func (c *Catalog) Get(atomicNumber int) (models.Element, bool) {
	i, ok := c.index[atomicNumber]
	if !ok {
		return models.Element{}, false
	}
	return c.elements[i], true
}

// Lookup is Get returning ErrNotFound instead of a bool.
func (c *Catalog) Lookup(atomicNumber int) (models.Element, error) {
	e, ok := c.Get(atomicNumber)
	if !ok {
		return models.Element{}, errors.Wrapf(ErrNotFound, "atomic number %d", atomicNumber)
	}
	return e, nil
}

// IDs returns every atomic number in ascending order.
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.elements))
	for _, e := range c.elements {
		ids = append(ids, e.AtomicNumber)
	}
	sort.Ints(ids)
	return ids
}
