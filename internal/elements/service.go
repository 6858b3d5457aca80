// Package elements serves the periodic table to the outside world: a
// Service that wires the catalog to the grid builder, filter evaluator and
// display composer, plus the gin handler exposing it over HTTP.
package elements

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"elementhub/internal/display"
	"elementhub/internal/filter"
	"elementhub/internal/table"
	"elementhub/pkg/catalog"
	"elementhub/pkg/logger"
	"elementhub/pkg/models"
)

// Service is safe for concurrent use: the catalog and grid are read-only and
// the memo is an internally locked LRU.
type Service struct {
	catalog *catalog.Catalog
	builder table.Builder
	grid    table.Grid
	memo    *lru.Cache[string, display.Table]
	log     *zap.SugaredLogger
}

type Options struct {
	// Cutoff is the highest atomic number placed on the grid; 0 means 92.
	Cutoff int
	// CacheSize bounds the composed-table memo; 0 disables it.
	CacheSize int
}

func NewService(c *catalog.Catalog, opts Options) (*Service, error) {
	s := &Service{
		catalog: c,
		builder: table.Builder{Cutoff: opts.Cutoff},
		log:     logger.Component("elements"),
	}
	s.grid = s.builder.Build(c.Elements())

	if opts.CacheSize > 0 {
		memo, err := lru.New[string, display.Table](opts.CacheSize)
		if err != nil {
			return nil, err
		}
		s.memo = memo
	}
	return s, nil
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Grid returns the grid built from the catalog. It is a value copy; the
// element pointers inside are shared and read-only.
func (s *Service) Grid() table.Grid {
	return s.grid
}

// Table composes the display table for filters with active highlighted.
func (s *Service) Table(filters filter.Set, active int) display.Table {
	key := filters.Key()
	if s.memo != nil {
		if t, ok := s.memo.Get(key); ok {
			return t.WithActive(active)
		}
	}

	matching := filter.MatchingIDs(s.catalog.Elements(), filters)
	t := display.Compose(s.grid, matching, filters, 0)
	if s.memo != nil {
		s.memo.Add(key, t)
		s.log.Debugw("table composed", logger.FieldFilterKey, key, logger.FieldCount, len(matching))
	}
	return t.WithActive(active)
}

// List returns the matching elements in catalog order.
func (s *Service) List(filters filter.Set) []models.Element {
	return filter.Select(s.catalog.Elements(), filters)
}

// Get wraps catalog.ErrNotFound for unknown atomic numbers.
func (s *Service) Get(atomicNumber int) (models.Element, error) {
	return s.catalog.Lookup(atomicNumber)
}

func (s *Service) Legend() []display.LegendEntry {
	return display.Legend()
}

type Stats struct {
	Elements   int `json:"elements"`
	Placed     int `json:"placed"`
	Cutoff     int `json:"cutoff"`
	CachedKeys int `json:"cached_tables"`
}

func (s *Service) Stats() Stats {
	st := Stats{
		Elements: s.catalog.Len(),
		Placed:   len(s.grid.Placed()),
		Cutoff:   s.builder.Cutoff,
	}
	if st.Cutoff <= 0 {
		st.Cutoff = table.DefaultCutoff
	}
	if s.memo != nil {
		st.CachedKeys = s.memo.Len()
	}
	return st
}
