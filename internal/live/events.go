package live

import (
	"elementhub/internal/display"
	"elementhub/internal/filter"
)

// Client message types.
const (
	TypeFilters = "filters" // replace the session's filter set
	TypeSelect  = "select"  // set the active element
	TypeClear   = "clear"   // drop filters and selection
)

// Server message types.
const (
	TypeWelcome = "welcome"
	TypeTable   = "table"
	TypeError   = "error"
)

// FilterPayload carries filter values as raw strings so they go through the
// same parsing as query strings and flags.
type FilterPayload struct {
	Categories []string `json:"categories,omitempty"`
	States     []string `json:"states,omitempty"`
	Periods    []string `json:"periods,omitempty"`
	Blocks     []string `json:"blocks,omitempty"`
}

type ClientMessage struct {
	Type         string         `json:"type"`
	Filters      *FilterPayload `json:"filters,omitempty"`
	AtomicNumber int            `json:"atomic_number,omitempty"`
}

type ServerMessage struct {
	Type      string           `json:"type"`
	Session   string           `json:"session"`
	Transport string           `json:"transport,omitempty"`
	Filters   *filter.Set      `json:"filters,omitempty"`
	Summary   *display.Summary `json:"summary,omitempty"`
	Counts    *display.Counts  `json:"counts,omitempty"`
	Table     *display.Table   `json:"table,omitempty"`
	Error     string           `json:"error,omitempty"`
}
