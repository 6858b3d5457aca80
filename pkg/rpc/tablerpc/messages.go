package tablerpc

import (
	"elementhub/internal/display"
	"elementhub/pkg/models"
)

// Filters carries raw filter values; the server parses them the same way as
// HTTP query strings.
type Filters struct {
	Categories []string `json:"categories,omitempty"`
	States     []string `json:"states,omitempty"`
	Periods    []string `json:"periods,omitempty"`
	Blocks     []string `json:"blocks,omitempty"`
}

type ListElementsRequest struct {
	Filters Filters `json:"filters"`
}

type ListElementsResponse struct {
	Total   int              `json:"total"`
	Summary display.Summary  `json:"summary"`
	Items   []models.Element `json:"items"`
}

type GetElementRequest struct {
	AtomicNumber int `json:"atomic_number"`
}

type GetElementResponse struct {
	Element models.Element `json:"element"`
	Detail  display.Detail `json:"detail"`
}

type GetTableRequest struct {
	Filters Filters `json:"filters"`
	Active  int     `json:"active,omitempty"`
}

type GetTableResponse struct {
	Summary display.Summary `json:"summary"`
	Counts  display.Counts  `json:"counts"`
	Table   display.Table   `json:"table"`
}

type GetLegendRequest struct{}

type GetLegendResponse struct {
	Items []display.LegendEntry `json:"items"`
}
