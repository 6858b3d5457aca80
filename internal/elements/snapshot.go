package elements

import (
	"encoding/json"
	"io"
	"time"

	"github.com/cockroachdb/errors"

	"elementhub/internal/display"
	"elementhub/internal/filter"
	"elementhub/pkg/catalog"
	"elementhub/pkg/models"
)

// Snapshot is a static copy of everything the API serves for the unfiltered
// table, written by export-mirror and served by mirror-server.
type Snapshot struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Source      string                `json:"source"`
	Cutoff      int                   `json:"cutoff"`
	Elements    []models.Element      `json:"elements"`
	Legend      []display.LegendEntry `json:"legend"`
	Table       display.Table         `json:"table"`
}

func (s *Service) Snapshot(source string, now time.Time) Snapshot {
	return Snapshot{
		GeneratedAt: now.UTC(),
		Source:      source,
		Cutoff:      s.Stats().Cutoff,
		Elements:    s.catalog.Elements(),
		Legend:      s.Legend(),
		Table:       s.Table(filter.Set{}, 0),
	}
}

// ReadSnapshot decodes a snapshot and checks that its elements still form a
// valid catalog.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, errors.Wrap(err, "decode snapshot")
	}
	if err := catalog.Validate(snap.Elements); err != nil {
		return Snapshot{}, errors.Wrap(err, "snapshot elements")
	}
	return snap, nil
}
