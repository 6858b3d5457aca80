package catalog

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"elementhub/pkg/models"
)

// CSVHeader is the column order written by WriteCSV. ReadCSV matches columns
// by name, so files may reorder or omit optional ones.
var CSVHeader = []string{
	"atomic_number", "symbol", "name", "atomic_mass", "category", "group", "period", "block",
	"electron_configuration", "electronegativity", "atomic_radius", "ionization_energy",
	"density", "melting_point", "boiling_point", "discovered_by", "discovery_year",
	"state", "description", "uses",
}

// Hand-written files may list uses as "a|b"; WriteCSV emits a JSON array so
// any text survives a round trip.
const usesSep = "|"

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// ReadCSV parses element rows. Rows without an atomic number or symbol are
// skipped; malformed numbers are errors.
func ReadCSV(r io.Reader) ([]models.Element, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}

	var out []models.Element
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read csv line %d", line)
		}
		if len(row) == 0 {
			continue
		}

		rawNumber := valueAt(header, row, "atomic_number")
		symbol := valueAt(header, row, "symbol")
		if rawNumber == "" || symbol == "" {
			continue
		}

		e, err := parseRow(header, row)
		if err != nil {
			return nil, errors.Wrapf(err, "csv line %d (%s)", line, symbol)
		}
		out = append(out, e)
	}
	return out, nil
}

func parseRow(header map[string]int, row []string) (models.Element, error) {
	var (
		e   models.Element
		err error
	)
	if e.AtomicNumber, err = strconv.Atoi(valueAt(header, row, "atomic_number")); err != nil {
		return e, errors.Wrap(err, "atomic_number")
	}
	if e.Period, err = strconv.Atoi(valueAt(header, row, "period")); err != nil {
		return e, errors.Wrap(err, "period")
	}
	if e.Group, err = parseNullInt(valueAt(header, row, "group")); err != nil {
		return e, errors.Wrap(err, "group")
	}
	if e.DiscoveryYear, err = parseNullInt(valueAt(header, row, "discovery_year")); err != nil {
		return e, errors.Wrap(err, "discovery_year")
	}

	floats := []struct {
		col string
		dst **float64
	}{
		{"electronegativity", &e.Electronegativity},
		{"atomic_radius", &e.AtomicRadius},
		{"ionization_energy", &e.IonizationEnergy},
		{"density", &e.Density},
		{"melting_point", &e.MeltingPoint},
		{"boiling_point", &e.BoilingPoint},
	}
	for _, f := range floats {
		if *f.dst, err = parseNullFloat(valueAt(header, row, f.col)); err != nil {
			return e, errors.Wrap(err, f.col)
		}
	}

	e.Symbol = valueAt(header, row, "symbol")
	e.Name = valueAt(header, row, "name")
	e.AtomicMass = valueAt(header, row, "atomic_mass")
	e.Category = models.Category(valueAt(header, row, "category"))
	e.Block = models.Block(valueAt(header, row, "block"))
	e.ElectronConfiguration = valueAt(header, row, "electron_configuration")
	e.DiscoveredBy = nullString(valueAt(header, row, "discovered_by"))
	e.State = models.PhysicalState(valueAt(header, row, "state"))
	if e.State == "" {
		e.State = models.UnknownState
	}
	e.Description = valueAt(header, row, "description")
	if e.Uses, err = parseUses(valueAt(header, row, "uses")); err != nil {
		return e, errors.Wrap(err, "uses")
	}
	return e, nil
}

// WriteCSV writes elems with CSVHeader as the first row.
func WriteCSV(w io.Writer, elems []models.Element) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, e := range elems {
		uses, err := formatUses(e.Uses)
		if err != nil {
			return errors.Wrapf(err, "encode uses of element %d", e.AtomicNumber)
		}
		rec := []string{
			strconv.Itoa(e.AtomicNumber),
			e.Symbol,
			e.Name,
			e.AtomicMass,
			string(e.Category),
			formatNullInt(e.Group),
			strconv.Itoa(e.Period),
			string(e.Block),
			e.ElectronConfiguration,
			formatNullFloat(e.Electronegativity),
			formatNullFloat(e.AtomicRadius),
			formatNullFloat(e.IonizationEnergy),
			formatNullFloat(e.Density),
			formatNullFloat(e.MeltingPoint),
			formatNullFloat(e.BoilingPoint),
			derefString(e.DiscoveredBy),
			formatNullInt(e.DiscoveryYear),
			string(e.State),
			e.Description,
			uses,
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "write element %d", e.AtomicNumber)
		}
	}
	cw.Flush()
	return cw.Error()
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseNullInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseNullFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func nullString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// parseUses accepts a JSON array or the legacy "|"-separated list.
func parseUses(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	if strings.HasPrefix(raw, "[") {
		out := []string{}
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	parts := strings.Split(raw, usesSep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func formatUses(uses []string) (string, error) {
	if uses == nil {
		uses = []string{}
	}
	b, err := json.Marshal(uses)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func formatNullInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatNullFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
