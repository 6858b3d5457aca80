package display

import (
	"fmt"
	"strconv"

	"elementhub/internal/filter"
	"elementhub/pkg/models"
)

const unknown = "Unknown"

type LegendEntry struct {
	Category models.Category `json:"category"`
	Label    string          `json:"label"`
	Color    string          `json:"color"`
}

// Legend lists every category in canonical order.
func Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, LegendEntry{Category: c, Label: c.Label(), Color: c.Color()})
	}
	return out
}

// Detail is the formatted text of an element's detail panel.
type Detail struct {
	AtomicNumber          int      `json:"atomic_number"`
	Symbol                string   `json:"symbol"`
	Name                  string   `json:"name"`
	AtomicMass            string   `json:"atomic_mass"`
	Category              string   `json:"category"`
	Color                 string   `json:"color"`
	State                 string   `json:"state"`
	Density               string   `json:"density"`
	MeltingPoint          string   `json:"melting_point"`
	BoilingPoint          string   `json:"boiling_point"`
	Electronegativity     string   `json:"electronegativity"`
	AtomicRadius          string   `json:"atomic_radius"`
	IonizationEnergy      string   `json:"ionization_energy"`
	Period                string   `json:"period"`
	Group                 string   `json:"group"`
	Block                 string   `json:"block"`
	DiscoveredBy          string   `json:"discovered_by"`
	DiscoveryYear         string   `json:"discovery_year"`
	ElectronConfiguration string   `json:"electron_configuration"`
	Description           string   `json:"description"`
	Uses                  []string `json:"uses"`
}

func NewDetail(e models.Element) Detail {
	d := Detail{
		AtomicNumber:          e.AtomicNumber,
		Symbol:                e.Symbol,
		Name:                  e.Name,
		AtomicMass:            e.AtomicMass,
		Category:              e.Category.Label(),
		Color:                 e.Category.Color(),
		State:                 e.State.Label(),
		Density:               withUnit(e.Density, "g/cm³"),
		MeltingPoint:          withUnit(e.MeltingPoint, "°C"),
		BoilingPoint:          withUnit(e.BoilingPoint, "°C"),
		Electronegativity:     withUnit(e.Electronegativity, ""),
		AtomicRadius:          withUnit(e.AtomicRadius, "pm"),
		IonizationEnergy:      withUnit(e.IonizationEnergy, "eV"),
		Period:                strconv.Itoa(e.Period),
		Group:                 "N/A",
		Block:                 string(e.Block),
		DiscoveredBy:          unknown,
		DiscoveryYear:         unknown,
		ElectronConfiguration: e.ElectronConfiguration,
		Description:           e.Description,
		Uses:                  e.Uses,
	}
	if e.Group != nil {
		d.Group = strconv.Itoa(*e.Group)
	}
	if e.DiscoveredBy != nil && *e.DiscoveredBy != "" {
		d.DiscoveredBy = *e.DiscoveredBy
	}
	if e.DiscoveryYear != nil && *e.DiscoveryYear != 0 {
		d.DiscoveryYear = strconv.Itoa(*e.DiscoveryYear)
	}
	if d.Uses == nil {
		d.Uses = []string{}
	}
	return d
}

func withUnit(v *float64, unit string) string {
	if v == nil {
		return unknown
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// Summary is the notification shown after filters are applied or cleared.
type Summary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

func Summarize(s filter.Set) Summary {
	n := s.Count()
	if n == 0 {
		return Summary{
			Title:       "Filters Cleared",
			Description: "Showing all elements in the periodic table.",
		}
	}
	noun := "filters"
	if n == 1 {
		noun = "filter"
	}
	return Summary{
		Title:       "Filters Applied",
		Description: fmt.Sprintf("Showing elements matching %d selected %s.", n, noun),
		Count:       n,
	}
}
