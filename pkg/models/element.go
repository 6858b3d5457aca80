package models

// Element is one record of the element catalog. AtomicNumber is the only
// identity: lookups and "is this the active element" checks compare it, never
// the struct itself.
type Element struct {
	AtomicNumber          int           `json:"atomic_number"`
	Symbol                string        `json:"symbol"`
	Name                  string        `json:"name"`
	AtomicMass            string        `json:"atomic_mass"` // kept as text to preserve sourced precision
	Category              Category      `json:"category"`
	Group                 *int          `json:"group"` // nil for lanthanides/actinides
	Period                int           `json:"period"`
	Block                 Block         `json:"block"`
	ElectronConfiguration string        `json:"electron_configuration"`
	Electronegativity     *float64      `json:"electronegativity"`
	AtomicRadius          *float64      `json:"atomic_radius"`
	IonizationEnergy      *float64      `json:"ionization_energy"`
	Density               *float64      `json:"density"`
	MeltingPoint          *float64      `json:"melting_point"`
	BoilingPoint          *float64      `json:"boiling_point"`
	DiscoveredBy          *string       `json:"discovered_by"`
	DiscoveryYear         *int          `json:"discovery_year"`
	State                 PhysicalState `json:"state"`
	Description           string        `json:"description"`
	Uses                  []string      `json:"uses"`
}

// HasGroup reports whether the element carries a standard group coordinate.
func (e Element) HasGroup() bool {
	return e.Group != nil
}
