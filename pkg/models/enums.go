package models

type Category string

const (
	AlkaliMetal         Category = "alkali-metal"
	AlkalineEarthMetal  Category = "alkaline-earth-metal"
	TransitionMetal     Category = "transition-metal"
	PostTransitionMetal Category = "post-transition-metal"
	Metalloid           Category = "metalloid"
	Nonmetal            Category = "nonmetal"
	NobleGas            Category = "noble-gas"
	Lanthanide          Category = "lanthanide"
	Actinide            Category = "actinide"
)

// Categories lists every category in legend order.
var Categories = []Category{
	AlkaliMetal,
	AlkalineEarthMetal,
	TransitionMetal,
	PostTransitionMetal,
	Metalloid,
	Nonmetal,
	NobleGas,
	Lanthanide,
	Actinide,
}

var categoryLabels = map[Category]string{
	AlkaliMetal:         "Alkali Metal",
	AlkalineEarthMetal:  "Alkaline Earth Metal",
	TransitionMetal:     "Transition Metal",
	PostTransitionMetal: "Post-Transition Metal",
	Metalloid:           "Metalloid",
	Nonmetal:            "Nonmetal",
	NobleGas:            "Noble Gas",
	Lanthanide:          "Lanthanide",
	Actinide:            "Actinide",
}

var categoryColors = map[Category]string{
	AlkaliMetal:         "#ff6b6b",
	AlkalineEarthMetal:  "#ff9e7d",
	TransitionMetal:     "#ffd166",
	PostTransitionMetal: "#06d6a0",
	Metalloid:           "#4cc9f0",
	Nonmetal:            "#8338ec",
	NobleGas:            "#3a86ff",
	Lanthanide:          "#fb5607",
	Actinide:            "#e63946",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display name, or "Unknown" for values outside the set.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return "Unknown"
}

// Color returns the legend colour as a hex string. Unknown categories get grey.
func (c Category) Color() string {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return "#888888"
}

type PhysicalState string

const (
	Solid        PhysicalState = "solid"
	Liquid       PhysicalState = "liquid"
	Gas          PhysicalState = "gas"
	UnknownState PhysicalState = "unknown"
)

var States = []PhysicalState{Solid, Liquid, Gas, UnknownState}

func (s PhysicalState) Valid() bool {
	switch s {
	case Solid, Liquid, Gas, UnknownState:
		return true
	}
	return false
}

func (s PhysicalState) Label() string {
	switch s {
	case Solid:
		return "Solid"
	case Liquid:
		return "Liquid"
	case Gas:
		return "Gas"
	default:
		return "Unknown"
	}
}

type Block string

const (
	BlockS Block = "s"
	BlockP Block = "p"
	BlockD Block = "d"
	BlockF Block = "f"
)

var Blocks = []Block{BlockS, BlockP, BlockD, BlockF}

func (b Block) Valid() bool {
	switch b {
	case BlockS, BlockP, BlockD, BlockF:
		return true
	}
	return false
}

const (
	MinPeriod = 1
	MaxPeriod = 7
	MinGroup  = 1
	MaxGroup  = 18
)
