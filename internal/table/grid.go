// Package table places a flat element list on the fixed periodic table grid.
package table

import (
	"elementhub/pkg/models"
)

const (
	Rows = 11
	Cols = 18

	// LanthanideRow and ActinideRow are the separated f-block rows. Column 0
	// of both stays blank as a label gutter.
	LanthanideRow = 8
	ActinideRow   = 9

	// DefaultCutoff is the highest atomic number placed on the grid.
	DefaultCutoff = 92

	lanthanumNumber = 57
	actiniumNumber  = 89
	fSeriesLen      = 15
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is one grid slot. Element is nil for an empty slot and points at a
// record owned by the grid; callers must not modify it.
type Cell struct {
	Position Position        `json:"position"`
	Element  *models.Element `json:"element"`
}

type Grid [Rows][Cols]Cell

// Builder places elements using period/group coordinates plus the two
// f-block rows. Cutoff <= 0 means DefaultCutoff.
type Builder struct {
	Cutoff int
}

// Build places elems with the default cutoff.
func Build(elems []models.Element) Grid {
	return Builder{}.Build(elems)
}

// Build returns a fresh grid. Elements are placed in input order and a later
// element overwrites an earlier one on the same cell. Elements above the
// cutoff, or whose coordinates fall outside the grid, are left off silently.
func (b Builder) Build(elems []models.Element) Grid {
	cutoff := b.Cutoff
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}

	var g Grid
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			g[r][c].Position = Position{Row: r, Col: c}
		}
	}

	for i := range elems {
		e := elems[i]
		if e.AtomicNumber > cutoff {
			continue
		}

		if e.Group != nil {
			g.place(e.Period-1, *e.Group-1, &e)
		}

		switch e.Category {
		case models.Lanthanide:
			if p := e.AtomicNumber - lanthanumNumber; p >= 0 && p < fSeriesLen {
				g.place(LanthanideRow, p+1, &e)
			}
		case models.Actinide:
			if p := e.AtomicNumber - actiniumNumber; p >= 0 && p < fSeriesLen {
				g.place(ActinideRow, p+1, &e)
			}
		}
	}
	return g
}

func (g *Grid) place(row, col int, e *models.Element) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return
	}
	g[row][col].Element = e
}

// At returns the element at (row, col), or nil for an empty or out-of-range cell.
func (g *Grid) At(row, col int) *models.Element {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return nil
	}
	return g[row][col].Element
}

// Find returns every position holding atomicNumber, in row-major order. A
// lanthanide or actinide that also has a group shows up twice.
func (g *Grid) Find(atomicNumber int) []Position {
	var out []Position
	for r := range g {
		for c := range g[r] {
			if e := g[r][c].Element; e != nil && e.AtomicNumber == atomicNumber {
				out = append(out, Position{Row: r, Col: c})
			}
		}
	}
	return out
}

// Placed returns the atomic numbers present anywhere on the grid.
func (g *Grid) Placed() map[int]struct{} {
	out := make(map[int]struct{})
	for r := range g {
		for c := range g[r] {
			if e := g[r][c].Element; e != nil {
				out[e.AtomicNumber] = struct{}{}
			}
		}
	}
	return out
}

// Equal compares two grids cell by cell on atomic number.
func (g *Grid) Equal(o *Grid) bool {
	for r := range g {
		for c := range g[r] {
			a, b := g[r][c].Element, o[r][c].Element
			if (a == nil) != (b == nil) {
				return false
			}
			if a != nil && a.AtomicNumber != b.AtomicNumber {
				return false
			}
		}
	}
	return true
}
