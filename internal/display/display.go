// Package display derives what each grid cell should look like from a built
// grid, the matching id set and the active element.
package display

import (
	"elementhub/internal/filter"
	"elementhub/internal/table"
	"elementhub/pkg/models"
)

type State string

const (
	Empty       State = "empty"
	Matched     State = "matched"
	FilteredOut State = "filtered-out"
)

// Cell is the rendered view of one grid slot.
type Cell struct {
	Row     int             `json:"row"`
	Col     int             `json:"col"`
	State   State           `json:"state"`
	Active  bool            `json:"active,omitempty"`
	Element *models.Element `json:"element,omitempty"`
}

// Table is a grid plus per-cell display state. It is built fresh for every
// filter change and never patched in place.
type Table struct {
	Rows   int      `json:"rows"`
	Cols   int      `json:"cols"`
	Active int      `json:"active,omitempty"`
	Cells  [][]Cell `json:"cells"`
}

type Counts struct {
	Matched     int `json:"matched"`
	FilteredOut int `json:"filtered_out"`
	Empty       int `json:"empty"`
}

// Compose merges g with matching. An empty filter set means everything
// matches regardless of matching. active is an atomic number; 0 selects
// nothing.
func Compose(g table.Grid, matching map[int]struct{}, s filter.Set, active int) Table {
	everything := s.Empty()
	t := Table{
		Rows:  table.Rows,
		Cols:  table.Cols,
		Cells: make([][]Cell, table.Rows),
	}
	for r := 0; r < table.Rows; r++ {
		row := make([]Cell, table.Cols)
		for c := 0; c < table.Cols; c++ {
			cell := Cell{Row: r, Col: c, State: Empty}
			if e := g[r][c].Element; e != nil {
				cell.Element = e
				cell.State = FilteredOut
				if _, ok := matching[e.AtomicNumber]; everything || ok {
					cell.State = Matched
				}
			}
			row[c] = cell
		}
		t.Cells[r] = row
	}
	return t.WithActive(active)
}

// WithActive returns a copy of t with the active flag moved to atomicNumber.
// Cells share element pointers with t.
func (t Table) WithActive(atomicNumber int) Table {
	out := Table{Rows: t.Rows, Cols: t.Cols, Active: atomicNumber, Cells: make([][]Cell, len(t.Cells))}
	for r, row := range t.Cells {
		cp := make([]Cell, len(row))
		for c, cell := range row {
			cell.Active = atomicNumber > 0 && cell.Element != nil && cell.Element.AtomicNumber == atomicNumber
			cp[c] = cell
		}
		out.Cells[r] = cp
	}
	if atomicNumber <= 0 {
		out.Active = 0
	}
	return out
}

func (t Table) Counts() Counts {
	var n Counts
	for _, row := range t.Cells {
		for _, cell := range row {
			switch cell.State {
			case Matched:
				n.Matched++
			case FilteredOut:
				n.FilteredOut++
			default:
				n.Empty++
			}
		}
	}
	return n
}

// ActiveElement returns the highlighted element, if it is on the grid.
func (t Table) ActiveElement() (*models.Element, bool) {
	for _, row := range t.Cells {
		for _, cell := range row {
			if cell.Active {
				return cell.Element, true
			}
		}
	}
	return nil, false
}
