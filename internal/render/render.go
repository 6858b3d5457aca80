// Package render draws tables, lists and element details for a terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"elementhub/internal/display"
	"elementhub/pkg/models"
)

const cellWidth = 4

var (
	ink    = lipgloss.Color("#101F38")
	muted  = lipgloss.Color("#5c6370")
	accent = lipgloss.Color("#FFC107")
)

// Renderer holds styles bound to one lipgloss renderer, so colour support
// follows the output it writes to.
type Renderer struct {
	r *lipgloss.Renderer

	title    lipgloss.Style
	label    lipgloss.Style
	cell     lipgloss.Style
	dimmed   lipgloss.Style
	active   lipgloss.Style
	header   lipgloss.Style
	body     lipgloss.Style
	separate lipgloss.Style
}

func New(r *lipgloss.Renderer) *Renderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	cell := r.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	return &Renderer{
		r:        r,
		title:    r.NewStyle().Bold(true),
		label:    r.NewStyle().Foreground(muted),
		cell:     cell,
		dimmed:   cell.Foreground(muted).Faint(true),
		active:   cell.Bold(true).Underline(true).Foreground(accent),
		header:   r.NewStyle().Bold(true).Padding(0, 1),
		body:     r.NewStyle().Padding(0, 1),
		separate: r.NewStyle().Foreground(muted),
	}
}

// Table draws the grid row by row. Filtered-out cells keep their symbol but
// are dimmed; the active cell is bracketed.
func (rn *Renderer) Table(t display.Table) string {
	var sb strings.Builder
	for r, row := range t.Cells {
		for _, c := range row {
			sb.WriteString(rn.tableCell(c))
		}
		if r < len(t.Cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (rn *Renderer) tableCell(c display.Cell) string {
	if c.Element == nil || c.State == display.Empty {
		return strings.Repeat(" ", cellWidth)
	}
	sym := c.Element.Symbol
	if c.Active {
		return rn.active.Render("[" + sym + "]")
	}
	if c.State == display.FilteredOut {
		return rn.dimmed.Render(sym)
	}
	return rn.cell.
		Background(lipgloss.Color(c.Element.Category.Color())).
		Foreground(ink).
		Render(sym)
}

// Summary renders the filter summary heading plus match counts.
func (rn *Renderer) Summary(s display.Summary, n display.Counts) string {
	return rn.title.Render(s.Title) + "\n" +
		s.Description + "\n" +
		rn.label.Render(fmt.Sprintf("%d matched, %d filtered out", n.Matched, n.FilteredOut))
}

func (rn *Renderer) Legend(entries []display.LegendEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		swatch := rn.r.NewStyle().Background(lipgloss.Color(e.Color)).Render("  ")
		lines = append(lines, swatch+" "+e.Label+" "+rn.label.Render("("+string(e.Category)+")"))
	}
	return strings.Join(lines, "\n")
}

// Detail renders the element panel as aligned label/value lines.
func (rn *Renderer) Detail(d display.Detail) string {
	rows := [][2]string{
		{"Atomic number", strconv.Itoa(d.AtomicNumber)},
		{"Atomic mass", d.AtomicMass},
		{"Category", d.Category},
		{"State", d.State},
		{"Period", d.Period},
		{"Group", d.Group},
		{"Block", d.Block},
		{"Configuration", d.ElectronConfiguration},
		{"Density", d.Density},
		{"Melting point", d.MeltingPoint},
		{"Boiling point", d.BoilingPoint},
		{"Electronegativity", d.Electronegativity},
		{"Atomic radius", d.AtomicRadius},
		{"Ionization energy", d.IonizationEnergy},
		{"Discovered by", d.DiscoveredBy},
		{"Discovery year", d.DiscoveryYear},
	}
	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row[0]))
	}

	var sb strings.Builder
	heading := rn.r.NewStyle().Bold(true).Foreground(lipgloss.Color(d.Color))
	sb.WriteString(heading.Render(d.Symbol + "  " + d.Name))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(rn.label.Width(width + 2).Render(row[0]))
		sb.WriteString(row[1])
		sb.WriteString("\n")
	}
	if d.Description != "" {
		sb.WriteString("\n" + d.Description + "\n")
	}
	if len(d.Uses) > 0 {
		sb.WriteString("\n" + rn.title.Render("Uses") + "\n")
		for _, u := range d.Uses {
			sb.WriteString("  - " + u + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

var listHeaders = []string{"#", "Symbol", "Name", "Category", "Period", "Group", "Block", "State"}

// List renders elements as a column-aligned table.
func (rn *Renderer) List(elems []models.Element) string {
	rows := make([][]string, 0, len(elems))
	for _, e := range elems {
		group := "-"
		if e.HasGroup() {
			group = strconv.Itoa(*e.Group)
		}
		rows = append(rows, []string{
			strconv.Itoa(e.AtomicNumber),
			e.Symbol,
			e.Name,
			e.Category.Label(),
			strconv.Itoa(e.Period),
			group,
			string(e.Block),
			e.State.Label(),
		})
	}

	widths := make([]int, len(listHeaders))
	for i, h := range listHeaders {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	// Padding counts toward lipgloss widths.
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	sep := rn.separate.Render("|")
	for i, h := range listHeaders {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(rn.header.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")
	for i, w := range widths {
		if i > 0 {
			sb.WriteString(rn.separate.Render("+"))
		}
		sb.WriteString(rn.separate.Render(strings.Repeat("-", w)))
	}
	for _, row := range rows {
		sb.WriteString("\n")
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(sep)
			}
			sb.WriteString(rn.body.Width(widths[i]).Render(cell))
		}
	}
	return sb.String()
}
