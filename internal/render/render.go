// Package render draws boards for a terminal: one glyph per cell, an
// optional per-cell cost table and a legend.
package render

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/gridstar/gridgraph"
)

var glyphs = map[gridgraph.State]byte{
	gridgraph.Open:     '.',
	gridgraph.Wall:     '#',
	gridgraph.Source:   'S',
	gridgraph.Target:   'T',
	gridgraph.Visited:  'x',
	gridgraph.Neighbor: 'o',
	gridgraph.Path:     '*',
}

// legendOrder fixes the order glyphs are listed in Legend.
var legendOrder = []gridgraph.State{
	gridgraph.Open, gridgraph.Wall, gridgraph.Source, gridgraph.Target,
	gridgraph.Visited, gridgraph.Neighbor, gridgraph.Path,
}

// Glyph returns the character drawn for a cell state, '?' if unknown.
func Glyph(s gridgraph.State) byte {
	if b, ok := glyphs[s]; ok {
		return b
	}
	return '?'
}

// Board draws g with one glyph per cell, cells separated by a space and
// one line per row.
func Board(g *gridgraph.Grid) string {
	var b strings.Builder
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Columns(); c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			cell, _ := g.Cell(r, c)
			b.WriteByte(Glyph(cell.State()))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Costs draws the role and the three cost fields of every cell, one block
// per board row with blocks separated by a blank line:
//
//	     SRCE  WALL  TRGT
//	f    2.00     -     -
//	g    0.00     -     -
//	h    2.00     -     -
//
// f is the estimated total distance, g the distance from the source and h
// the estimated distance to the target. Unrecorded costs show "-".
func Costs(g *gridgraph.Grid) string {
	var b strings.Builder
	for r := 0; r < g.Rows(); r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		row := make([]*gridgraph.Cell, g.Columns())
		for c := range row {
			row[c], _ = g.Cell(r, c)
		}

		b.WriteString("   ")
		for _, cell := range row {
			fmt.Fprintf(&b, "%6s", cell.State())
		}
		b.WriteByte('\n')
		costLine(&b, 'f', row, (*gridgraph.Cell).TotalDistance)
		costLine(&b, 'g', row, (*gridgraph.Cell).DistanceToSource)
		costLine(&b, 'h', row, (*gridgraph.Cell).DistanceToTarget)
	}
	return b.String()
}

func costLine(b *strings.Builder, label byte, row []*gridgraph.Cell, cost func(*gridgraph.Cell) (float64, bool)) {
	b.WriteByte(label)
	b.WriteString("  ")
	for _, cell := range row {
		if v, ok := cost(cell); ok {
			fmt.Fprintf(b, "%6.2f", v)
		} else {
			fmt.Fprintf(b, "%6s", "-")
		}
	}
	b.WriteByte('\n')
}

// Legend lists every glyph with its state tag, e.g. ". OPEN  # WALL ...".
func Legend() string {
	parts := make([]string, len(legendOrder))
	for i, s := range legendOrder {
		parts[i] = fmt.Sprintf("%c %s", Glyph(s), s)
	}
	return strings.Join(parts, "  ")
}

// Path formats cells as "r,c -> r,c -> ...", or "(empty)" for no cells.
func Path(cells []*gridgraph.Cell) string {
	if len(cells) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.Coord().String()
	}
	return strings.Join(parts, " -> ")
}
