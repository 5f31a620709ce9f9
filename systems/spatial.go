// Package systems provides the physics systems for the sandbox.
package systems

import (
	"math"
)

// Cell is a discrete grid coordinate. Negative indices are valid.
type Cell struct {
	X, Y int
}

type bucket struct {
	items  []int
	listed bool // present in occupied since the last Clear
}

// SpatialGrid buckets ball indices by uniform cells for neighbor lookups.
// The grid is unbounded: any position maps to a cell, so balls pushed
// outside the viewport between frames are still indexed.
type SpatialGrid struct {
	invCellSize float64
	cells       map[Cell]*bucket
	occupied    []Cell
	count       int
}

// NewSpatialGrid creates an empty grid with the given cell size.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		invCellSize: 1 / cellSize,
		cells:       make(map[Cell]*bucket),
		occupied:    make([]Cell, 0, 64),
	}
}

// Clear removes all entries from the grid.
// Bucket storage is kept for reuse; cost is O(occupied cells).
func (g *SpatialGrid) Clear() {
	for _, c := range g.occupied {
		b := g.cells[c]
		b.items = b.items[:0]
		b.listed = false
	}
	g.occupied = g.occupied[:0]
	g.count = 0
}

// CellOf returns the cell containing the given position.
// Uses floor so that -0.5 lands in cell -1, not 0.
func (g *SpatialGrid) CellOf(x, y float64) Cell {
	return Cell{
		X: int(math.Floor(x * g.invCellSize)),
		Y: int(math.Floor(y * g.invCellSize)),
	}
}

// Insert adds index i to the bucket of the cell containing (x, y).
func (g *SpatialGrid) Insert(i int, x, y float64) {
	c := g.CellOf(x, y)
	b := g.cells[c]
	if b == nil {
		b = &bucket{}
		g.cells[c] = b
	}
	if !b.listed {
		b.listed = true
		g.occupied = append(g.occupied, c)
	}
	b.items = append(b.items, i)
	g.count++
}

// Remove deletes index i from the bucket of the cell containing (x, y).
// Bucket order is not preserved. Reports whether i was found.
func (g *SpatialGrid) Remove(i int, x, y float64) bool {
	b := g.cells[g.CellOf(x, y)]
	if b == nil {
		return false
	}
	for k, v := range b.items {
		if v == i {
			last := len(b.items) - 1
			b.items[k] = b.items[last]
			b.items = b.items[:last]
			g.count--
			return true
		}
	}
	return false
}

// Move re-buckets index i after its position changed from (ox, oy) to (nx, ny).
func (g *SpatialGrid) Move(i int, ox, oy, nx, ny float64) {
	if g.CellOf(ox, oy) == g.CellOf(nx, ny) {
		return
	}
	if g.Remove(i, ox, oy) {
		g.Insert(i, nx, ny)
	}
}

// CellAt returns the bucket for a cell. An absent cell yields an empty slice.
// The returned slice is owned by the grid and is only valid until the next
// Clear, Insert or Remove.
func (g *SpatialGrid) CellAt(cx, cy int) []int {
	if b := g.cells[Cell{X: cx, Y: cy}]; b != nil {
		return b.items
	}
	return nil
}

// Neighbors appends the contents of every cell within reach cells of the
// cell containing (x, y) to dst and returns it. reach 1 is the 3x3 block.
func (g *SpatialGrid) Neighbors(dst []int, x, y float64, reach int) []int {
	center := g.CellOf(x, y)
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			if b := g.cells[Cell{X: center.X + dx, Y: center.Y + dy}]; b != nil {
				dst = append(dst, b.items...)
			}
		}
	}
	return dst
}

// Reach returns how many rings of cells must be searched so that any two
// circles with radius up to maxRadius that overlap are found.
func (g *SpatialGrid) Reach(maxRadius float64) int {
	reach := int(math.Ceil(2 * maxRadius * g.invCellSize))
	if reach < 1 {
		reach = 1
	}
	return reach
}

// Len returns the number of entries currently in the grid.
func (g *SpatialGrid) Len() int {
	return g.count
}

// Each calls fn for every non-empty cell.
func (g *SpatialGrid) Each(fn func(c Cell, items []int)) {
	for _, c := range g.occupied {
		if b := g.cells[c]; len(b.items) > 0 {
			fn(c, b.items)
		}
	}
}
