package systems

import "testing"

// TestCellOfFloors verifies negative coordinates round toward negative infinity.
func TestCellOfFloors(t *testing.T) {
	g := NewSpatialGrid(50)

	tests := []struct {
		name string
		x, y float64
		want Cell
	}{
		{"origin", 0, 0, Cell{0, 0}},
		{"inside first cell", 49.9, 10, Cell{0, 0}},
		{"cell boundary", 50, 100, Cell{1, 2}},
		{"just negative", -0.5, -0.5, Cell{-1, -1}},
		{"negative boundary", -50, 49.9, Cell{-1, 0}},
		{"past negative boundary", -50.1, -100.1, Cell{-2, -3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.CellOf(tc.x, tc.y); got != tc.want {
				t.Errorf("CellOf(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestSpatialGridInsertAndQuery(t *testing.T) {
	g := NewSpatialGrid(50)
	g.Insert(0, 10, 10)
	g.Insert(1, 40, 20)
	g.Insert(2, -10, 10)

	if got := g.CellAt(0, 0); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("CellAt(0,0) = %v, want [0 1] in insertion order", got)
	}
	if got := g.CellAt(-1, 0); len(got) != 1 || got[0] != 2 {
		t.Errorf("CellAt(-1,0) = %v, want [2]", got)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}

	neighbors := g.Neighbors(nil, 60, 10, 1)
	if len(neighbors) != 2 {
		t.Errorf("Neighbors around cell (1,0) = %d entries, want 2", len(neighbors))
	}
	neighbors = g.Neighbors(nil, 5, 5, 1)
	if len(neighbors) != 3 {
		t.Errorf("Neighbors around cell (0,0) = %d entries, want 3", len(neighbors))
	}
}

func TestSpatialGridAbsentCell(t *testing.T) {
	g := NewSpatialGrid(50)

	if got := g.CellAt(7, -3); len(got) != 0 {
		t.Errorf("absent cell returned %d entries", len(got))
	}

	occupied := 0
	g.Each(func(Cell, []int) { occupied++ })
	if occupied != 0 || g.Len() != 0 {
		t.Error("querying an absent cell must not create entries")
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid(50)
	g.Insert(0, 120, 80)
	g.Clear()

	if g.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", g.Len())
	}
	if got := g.CellAt(2, 1); len(got) != 0 {
		t.Errorf("stale bucket after Clear: %v", got)
	}

	// Buckets are reusable after Clear
	g.Insert(0, 130, 90)
	if got := g.CellAt(2, 1); len(got) != 1 {
		t.Errorf("bucket after re-insert = %d entries, want 1", len(got))
	}
}

func TestSpatialGridMove(t *testing.T) {
	g := NewSpatialGrid(50)
	g.Insert(0, 10, 10)
	g.Insert(1, 20, 20)

	// Same cell: nothing changes
	g.Move(0, 10, 10, 30, 30)
	if got := g.CellAt(0, 0); len(got) != 2 {
		t.Fatalf("CellAt(0,0) after in-cell move = %v, want 2 entries", got)
	}

	g.Move(0, 30, 30, 60, -5)
	if got := g.CellAt(0, 0); len(got) != 1 || got[0] != 1 {
		t.Errorf("CellAt(0,0) = %v, want [1]", got)
	}
	if got := g.CellAt(1, -1); len(got) != 1 || got[0] != 0 {
		t.Errorf("CellAt(1,-1) = %v, want [0]", got)
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}

	// Emptied and refilled cells are visited once
	g.Move(1, 20, 20, 70, 0)
	g.Move(1, 70, 0, 20, 20)
	visits := make(map[Cell]int)
	g.Each(func(c Cell, items []int) { visits[c]++ })
	for c, n := range visits {
		if n != 1 {
			t.Errorf("cell %v visited %d times", c, n)
		}
	}
	if len(visits) != 2 {
		t.Errorf("non-empty cells = %d, want 2", len(visits))
	}
}

func TestSpatialGridRemoveMissing(t *testing.T) {
	g := NewSpatialGrid(50)
	g.Insert(3, 10, 10)

	if g.Remove(4, 10, 10) {
		t.Error("removed an index that was never inserted")
	}
	if g.Remove(3, 500, 500) {
		t.Error("removed from the wrong cell")
	}
	if !g.Remove(3, 10, 10) || g.Len() != 0 {
		t.Errorf("Remove(3) failed, Len() = %d", g.Len())
	}
}

func TestSpatialGridReach(t *testing.T) {
	tests := []struct {
		cellSize, radius float64
		want             int
	}{
		{50, 10, 1},
		{50, 25, 1},
		{50, 30, 2},
		{10, 10, 2},
		{50, 0, 1},
	}
	for _, tc := range tests {
		g := NewSpatialGrid(tc.cellSize)
		if got := g.Reach(tc.radius); got != tc.want {
			t.Errorf("Reach(cell=%v, r=%v) = %d, want %d", tc.cellSize, tc.radius, got, tc.want)
		}
	}
}
