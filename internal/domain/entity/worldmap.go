package entity

import (
	"errors"
	"fmt"
	"sort"
)

// Material ids. 0 is passable, anything above indexes the texture bank (1-based).
const (
	MaterialEmpty = 0
)

var (
	ErrEmptyMap         = errors.New("map has no cells")
	ErrRaggedMap        = errors.New("map rows differ in length")
	ErrNegativeMaterial = errors.New("material id must not be negative")
	ErrOpenBoundary     = errors.New("map perimeter is not fully walled")
	ErrUnknownMaterial  = errors.New("material has no texture")
)

// WorldMap is an immutable grid of material ids. Rows are y, columns are x.
type WorldMap struct {
	width  int
	height int
	cells  []int
}

// NewWorldMap validates and copies a grid given as rows.
// Every perimeter cell must be a wall so that any cast ray terminates inside the grid.
func NewWorldMap(rows [][]int) (*WorldMap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}

	height := len(rows)
	width := len(rows[0])
	cells := make([]int, 0, width*height)

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrRaggedMap)
		}
		for x, id := range row {
			if id < 0 {
				return nil, fmt.Errorf("cell (%d,%d) = %d: %w", x, y, id, ErrNegativeMaterial)
			}
		}
		cells = append(cells, row...)
	}

	m := &WorldMap{width: width, height: height, cells: cells}

	for x := 0; x < width; x++ {
		if m.CellAt(x, 0) == MaterialEmpty || m.CellAt(x, height-1) == MaterialEmpty {
			return nil, fmt.Errorf("column %d: %w", x, ErrOpenBoundary)
		}
	}
	for y := 0; y < height; y++ {
		if m.CellAt(0, y) == MaterialEmpty || m.CellAt(width-1, y) == MaterialEmpty {
			return nil, fmt.Errorf("row %d: %w", y, ErrOpenBoundary)
		}
	}

	return m, nil
}

// Width returns the number of columns
func (m *WorldMap) Width() int {
	return m.width
}

// Height returns the number of rows
func (m *WorldMap) Height() int {
	return m.height
}

// InBounds reports whether (col, row) lies inside the grid
func (m *WorldMap) InBounds(col, row int) bool {
	return col >= 0 && col < m.width && row >= 0 && row < m.height
}

// CellAt returns the material id at (col, row).
// Callers keep queries inside the grid; the walled perimeter guarantees this for ray traversal.
func (m *WorldMap) CellAt(col, row int) int {
	return m.cells[row*m.width+col]
}

// IsWall reports whether the cell containing pos is a wall. Positions outside the grid count as walls.
func (m *WorldMap) IsWall(pos Vec2) bool {
	col, row := pos.Cell()
	if !m.InBounds(col, row) {
		return true
	}
	return m.CellAt(col, row) != MaterialEmpty
}

// Materials returns the distinct wall material ids in ascending order
func (m *WorldMap) Materials() []int {
	seen := make(map[int]struct{})
	for _, id := range m.cells {
		if id != MaterialEmpty {
			seen[id] = struct{}{}
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ValidateMaterials checks that every wall material has one of count textures
func (m *WorldMap) ValidateMaterials(count int) error {
	for _, id := range m.Materials() {
		if id > count {
			return fmt.Errorf("material %d (bank has %d): %w", id, count, ErrUnknownMaterial)
		}
	}
	return nil
}

// referenceColumns is indexed [x][y]: each inner slice is one column of the map
var referenceColumns = [][]int{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 3, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 3, 0, 3, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 3, 0, 3, 0, 0, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 1},
	{1, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 1},
	{1, 0, 2, 2, 0, 0, 0, 0, 0, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 3, 0, 0, 0, 2, 2, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 2, 2, 0, 2, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 2, 2, 0, 2, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 2, 0, 0, 3, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// ReferenceMap returns the built-in 20x20 map with a solid perimeter and materials 1-3
func ReferenceMap() *WorldMap {
	rows := make([][]int, len(referenceColumns[0]))
	for y := range rows {
		rows[y] = make([]int, len(referenceColumns))
		for x, column := range referenceColumns {
			rows[y][x] = column[y]
		}
	}

	m, err := NewWorldMap(rows)
	if err != nil {
		panic(fmt.Sprintf("reference map: %v", err))
	}
	return m
}
