package entity

// Board owns the grid and the raw placement rules: bounds, cell
// occupancy and the limited-piece elimination policy. Everything above
// it (turn order, win detection, scoring) lives in the game package.
type Board struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  [][]Role `json:"cells"` // Cells[y][x]

	LimitedPieces bool `json:"limited_pieces"`
	NumPieces     int  `json:"num_pieces"`
	FifoOrder     bool `json:"fifo_order"`

	// Placed keeps per-role placement order, oldest first. It is what
	// makes FIFO elimination possible without scanning the grid.
	Placed map[Role][]Cell `json:"placed,omitempty"`
}

func NewBoard(width, height int) *Board {
	board := &Board{
		Width:  width,
		Height: height,
	}
	board.Reset()

	return board
}

// PlaceMark - puts the role's mark at (x, y). Returns false without any
// mutation when the cell is out of bounds or occupied, or when the role
// is at its piece cap and FIFO elimination is off.
func (that *Board) PlaceMark(x, y int, role Role) bool {
	if !that.InBounds(x, y) {
		return false
	}

	if that.Cells[y][x] != RoleNone {
		return false
	}

	if that.LimitedPieces && len(that.Placed[role]) >= that.NumPieces {
		if !that.FifoOrder {
			return false
		}

		that.removeOldest(role)
	}

	that.Cells[y][x] = role
	that.Placed[role] = append(that.Placed[role], Cell{X: x, Y: y})

	return true
}

// removeOldest - frees the role's oldest placed mark.
func (that *Board) removeOldest(role Role) {
	placed := that.Placed[role]
	if len(placed) == 0 {
		return
	}

	oldest := placed[0]
	that.Cells[oldest.Y][oldest.X] = RoleNone
	that.Placed[role] = placed[1:]
}

// HasPlayableSquares - reports whether any empty cell remains.
func (that *Board) HasPlayableSquares() bool {
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == RoleNone {
				return true
			}
		}
	}

	return false
}

// Reset - clears all cells and the placement history.
func (that *Board) Reset() {
	cells := make([][]Role, that.Height)
	for y := range cells {
		cells[y] = make([]Role, that.Width)
	}

	that.Cells = cells
	that.Placed = make(map[Role][]Cell)
}

// UpdateSize - resizes the grid. The grid is rebuilt empty; callers only
// resize between games, never mid-game.
func (that *Board) UpdateSize(width, height int) {
	that.Width = width
	that.Height = height
	that.Reset()
}

func (that *Board) Size() (int, int) {
	return that.Width, that.Height
}

func (that *Board) InBounds(x, y int) bool {
	return x >= 0 && x < that.Width && y >= 0 && y < that.Height
}

// At returns the mark at (x, y), or RoleNone when out of bounds.
func (that *Board) At(x, y int) Role {
	if !that.InBounds(x, y) {
		return RoleNone
	}

	return that.Cells[y][x]
}
