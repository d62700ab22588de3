// Package referee holds the pure win-detection primitive. It never
// mutates the board and keeps no state of its own.
package referee

import "github.com/thureindev/twist-tac-toe/internal/entity"

// directions to scan through the anchor cell: vertical, horizontal and
// the two diagonals. Each is walked both ways.
var directions = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// FindWinningLine - looks for a contiguous run of the role's marks of at
// least winLength cells passing through (x, y). On a hit it returns the
// whole run, ordered from one end to the other; otherwise ok is false.
func FindWinningLine(cells [][]entity.Role, role entity.Role, x, y, winLength int) ([]entity.Cell, bool) {
	if len(cells) == 0 || role == entity.RoleNone {
		return nil, false
	}

	height := len(cells)
	width := len(cells[0])

	if x < 0 || x >= width || y < 0 || y >= height {
		return nil, false
	}

	if cells[y][x] != role {
		return nil, false
	}

	for _, dir := range directions {
		dx, dy := dir[0], dir[1]

		line := []entity.Cell{{X: x, Y: y}}

		// backward from the anchor, prepending so the run stays ordered
		bx, by := x-dx, y-dy
		for bx >= 0 && bx < width && by >= 0 && by < height && cells[by][bx] == role {
			line = append([]entity.Cell{{X: bx, Y: by}}, line...)
			bx -= dx
			by -= dy
		}

		// forward
		fx, fy := x+dx, y+dy
		for fx >= 0 && fx < width && fy >= 0 && fy < height && cells[fy][fx] == role {
			line = append(line, entity.Cell{X: fx, Y: fy})
			fx += dx
			fy += dy
		}

		if len(line) >= winLength {
			return line, true
		}
	}

	return nil, false
}
