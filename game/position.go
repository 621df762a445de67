package game

import (
	"fmt"

	"othello/meta"
)

// Position is a (column, row) coordinate on the board.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NoMove is returned when the player to move has no legal move. It is a function so the
// sentinel cannot be reassigned.
func NoMove() Position {
	return Position{X: -1, Y: -1}
}

func (p Position) IsNoMove() bool {
	return p == NoMove()
}

// InBounds reports whether p addresses a cell of the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < meta.BoardSize && p.Y >= 0 && p.Y < meta.BoardSize
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
