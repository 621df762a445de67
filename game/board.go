package game

import (
	"strings"

	"othello/meta"
)

// Player identifies a side, and doubles as the content of a board cell.
type Player int

const (
	Nobody    Player = iota // 0, also an empty cell
	PlayerOne               // 1 (black, moves first)
	PlayerTwo               // 2 (white)
)

// Opponent returns the other side. Nobody has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return Nobody
	}
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "black"
	case PlayerTwo:
		return "white"
	default:
		return "nobody"
	}
}

// Board holds the cells of a position, indexed [y][x]. Being an array it is copied on
// assignment, which is how states are cloned.
type Board [meta.BoardSize][meta.BoardSize]Player

// At returns the content of the cell at p. It panics if p is off the board.
func (b *Board) At(p Position) Player {
	return b[p.Y][p.X]
}

func (b *Board) set(p Position, player Player) {
	b[p.Y][p.X] = player
}

// Count returns the number of discs the player has on the board.
func (b *Board) Count(player Player) int {
	count := 0
	for y := range b {
		for x := range b[y] {
			if b[y][x] == player {
				count++
			}
		}
	}
	return count
}

// String renders the board with x for black, o for white and . for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  01234567\n")
	for y := range b {
		sb.WriteByte(byte('0' + y))
		sb.WriteByte(' ')
		for x := range b[y] {
			switch b[y][x] {
			case PlayerOne:
				sb.WriteByte('x')
			case PlayerTwo:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
