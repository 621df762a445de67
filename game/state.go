package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"othello/meta"
)

// Directions a run of discs can be bracketed in.
var directions = [8]Position{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// GameState is an Othello position together with the player to move.
type GameState struct {
	Cells Board  `json:"board"`
	Turn  Player `json:"player"`
}

// NewGameState returns the standard opening position with black to move.
func NewGameState() *GameState {
	gs := &GameState{Turn: PlayerOne}
	mid := meta.BoardSize / 2
	gs.Cells[mid-1][mid-1], gs.Cells[mid][mid] = PlayerTwo, PlayerTwo
	gs.Cells[mid-1][mid], gs.Cells[mid][mid-1] = PlayerOne, PlayerOne
	return gs
}

// Copy of the GameState.
func (gs GameState) Copy() *GameState {
	return &gs
}

func (gs GameState) Player() Player {
	return gs.Turn
}

func (gs GameState) Board() Board {
	return gs.Cells
}

// LegalMoves returns every empty cell where the player to move brackets at least one
// opponent run. Moves are listed column by column (x outer, y inner).
func (gs GameState) LegalMoves() []Position {
	return gs.movesFor(gs.Turn)
}

func (gs GameState) movesFor(player Player) []Position {
	var moves []Position
	for x := 0; x < meta.BoardSize; x++ {
		for y := 0; y < meta.BoardSize; y++ {
			p := Position{X: x, Y: y}
			if gs.Cells.At(p) == Nobody && gs.captures(p, player) > 0 {
				moves = append(moves, p)
			}
		}
	}
	return moves
}

// captures counts the discs a placement at p would flip for player.
func (gs *GameState) captures(p Position, player Player) int {
	total := 0
	for _, d := range directions {
		total += gs.run(p, d, player)
	}
	return total
}

// run returns the length of the opponent run starting next to p in direction d that is
// closed by one of the player's discs, or 0 if the run is not bracketed.
func (gs *GameState) run(p Position, d Position, player Player) int {
	opponent := player.Opponent()
	n := 0
	cur := Position{X: p.X + d.X, Y: p.Y + d.Y}
	for cur.InBounds() && gs.Cells.At(cur) == opponent {
		n++
		cur = Position{X: cur.X + d.X, Y: cur.Y + d.Y}
	}
	if n == 0 || !cur.InBounds() || gs.Cells.At(cur) != player {
		return 0
	}
	return n
}

// Play places a disc for the player to move, flips every bracketed run and hands the
// turn to the opponent. It panics if the move is not legal.
func (gs GameState) Play(p Position) State {
	if !p.InBounds() || gs.Cells.At(p) != Nobody {
		panic(fmt.Sprintf("illegal move %v for %v", p, gs.Turn))
	}

	next := gs.Copy()
	flipped := 0
	for _, d := range directions {
		n := gs.run(p, d, gs.Turn)
		cur := p
		for i := 0; i < n; i++ {
			cur = Position{X: cur.X + d.X, Y: cur.Y + d.Y}
			next.Cells.set(cur, gs.Turn)
		}
		flipped += n
	}
	if flipped == 0 {
		panic(fmt.Sprintf("illegal move %v for %v: nothing to flip", p, gs.Turn))
	}
	next.Cells.set(p, gs.Turn)
	next.Turn = gs.Turn.Opponent()
	return next
}

// Pass hands the turn to the opponent without placing a disc.
func (gs GameState) Pass() *GameState {
	next := gs.Copy()
	next.Turn = gs.Turn.Opponent()
	return next
}

// CanMove reports whether the player has at least one legal placement.
func (gs GameState) CanMove(player Player) bool {
	return len(gs.movesFor(player)) > 0
}

// IsOver reports whether neither player can place a disc.
func (gs GameState) IsOver() bool {
	return !gs.CanMove(PlayerOne) && !gs.CanMove(PlayerTwo)
}

func (gs GameState) Count(player Player) int {
	return gs.Cells.Count(player)
}

// Winner returns the player with more discs once the game is over, and Nobody while the
// game is running or on a draw.
func (gs GameState) Winner() Player {
	if !gs.IsOver() {
		return Nobody
	}
	one, two := gs.Count(PlayerOne), gs.Count(PlayerTwo)
	switch {
	case one > two:
		return PlayerOne
	case two > one:
		return PlayerTwo
	default:
		return Nobody
	}
}

// Hash returns an FNV-1a hash of the board and the player to move.
func (gs GameState) Hash() StateHash {
	h := fnv.New64a()
	buf := make([]byte, 8)

	binary.LittleEndian.PutUint64(buf, uint64(gs.Turn))
	h.Write(buf)
	for y := range gs.Cells {
		for x := range gs.Cells[y] {
			h.Write([]byte{byte(gs.Cells[y][x])})
		}
	}

	return StateHash(h.Sum64())
}
