package searcher

import (
	"othello/game"

	"golang.org/x/exp/rand"
)

// mockState is a hand-built game tree. Its score is stored in the top-left cell of the
// board so that scoreOf can read it back as an evaluation.
type mockState struct {
	player   game.Player
	score    int
	children []*mockState
	plays    *int
}

func (m *mockState) Player() game.Player {
	return m.player
}

func (m *mockState) LegalMoves() []game.Position {
	moves := make([]game.Position, len(m.children))
	for i := range m.children {
		moves[i] = game.Position{X: i, Y: 0}
	}
	return moves
}

func (m *mockState) Play(move game.Position) game.State {
	if m.plays != nil {
		*m.plays++
	}
	return m.children[move.X]
}

func (m *mockState) Board() game.Board {
	var board game.Board
	board[0][0] = game.Player(m.score)
	return board
}

func scoreOf(board game.Board, player game.Player) int {
	return int(board[0][0])
}

// leafOf returns a position where the player to move is stuck.
func leafOf(score int) *mockState {
	return &mockState{score: score}
}

// tree links children below a node, alternating the player to move, and shares the
// play counter with the whole tree.
func tree(player game.Player, plays *int, children ...*mockState) *mockState {
	root := &mockState{player: player, children: children, plays: plays}
	for _, child := range children {
		child.player = player.Opponent()
		if child.plays == nil {
			child.plays = plays
		}
	}
	return root
}

// randomTree builds a tree of the given height with 1 to 4 children per node and
// scores in the evaluation range.
func randomTree(rng *rand.Rand, player game.Player, height int, plays *int) *mockState {
	if height == 0 {
		return &mockState{player: player, score: rng.Intn(201) - 100, plays: plays}
	}
	n := 1 + rng.Intn(4)
	children := make([]*mockState, n)
	for i := range children {
		children[i] = randomTree(rng, player.Opponent(), height-1, plays)
	}
	return &mockState{player: player, score: rng.Intn(201) - 100, children: children, plays: plays}
}
