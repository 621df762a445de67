package gamemaster

import (
	"errors"
	"fmt"
	"othello/game"

	"github.com/samber/lo"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
)

// Update records one turn. Move is game.NoMove() when the player had to pass.
type Update struct {
	Player game.Player
	Move   game.Position
	Hash   game.StateHash
}

// Engine holds the authoritative game state and only accepts legal moves.
type Engine interface {
	State() *game.GameState
	Play(game.Position) error
	IsOver() bool
	Updates() []Update
}

type localEngine struct {
	state   *game.GameState
	updates []Update
}

// NewLocalEngine starts a game from the opening position.
func NewLocalEngine() *localEngine {
	return NewLocalEngineFrom(game.NewGameState())
}

// NewLocalEngineFrom starts a game from the given position. A player to move without
// legal moves passes immediately.
func NewLocalEngineFrom(state *game.GameState) *localEngine {
	if turn := state.Player(); turn != game.PlayerOne && turn != game.PlayerTwo {
		panic(fmt.Sprintf("no player to move: %v", turn))
	}
	e := &localEngine{state: state.Copy()}
	e.passIfStuck()
	return e
}

// State returns a copy of the current state.
func (e *localEngine) State() *game.GameState {
	return e.state.Copy()
}

func (e *localEngine) IsOver() bool {
	return e.state.IsOver()
}

func (e *localEngine) Updates() []Update {
	return append([]Update(nil), e.updates...)
}

func (e *localEngine) Play(move game.Position) error {
	if e.state.IsOver() {
		return ErrGameOver
	}

	player := e.state.Player()
	if !lo.Contains(e.state.LegalMoves(), move) {
		return fmt.Errorf("%w: %v for %v", ErrIllegalMove, move, player)
	}

	e.state = e.state.Play(move).(*game.GameState)
	e.updates = append(e.updates, Update{Player: player, Move: move, Hash: e.state.Hash()})
	e.passIfStuck()
	return nil
}

// passIfStuck hands the turn over while the player to move cannot place a disc and the
// game is not over.
func (e *localEngine) passIfStuck() {
	for !e.state.IsOver() && !e.state.CanMove(e.state.Player()) {
		player := e.state.Player()
		e.state = e.state.Pass()
		e.updates = append(e.updates, Update{Player: player, Move: game.NoMove(), Hash: e.state.Hash()})
	}
}
