package communication

import (
	"fmt"
	"othello/experiments/metrics"
	"othello/game"
	"time"
)

// FindMoveRequest asks an agent for the move of Player on Board.
type FindMoveRequest struct {
	Board  game.Board  `json:"board"`
	Player game.Player `json:"player"`
}

// FindMoveResponse carries the chosen move. Move is (-1,-1) when the player must pass.
type FindMoveResponse struct {
	Move     game.Position `json:"move"`
	Utility  int           `json:"utility"`
	Nodes    int           `json:"nodes"`
	Leaves   int           `json:"leaves"`
	Cutoffs  int           `json:"cutoffs"`
	Duration time.Duration `json:"duration"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewFindMoveRequest(state game.State) FindMoveRequest {
	return FindMoveRequest{Board: state.Board(), Player: state.Player()}
}

// Validate checks that the request describes a position the game can be played from.
func (r FindMoveRequest) Validate() error {
	if r.Player != game.PlayerOne && r.Player != game.PlayerTwo {
		return fmt.Errorf("invalid player %d", r.Player)
	}
	for y := range r.Board {
		for x, cell := range r.Board[y] {
			if cell < game.Nobody || cell > game.PlayerTwo {
				return fmt.Errorf("invalid cell %d at (%d,%d)", cell, x, y)
			}
		}
	}
	return nil
}

func (r FindMoveRequest) State() *game.GameState {
	return &game.GameState{Cells: r.Board, Turn: r.Player}
}

func NewFindMoveResponse(move game.Position, metric metrics.SearchMetric) FindMoveResponse {
	return FindMoveResponse{
		Move:     move,
		Utility:  metric.Utility,
		Nodes:    metric.Nodes,
		Leaves:   metric.Leaves,
		Cutoffs:  metric.Cutoffs,
		Duration: metric.Duration,
	}
}

func (r FindMoveResponse) Metric() metrics.SearchMetric {
	return metrics.SearchMetric{
		Duration: r.Duration,
		Nodes:    r.Nodes,
		Leaves:   r.Leaves,
		Cutoffs:  r.Cutoffs,
		Utility:  r.Utility,
	}
}
