package agent

import (
	"othello/experiments/metrics"
	"othello/game"
)

type Agent interface {
	// FindMove returns the move to play and performance metrics (if collected) from the search.
	// It returns game.NoMove() when the player to move has no legal move.
	FindMove(state game.State) (game.Position, metrics.SearchMetric)
}
