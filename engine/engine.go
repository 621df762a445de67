package engine

import (
	"context"

	"othello/experiments/metrics"
	"othello/game"
)

type Engine interface {
	// Run plays a game till neither player can move, a max number of turns is reached
	// or ctx is done
	Run(ctx context.Context) (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
