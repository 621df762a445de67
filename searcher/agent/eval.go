package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

type minimaxAgent struct {
	minimax *searcher.Minimax
}

// NewMinimaxAgent returns an agent that plays the minimax decision.
func NewMinimaxAgent(minimax *searcher.Minimax) Agent {
	return minimaxAgent{minimax: minimax}
}

func (a minimaxAgent) FindMove(state game.State) (game.Position, metrics.SearchMetric) {
	start := time.Now()
	node, metric := a.minimax.Search(state)
	log.Debug().
		Stringer("player", state.Player()).
		Stringer("move", node.Move).
		Int("utility", node.Utility).
		Dur("elapsed", time.Since(start)).
		Msgf("minimax depth %d decided", a.minimax.MaxDepth())
	return node.Move, metric
}
