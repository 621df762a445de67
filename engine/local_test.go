package engine

import (
	"context"
	"testing"

	"othello/experiments/metrics"
	"othello/game"
	"othello/gamemaster"
	"othello/searcher"
	"othello/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type cornerAgent struct{}

// FindMove always asks for the top-left corner, which is rarely legal.
func (cornerAgent) FindMove(state game.State) (game.Position, metrics.SearchMetric) {
	return game.Position{X: 0, Y: 0}, metrics.SearchMetric{}
}

func TestLocalEngineRun(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.Disabled)

	t.Run("plays a full game", func(t *testing.T) {
		black := agent.NewMinimaxAgent(searcher.NewMinimax(searcher.WithMaxDepth(1), searcher.WithMetrics()))
		white := agent.NewRandomAgent(3)

		winner, gameMetric, moveMetrics := LocalEngine(black, white).Run(context.Background())

		require.Equal(t, game.PlayerOne, gameMetric.StartingPlayer)
		require.Equal(t, winner, gameMetric.Winner)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.LessOrEqual(t, gameMetric.Discs[0]+gameMetric.Discs[1], 64)
		require.Equal(t, gameMetric.Discs[0]+gameMetric.Discs[1]-4, gameMetric.TotalMoves,
			"Every move should add exactly one disc")
		require.Equal(t, 1, moveMetrics[0].Step)
		require.Equal(t, game.PlayerOne, moveMetrics[0].Player)
		require.Positive(t, moveMetrics[0].Leaves, "Minimax moves should carry search metrics")
		switch {
		case gameMetric.Discs[0] > gameMetric.Discs[1]:
			require.Equal(t, game.PlayerOne, winner)
		case gameMetric.Discs[1] > gameMetric.Discs[0]:
			require.Equal(t, game.PlayerTwo, winner)
		default:
			require.Equal(t, game.Nobody, winner)
		}
	})

	t.Run("replaces illegal moves", func(t *testing.T) {
		winner, gameMetric, moveMetrics := LocalEngine(cornerAgent{}, agent.NewRandomAgent(1)).Run(context.Background())

		require.NotEmpty(t, moveMetrics)
		require.Equal(t, game.Position{X: 2, Y: 3}, moveMetrics[0].Move,
			"First legal move should replace the illegal corner")
		require.Equal(t, winner, gameMetric.Winner)
	})

	t.Run("finished position plays no moves", func(t *testing.T) {
		gs := &game.GameState{Turn: game.PlayerOne}
		gs.Cells[0][0] = game.PlayerTwo

		winner, gameMetric, moveMetrics := LocalEngineFrom(gamemaster.NewLocalEngineFrom(gs),
			agent.NewRandomAgent(1), agent.NewRandomAgent(2)).Run(context.Background())

		require.Empty(t, moveMetrics)
		require.Equal(t, game.PlayerTwo, winner)
		require.Equal(t, [2]int{0, 1}, gameMetric.Discs)
		require.Equal(t, gs.Cells, gameMetric.FinalBoard)
	})
}

func TestLocalEngineRunCancelled(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	winner, gameMetric, moveMetrics := LocalEngine(agent.NewRandomAgent(1), agent.NewRandomAgent(2)).Run(ctx)

	require.Empty(t, moveMetrics, "No move should be played once the context is done")
	require.Equal(t, game.Nobody, winner)
	require.Equal(t, [2]int{2, 2}, gameMetric.Discs)
}
