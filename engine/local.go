package engine

import (
	"context"
	"errors"
	"time"

	"othello/experiments/metrics"
	"othello/game"
	"othello/gamemaster"
	"othello/meta"
	"othello/searcher/agent"

	"github.com/rs/zerolog/log"
)

type localEngine struct {
	referee gamemaster.Engine
	agents  [2]agent.Agent // Indexed by player - 1
}

// LocalEngine pits two agents against each other from the opening position. The first
// agent plays black.
func LocalEngine(black, white agent.Agent) Engine {
	return LocalEngineFrom(gamemaster.NewLocalEngine(), black, white)
}

func LocalEngineFrom(referee gamemaster.Engine, black, white agent.Agent) Engine {
	if black == nil || white == nil {
		panic("need two agents")
	}
	return &localEngine{
		referee: referee,
		agents:  [2]agent.Agent{black, white},
	}
}

// Run executes the entire game loop until neither player can move.
func (e *localEngine) Run(ctx context.Context) (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.referee.State().Player(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%v is starting", gameMetric.StartingPlayer)

	turnCount := 1
	for !e.referee.IsOver() && turnCount <= meta.MAX_TURNS {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msgf("game stopped before turn %d", turnCount)
			break
		}
		state := e.referee.State()
		player := state.Player()

		move, searchMetric := e.agents[player-1].FindMove(state)
		if err := e.referee.Play(move); err != nil {
			if errors.Is(err, gamemaster.ErrGameOver) {
				break
			}
			// Agents are not trusted: fall back to the first legal move
			fallback := state.LegalMoves()[0]
			log.Warn().Err(err).Msgf("%v returned an unplayable move, playing %v instead", player, fallback)
			move = fallback
			if err := e.referee.Play(move); err != nil {
				panic(err)
			}
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turnCount,
			Player:       player,
			Move:         move,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("turn %d: %v played %v", turnCount, player, move)
		turnCount++
	}

	final := e.referee.State()
	winner := final.Winner()
	gameMetric.Winner = winner
	gameMetric.Discs = [2]int{final.Count(game.PlayerOne), final.Count(game.PlayerTwo)}
	gameMetric.FinalBoard = final.Cells
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	for _, update := range e.referee.Updates() {
		if update.Move.IsNoMove() {
			gameMetric.Passes++
		}
	}

	if !e.referee.IsOver() && ctx.Err() == nil {
		log.Warn().Msgf("stopped after %d turns (game not over)", meta.MAX_TURNS)
	}
	log.Debug().Msgf("game over, winner: %v\n%v", winner, final.Cells)

	return winner, gameMetric, moveMetrics
}
