// Command main serves a minimax agent over HTTP for remote games.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"othello/communication/server"
	"othello/config"
	"othello/game"
	"othello/searcher"
	"othello/searcher/agent"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.DefaultConfig()
	cfg.SetDefault(config.ConfigMode, "serve")
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	cfg.ConfigureLogging()

	minimax := searcher.NewMinimax(
		searcher.WithMaxDepth(cfg.GetInt(config.ConfigMaxDepth)),
		searcher.WithEvaluationFn(evaluator(cfg)),
		searcher.WithMetrics(),
	)
	log.Info().Msgf("serving minimax depth %d with %s", minimax.MaxDepth(), cfg.GetString(config.ConfigEvaluator))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.NewAgentServer(agent.NewMinimaxAgent(minimax)).ListenAndServe(ctx, cfg.GetString(config.ConfigAddr)); err != nil {
		log.Fatal().Err(err).Msg("agent server failed")
	}
	log.Info().Msg("server gracefully shut down")
}

func evaluator(cfg *config.Config) game.Evaluate {
	evaluate, _ := game.Evaluator(cfg.GetString(config.ConfigEvaluator)) // Checked by Load
	return evaluate
}
