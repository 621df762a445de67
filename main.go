package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"othello/communication/client"
	"othello/communication/server"
	"othello/config"
	"othello/engine"
	"othello/experiments"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"othello/searcher/agent"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	cfg.ConfigureLogging()
	log.Debug().Msgf("loaded config: %v", cfg.SanitizedSettings())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch mode := cfg.GetString(config.ConfigMode); mode {
	case "play":
		runGame(ctx, cfg)
	case "experiment":
		var summary experiments.DepthSummary
		summary, err = experiments.RunDepthExperiment(ctx, experimentSettings(cfg))
		for _, m := range summary.MatchUps {
			log.Info().Msgf("depth %d vs baseline: %d wins, %d losses, %d draws",
				m.Agent.MaxDepth, m.Wins, m.Losses, m.Draws)
		}
	case "pruning":
		_, err = experiments.RunPruningExperiment(ctx, experimentSettings(cfg))
	case "serve":
		err = server.NewAgentServer(minimaxAgent(cfg, config.ConfigMaxDepth)).
			ListenAndServe(ctx, cfg.GetString(config.ConfigAddr))
	}
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// runGame plays one game between the configured minimax agent (black) and its opponent.
func runGame(ctx context.Context, cfg *config.Config) {
	black := minimaxAgent(cfg, config.ConfigMaxDepth)

	var white agent.Agent
	switch {
	case cfg.GetString(config.ConfigRemote) != "":
		white = client.NewRemoteAgent(cfg.GetString(config.ConfigRemote), cfg.GetDuration(config.ConfigTimeout)).WithContext(ctx)
	case cfg.GetInt(config.ConfigOpponentDepth) >= 0:
		white = minimaxAgent(cfg, config.ConfigOpponentDepth)
	default:
		white = agent.NewRandomAgent(cfg.GetUint64(config.ConfigSeed))
	}

	winner, gameMetric, moveMetrics := engine.LocalEngine(black, white).Run(ctx)

	log.Info().Msgf("game over after %d moves in %v, winner: %v (%d-%d)\n%v",
		len(moveMetrics), gameMetric.Duration, winner, gameMetric.Discs[0], gameMetric.Discs[1], gameMetric.FinalBoard)
}

func minimaxAgent(cfg *config.Config, depthKey string) agent.Agent {
	return agent.NewMinimaxAgent(searcher.NewMinimax(
		searcher.WithMaxDepth(cfg.GetInt(depthKey)),
		searcher.WithEvaluationFn(evaluator(cfg)),
		searcher.WithMetrics(),
	))
}

func evaluator(cfg *config.Config) game.Evaluate {
	evaluate, _ := game.Evaluator(cfg.GetString(config.ConfigEvaluator)) // Checked by Load
	return evaluate
}

func experimentSettings(cfg *config.Config) experiments.Settings {
	settings := experiments.DefaultSettings()
	settings.Depths, _ = cfg.Depths() // Checked by Load
	settings.Evaluator = cfg.GetString(config.ConfigEvaluator)
	settings.Games = cfg.GetInt(config.ConfigGames)
	settings.Parallel = cfg.GetInt(config.ConfigParallel)
	settings.Positions = cfg.GetInt(config.ConfigPositions)
	settings.Seed = cfg.GetUint64(config.ConfigSeed)
	settings.OutputDir = cfg.GetString(config.ConfigOutputDir)
	if depth := cfg.GetInt(config.ConfigOpponentDepth); depth >= 0 {
		settings.Baseline = metrics.AgentConfig{ID: 0, MaxDepth: depth, Evaluator: settings.Evaluator, Pruning: true}
	}
	return settings
}
