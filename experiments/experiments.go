package experiments

import (
	"context"
	"errors"
	"fmt"

	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/searcher"
	"othello/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Settings parameterize both experiments.
type Settings struct {
	Depths    []int               // Depths under test
	Baseline  metrics.AgentConfig // Opponent of every depth config
	Evaluator string
	Games     int // Per match up
	Parallel  int // Games played at once
	Positions int // Pruning experiment only
	Seed      uint64
	OutputDir string
}

func DefaultSettings() Settings {
	return Settings{
		Depths:    []int{1, 2, 3, 4},
		Baseline:  metrics.AgentConfig{ID: 0, Random: true},
		Evaluator: "weighted-parity",
		Games:     10,
		Parallel:  meta.PARALLEL_GAMES,
		Positions: 50,
		Seed:      1,
		OutputDir: "results",
	}
}

func (s Settings) validate() error {
	if _, ok := game.Evaluator(s.Evaluator); !ok {
		return fmt.Errorf("unknown evaluator %q", s.Evaluator)
	}
	if len(s.Depths) == 0 {
		return errors.New("no depths to compare")
	}
	if lo.SomeBy(s.Depths, func(d int) bool { return d < 0 }) {
		return fmt.Errorf("depths must not be negative, got %v", s.Depths)
	}
	return nil
}

// MatchUpSummary tallies results from the point of view of the agent under test.
type MatchUpSummary struct {
	Agent        metrics.AgentConfig `yaml:"agent"`
	Baseline     metrics.AgentConfig `yaml:"baseline"`
	Games        int                 `yaml:"games"`
	Wins         int                 `yaml:"wins"`
	Losses       int                 `yaml:"losses"`
	Draws        int                 `yaml:"draws"`
	AverageDiscs float64             `yaml:"average_discs"`
}

type DepthSummary struct {
	Dir      string           `yaml:"-"`
	MatchUps []MatchUpSummary `yaml:"match_ups"`
}

type gameResult struct {
	agentColour game.Player // Colour of the agent under test
	winner      game.Player
	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

// RunDepthExperiment plays every depth config against the baseline, alternating colours.
// Games are spread over Parallel goroutines; each search is single-threaded.
func RunDepthExperiment(ctx context.Context, settings Settings) (DepthSummary, error) {
	if settings.Games <= 0 {
		return DepthSummary{}, fmt.Errorf("games must be positive, got %d", settings.Games)
	}
	if err := settings.validate(); err != nil {
		return DepthSummary{}, err
	}

	configs := lo.Map(settings.Depths, func(depth int, i int) metrics.AgentConfig {
		return metrics.AgentConfig{ID: i + 1, MaxDepth: depth, Evaluator: settings.Evaluator, Pruning: true}
	})
	baseline := settings.Baseline
	if baseline.Evaluator == "" {
		baseline.Evaluator = settings.Evaluator
	}

	log.Info().Msgf("starting depth experiment with %d match ups of %d games...", len(configs), settings.Games)

	results := make([][]gameResult, len(configs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, settings.Parallel))
	for mi, config := range configs {
		results[mi] = make([]gameResult, settings.Games)
		for i := 0; i < settings.Games; i++ {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				seed := settings.Seed + uint64(mi*settings.Games+i)
				tested, err := createAgent(config, seed)
				if err != nil {
					return err
				}
				opponent, err := createAgent(baseline, seed^0x9e3779b97f4a7c15)
				if err != nil {
					return err
				}

				// Alternate the starting agent
				r := gameResult{agentColour: game.PlayerOne}
				black, white := tested, opponent
				if i%2 == 1 {
					r.agentColour = game.PlayerTwo
					black, white = opponent, tested
				}
				r.winner, r.gameMetric, r.moveMetrics = engine.LocalEngine(black, white).Run(ctx)
				if err := ctx.Err(); err != nil {
					return err
				}
				results[mi][i] = r

				log.Info().Msgf("completed matchup %d of %d game %d with winner: %v", mi+1, len(configs), i+1, r.winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return DepthSummary{}, err
	}

	log.Info().Msg("completed depth experiment")

	summary := DepthSummary{}
	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	for mi, config := range configs {
		summary.MatchUps = append(summary.MatchUps, summarize(config, baseline, results[mi]))
		for _, r := range results[mi] {
			id := len(gameRecords) + 1
			black, white := config.ID, baseline.ID
			if r.agentColour == game.PlayerTwo {
				black, white = white, black
			}
			gameRecords = append(gameRecords, metrics.GameRecord{ID: id, Black: black, White: white, GameMetric: r.gameMetric})
			for _, mm := range r.moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: id, MoveMetric: mm})
			}
		}
	}

	writer, err := metrics.NewWriter(settings.OutputDir, "depth")
	if err != nil {
		return summary, err
	}
	summary.Dir = writer.Dir()
	if err := writer.WriteAgentConfigs(append(configs, baseline)); err != nil {
		return summary, err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, err
	}
	if err := writer.WriteSummary(summary); err != nil {
		return summary, err
	}
	log.Info().Msgf("stored depth experiment results in %s", writer.Dir())

	return summary, nil
}

func summarize(config, baseline metrics.AgentConfig, results []gameResult) MatchUpSummary {
	s := MatchUpSummary{Agent: config, Baseline: baseline, Games: len(results)}
	s.Wins = lo.CountBy(results, func(r gameResult) bool { return r.winner == r.agentColour })
	s.Draws = lo.CountBy(results, func(r gameResult) bool { return r.winner == game.Nobody })
	s.Losses = s.Games - s.Wins - s.Draws
	discs := lo.SumBy(results, func(r gameResult) int { return r.gameMetric.Discs[r.agentColour-1] })
	if s.Games > 0 {
		s.AverageDiscs = float64(discs) / float64(s.Games)
	}
	return s
}

func createAgent(config metrics.AgentConfig, seed uint64) (agent.Agent, error) {
	if config.Random {
		return agent.NewRandomAgent(seed), nil
	}
	minimax, err := createMinimax(config)
	if err != nil {
		return nil, err
	}
	return agent.NewMinimaxAgent(minimax), nil
}

func createMinimax(config metrics.AgentConfig) (*searcher.Minimax, error) {
	evaluate, ok := game.Evaluator(config.Evaluator)
	if !ok {
		return nil, fmt.Errorf("agent %d: unknown evaluator %q", config.ID, config.Evaluator)
	}
	options := []searcher.Option{
		searcher.WithMaxDepth(config.MaxDepth),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithMetrics(),
	}
	if !config.Pruning {
		options = append(options, searcher.WithoutPruning())
	}
	return searcher.NewMinimax(options...), nil
}
