package experiments

import (
	"context"
	"fmt"

	"othello/experiments/metrics"
	"othello/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// DepthThroughput compares pruned and full-width searches at one depth.
type DepthThroughput struct {
	MaxDepth      int     `yaml:"max_depth"`
	Positions     int     `yaml:"positions"`
	PrunedLeaves  int     `yaml:"pruned_leaves"`
	FullLeaves    int     `yaml:"full_leaves"`
	PrunedNodes   int     `yaml:"pruned_nodes"`
	FullNodes     int     `yaml:"full_nodes"`
	Cutoffs       int     `yaml:"cutoffs"`
	LeafReduction float64 `yaml:"leaf_reduction"` // 1 - pruned/full
	Mismatches    int     `yaml:"mismatches"`
}

type PruningSummary struct {
	Dir    string            `yaml:"-"`
	Depths []DepthThroughput `yaml:"depths"`
}

// RunPruningExperiment searches the same random midgame positions with and without
// alpha-beta pruning. Both searches must agree on move and utility.
func RunPruningExperiment(ctx context.Context, settings Settings) (PruningSummary, error) {
	if err := settings.validate(); err != nil {
		return PruningSummary{}, err
	}

	rng := rand.New(rand.NewSource(settings.Seed))
	positions := randomPositions(rng, settings.Positions)

	log.Info().Msgf("starting pruning experiment on %d positions...", len(positions))

	summary := PruningSummary{}
	var moveRecords []metrics.MoveRecord
	for _, depth := range settings.Depths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		pruned, err := createMinimax(metrics.AgentConfig{MaxDepth: depth, Evaluator: settings.Evaluator, Pruning: true})
		if err != nil {
			return summary, err
		}
		full, err := createMinimax(metrics.AgentConfig{MaxDepth: depth, Evaluator: settings.Evaluator})
		if err != nil {
			return summary, err
		}

		dt := DepthThroughput{MaxDepth: depth, Positions: len(positions)}
		for pi, state := range positions {
			prunedNode, prunedMetric := pruned.Search(state)
			fullNode, fullMetric := full.Search(state)
			if prunedNode != fullNode {
				dt.Mismatches++
				log.Error().Msgf("depth %d position %d: pruned %+v differs from full %+v\n%v",
					depth, pi, prunedNode, fullNode, state.Cells)
			}

			dt.PrunedLeaves += prunedMetric.Leaves
			dt.FullLeaves += fullMetric.Leaves
			dt.PrunedNodes += prunedMetric.Nodes
			dt.FullNodes += fullMetric.Nodes
			dt.Cutoffs += prunedMetric.Cutoffs

			step := 61 - state.Cells.Count(game.Nobody) // Placements so far, plus one
			moveRecords = append(moveRecords,
				metrics.MoveRecord{Game: pi + 1, MoveMetric: metrics.MoveMetric{
					Step: step, Player: state.Player(), Move: prunedNode.Move, SearchMetric: prunedMetric}},
				metrics.MoveRecord{Game: pi + 1, MoveMetric: metrics.MoveMetric{
					Step: step, Player: state.Player(), Move: fullNode.Move, SearchMetric: fullMetric}},
			)
		}
		if dt.FullLeaves > 0 {
			dt.LeafReduction = 1 - float64(dt.PrunedLeaves)/float64(dt.FullLeaves)
		}
		summary.Depths = append(summary.Depths, dt)

		log.Info().Msgf("depth %d: %d leaves pruned vs %d full (%.1f%% fewer)",
			depth, dt.PrunedLeaves, dt.FullLeaves, 100*dt.LeafReduction)
	}

	writer, err := metrics.NewWriter(settings.OutputDir, "pruning")
	if err != nil {
		return summary, err
	}
	summary.Dir = writer.Dir()
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, err
	}
	if err := writer.WriteSummary(summary); err != nil {
		return summary, err
	}

	mismatches := lo.SumBy(summary.Depths, func(dt DepthThroughput) int { return dt.Mismatches })
	if mismatches > 0 {
		return summary, fmt.Errorf("pruning changed %d decisions", mismatches)
	}
	return summary, nil
}

// randomPositions plays random moves from the opening. Only positions where the
// player to move has a choice are kept.
func randomPositions(rng *rand.Rand, n int) []*game.GameState {
	positions := make([]*game.GameState, 0, n)
	for len(positions) < n {
		state := game.NewGameState()
		plies := 4 + rng.Intn(40)
		for i := 0; i < plies && !state.IsOver(); i++ {
			moves := state.LegalMoves()
			if len(moves) == 0 {
				state = state.Pass()
				continue
			}
			state = state.Play(moves[rng.Intn(len(moves))]).(*game.GameState)
		}
		if len(state.LegalMoves()) > 1 {
			positions = append(positions, state)
		}
	}
	return positions
}
