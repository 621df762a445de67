package game

import (
	"slices"

	"github.com/samber/lo"
)

// Bounds of every evaluation score.
const (
	MinUtility = -100
	MaxUtility = 100
)

// staticWeights rates how desirable each cell is to hold, indexed [y][x]: corners are
// strong, the cells touching them weak, edges good and the centre roughly neutral.
var staticWeights = [8][8]int{
	{4, -3, 2, 2, 2, 2, -3, 4},
	{-3, -3, -1, -1, -1, -1, -4, -3},
	{2, -1, 1, 0, 0, 1, -1, 2},
	{2, -1, 0, 1, 1, 0, -1, 2},
	{2, -1, 0, 1, 1, 0, -1, 2},
	{2, -1, 1, 0, 0, 1, -1, 2},
	{-3, -4, -1, -1, -1, -1, -4, -3},
	{4, -3, 2, 2, 2, 2, -3, 4},
}

// StaticWeight returns the positional weight of the cell at column x, row y.
func StaticWeight(x, y int) int {
	return staticWeights[y][x]
}

var evaluators = map[string]Evaluate{
	"weighted-parity": EvaluateWeightedParity,
	"disc-parity":     EvaluateDiscParity,
}

// Evaluator looks up an evaluation function by its configuration name.
func Evaluator(name string) (Evaluate, bool) {
	evaluate, ok := evaluators[name]
	return evaluate, ok
}

// EvaluatorNames lists the configuration names in sorted order.
func EvaluatorNames() []string {
	names := lo.Keys(evaluators)
	slices.Sort(names)
	return names
}

// EvaluateWeightedParity sums the static weight of every disc per player and returns the
// coin parity of the two sums from player's perspective, between -100 and 100.
func EvaluateWeightedParity(board Board, player Player) int {
	return evaluateTotals(board, player, StaticWeight)
}

// EvaluateDiscParity is the plain coin parity: every disc counts as one.
func EvaluateDiscParity(board Board, player Player) int {
	return evaluateTotals(board, player, func(int, int) int { return 1 })
}

func evaluateTotals(board Board, player Player, weight func(x, y int) int) int {
	var totals [3]int // indexed by Player
	for y := range board {
		for x := range board[y] {
			if owner := board[y][x]; owner != Nobody {
				totals[owner] += weight(x, y)
			}
		}
	}

	return parity(totals[player], totals[player.Opponent()])
}

// parity returns 100*(max-min)/(max+min), with the denominator floored at 1 so that an
// empty or negatively weighted position neither divides by zero nor flips sign.
// Totals near zero can push the ratio past the bounds, so it is clamped.
func parity(maxTotal, minTotal int) int {
	total := maxTotal + minTotal
	if total < 1 {
		total = 1
	}
	return clamp(100*(maxTotal-minTotal)/total, MinUtility, MaxUtility)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
