package searcher

import (
	"testing"

	"othello/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/*
- cutoff: stuck player or depth > max depth -> leaf scored by the evaluator
- decision: no legal moves -> NoMove(), nothing evaluated
- expansion: strict comparisons keep the earliest best move
- pruning: same node as the full-width search, fewer positions visited
*/

func TestFindNextMove(t *testing.T) {
	t.Run("no legal moves returns the sentinel without searching", func(t *testing.T) {
		evaluations := 0
		evaluate := func(board game.Board, player game.Player) int {
			evaluations++
			return 0
		}
		m := NewMinimax(WithEvaluationFn(evaluate))

		got := m.FindNextMove(leafOf(50))

		require.Equal(t, game.NoMove(), got, "Should return the no-move sentinel")
		require.Zero(t, evaluations, "Should not evaluate anything")
	})

	t.Run("picks the better of two moves at depth one", func(t *testing.T) {
		plays := 0
		root := tree(game.PlayerOne, &plays, leafOf(20), leafOf(35))
		m := NewMinimax(WithMaxDepth(1), WithEvaluationFn(scoreOf))

		got := m.FindNextMove(root)

		require.Equal(t, game.Position{X: 1, Y: 0}, got, "Should pick the move leading to 35")
	})

	t.Run("keeps the earliest of equal moves", func(t *testing.T) {
		plays := 0
		root := tree(game.PlayerOne, &plays, leafOf(10), leafOf(30), leafOf(30), leafOf(-5))
		m := NewMinimax(WithMaxDepth(3), WithEvaluationFn(scoreOf))

		node, _ := m.Search(root)

		require.Equal(t, game.Position{X: 1, Y: 0}, node.Move, "Should keep the first move reaching 30")
		require.Equal(t, 30, node.Utility)
	})

	t.Run("plays a legal move on a real board", func(t *testing.T) {
		state := game.NewGameState()
		m := NewMinimax(WithMaxDepth(3))

		got := m.FindNextMove(state)

		require.Contains(t, state.LegalMoves(), got, "Should choose one of the legal moves")
	})
}

func TestDepthLimit(t *testing.T) {
	t.Run("depth zero evaluates the root's children as leaves", func(t *testing.T) {
		plays := 0
		evaluations := 0
		evaluate := func(board game.Board, player game.Player) int {
			evaluations++
			return scoreOf(board, player)
		}
		root := tree(game.PlayerOne, &plays,
			&mockState{score: 5, children: []*mockState{leafOf(-100)}},
			&mockState{score: 9, children: []*mockState{leafOf(-100)}},
		)
		m := NewMinimax(WithMaxDepth(0), WithEvaluationFn(evaluate))

		node, _ := m.Search(root)

		require.Equal(t, 2, plays, "Should only play the root's moves")
		require.Equal(t, 2, evaluations, "Should evaluate each child once")
		require.Equal(t, Node{Utility: 9, Move: game.Position{X: 1, Y: 0}}, node)
	})

	t.Run("depth one looks at the opponent's replies", func(t *testing.T) {
		plays := 0
		root := tree(game.PlayerOne, &plays,
			tree(game.PlayerTwo, &plays, leafOf(50), leafOf(-20)),
			tree(game.PlayerTwo, &plays, leafOf(10), leafOf(15)),
		)
		m := NewMinimax(WithMaxDepth(1), WithEvaluationFn(scoreOf))

		node, _ := m.Search(root)

		require.Equal(t, Node{Utility: 10, Move: game.Position{X: 1, Y: 0}}, node,
			"Should assume the opponent replies with the minimum")
	})

	t.Run("stuck player is scored like a depth cutoff", func(t *testing.T) {
		plays := 0
		root := tree(game.PlayerOne, &plays,
			leafOf(-40), // Opponent cannot reply
			tree(game.PlayerTwo, &plays, leafOf(-60)),
		)
		m := NewMinimax(WithMaxDepth(5), WithEvaluationFn(scoreOf))

		node, _ := m.Search(root)

		require.Equal(t, Node{Utility: -40, Move: game.Position{X: 0, Y: 0}}, node)
	})
}

func TestMaximizingPlayerIsFixed(t *testing.T) {
	seen := map[game.Player]int{}
	evaluate := func(board game.Board, player game.Player) int {
		seen[player]++
		return 0
	}
	rng := rand.New(rand.NewSource(7))
	root := randomTree(rng, game.PlayerTwo, 4, nil)
	m := NewMinimax(WithMaxDepth(4), WithEvaluationFn(evaluate))

	m.Search(root)

	require.Len(t, seen, 1, "Every leaf should be scored for the same player")
	require.Contains(t, seen, game.PlayerTwo, "Leaves should be scored for the player to move at the root")
}

func TestAlphaBetaPruning(t *testing.T) {
	t.Run("textbook tree", func(t *testing.T) {
		build := func(plays *int) *mockState {
			return tree(game.PlayerOne, plays,
				tree(game.PlayerTwo, plays, leafOf(3), leafOf(12), leafOf(8)),
				tree(game.PlayerTwo, plays, leafOf(2), leafOf(4), leafOf(6)),
				tree(game.PlayerTwo, plays, leafOf(14), leafOf(5), leafOf(2)),
			)
		}
		prunedPlays, fullPlays := 0, 0
		pruned := NewMinimax(WithMaxDepth(1), WithEvaluationFn(scoreOf), WithMetrics())
		full := NewMinimax(WithMaxDepth(1), WithEvaluationFn(scoreOf), WithMetrics(), WithoutPruning())

		prunedNode, prunedMetric := pruned.Search(build(&prunedPlays))
		fullNode, fullMetric := full.Search(build(&fullPlays))

		require.Equal(t, Node{Utility: 3, Move: game.Position{X: 0, Y: 0}}, prunedNode)
		require.Equal(t, fullNode, prunedNode, "Pruning should not change the result")
		require.Equal(t, 12, fullPlays, "Full-width search should visit every position")
		require.Equal(t, 10, prunedPlays, "Second branch should be cut after its first reply")
		require.Equal(t, 2, prunedMetric.Cutoffs)
		require.Zero(t, fullMetric.Cutoffs)
		require.Equal(t, 9, fullMetric.Leaves)
		require.Equal(t, 7, prunedMetric.Leaves)
		require.Equal(t, 4, prunedMetric.Nodes)
	})

	t.Run("random trees", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2024))
		for i := 0; i < 300; i++ {
			height := 1 + rng.Intn(5)
			maxDepth := rng.Intn(height + 1)
			seed := rng.Uint64()
			prunedPlays, fullPlays := 0, 0
			prunedRoot := randomTree(rand.New(rand.NewSource(seed)), game.PlayerOne, height, &prunedPlays)
			fullRoot := randomTree(rand.New(rand.NewSource(seed)), game.PlayerOne, height, &fullPlays)
			pruned := NewMinimax(WithMaxDepth(maxDepth), WithEvaluationFn(scoreOf))
			full := NewMinimax(WithMaxDepth(maxDepth), WithEvaluationFn(scoreOf), WithoutPruning())

			prunedNode, _ := pruned.Search(prunedRoot)
			fullNode, _ := full.Search(fullRoot)

			require.Equal(t, fullNode, prunedNode, "tree %d (height %d, depth %d) differs", i, height, maxDepth)
			require.LessOrEqual(t, prunedPlays, fullPlays, "Pruning should never visit more positions")
		}
	})

	t.Run("real positions", func(t *testing.T) {
		rng := rand.New(rand.NewSource(99))
		for i := 0; i < 20; i++ {
			state := randomPosition(rng, rng.Intn(30))
			for _, name := range game.EvaluatorNames() {
				evaluate, _ := game.Evaluator(name)
				pruned := NewMinimax(WithMaxDepth(2), WithEvaluationFn(evaluate))
				full := NewMinimax(WithMaxDepth(2), WithEvaluationFn(evaluate), WithoutPruning())

				prunedNode, _ := pruned.Search(state)
				fullNode, _ := full.Search(state)

				require.Equal(t, fullNode, prunedNode, "position %d differs:\n%v", i, state.Cells)
			}
		}
	})
}

// randomPosition plays random moves from the opening, passing when stuck.
func randomPosition(rng *rand.Rand, plies int) *game.GameState {
	state := game.NewGameState()
	for i := 0; i < plies && !state.IsOver(); i++ {
		moves := state.LegalMoves()
		if len(moves) == 0 {
			state = state.Pass()
			continue
		}
		state = state.Play(moves[rng.Intn(len(moves))]).(*game.GameState)
	}
	return state
}
