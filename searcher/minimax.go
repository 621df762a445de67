package searcher

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
)

type Option func(m *Minimax)

var _ Searcher = (*Minimax)(nil)

// Minimax chooses moves with a depth-limited minimax search and alpha-beta pruning.
// It holds configuration only, so a single Minimax can serve concurrent decisions.
type Minimax struct {
	maxDepth    int
	evaluate    game.Evaluate
	pruning     bool
	withMetrics bool
}

func WithMaxDepth(depth int) Option {
	return func(m *Minimax) {
		if depth >= 0 {
			m.maxDepth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithoutPruning turns the search into a plain full-width minimax.
func WithoutPruning() Option {
	return func(m *Minimax) {
		m.pruning = false
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.withMetrics = true
	}
}

func NewMinimax(options ...Option) *Minimax {
	m := &Minimax{ // Default values
		maxDepth: meta.DEFAULT_MAX_DEPTH,
		evaluate: game.EvaluateWeightedParity,
		pruning:  true,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) MaxDepth() int {
	return m.maxDepth
}

// FindNextMove returns the move for the player to move, or game.NoMove() if there is none.
func (m *Minimax) FindNextMove(state game.State) game.Position {
	node, _ := m.Search(state)
	return node.Move
}

// Search runs one decision for the player to move and returns the chosen node along
// with the search metrics (empty unless WithMetrics was given).
func (m *Minimax) Search(state game.State) (Node, metrics.SearchMetric) {
	if len(state.LegalMoves()) == 0 {
		return leaf(0), metrics.SearchMetric{MaxDepth: m.maxDepth, Pruning: m.pruning}
	}

	collector := metrics.NewDummyCollector()
	if m.withMetrics {
		collector = metrics.NewCollector()
	}
	s := &search{
		player:   state.Player(),
		maxDepth: m.maxDepth,
		evaluate: m.evaluate,
		pruning:  m.pruning,
		metrics:  collector,
	}

	collector.Start(m.maxDepth, m.pruning)
	node := s.maximize(state, -Infinity, Infinity, 0)
	return node, collector.Complete(node.Utility)
}

// search carries the parameters of one decision down the recursion. The maximizing
// player is fixed when the decision starts.
type search struct {
	player   game.Player
	maxDepth int
	evaluate game.Evaluate
	pruning  bool
	metrics  metrics.Collector
}

// expand returns the moves to explore from state, or nil when state is a leaf: either
// the player to move is stuck or the depth budget is spent. Both are scored the same way.
func (s *search) expand(state game.State, depth int) []game.Position {
	if depth > s.maxDepth {
		return nil
	}
	return state.LegalMoves()
}

func (s *search) leaf(state game.State) Node {
	s.metrics.AddLeaf()
	return leaf(s.evaluate(state.Board(), s.player))
}

func (s *search) maximize(state game.State, alpha, beta, depth int) Node {
	moves := s.expand(state, depth)
	if len(moves) == 0 {
		return s.leaf(state)
	}
	s.metrics.AddNode()

	best := Node{Utility: -Infinity, Move: game.NoMove()}
	for _, move := range moves {
		child := s.minimize(state.Play(move), alpha, beta, depth+1)
		// Strict comparison keeps the earliest of equally good moves
		if child.Utility > best.Utility {
			best = Node{Utility: child.Utility, Move: move}
		}
		if !s.pruning {
			continue
		}
		if best.Utility >= beta {
			s.metrics.AddCutoff()
			return best
		}
		if best.Utility > alpha {
			alpha = best.Utility
		}
	}
	return best
}

func (s *search) minimize(state game.State, alpha, beta, depth int) Node {
	moves := s.expand(state, depth)
	if len(moves) == 0 {
		return s.leaf(state)
	}
	s.metrics.AddNode()

	best := Node{Utility: Infinity, Move: game.NoMove()}
	for _, move := range moves {
		child := s.maximize(state.Play(move), alpha, beta, depth+1)
		if child.Utility < best.Utility {
			best = Node{Utility: child.Utility, Move: move}
		}
		if !s.pruning {
			continue
		}
		if best.Utility <= alpha {
			s.metrics.AddCutoff()
			return best
		}
		if best.Utility < beta {
			beta = best.Utility
		}
	}
	return best
}
