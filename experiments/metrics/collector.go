package metrics

import (
	"othello/game"
	"time"
)

// SearchMetric describes the work done for one decision.
type SearchMetric struct {
	MaxDepth int
	Pruning  bool
	Duration time.Duration
	Nodes    int // Expanded nodes
	Leaves   int // Evaluated nodes
	Cutoffs  int
	Utility  int
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Position
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player
	Discs          [2]int // PlayerOne, PlayerTwo
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Passes         int
	FinalBoard     game.Board
}

// Collector counts search events for a single decision. Collectors are not shared
// between decisions.
type Collector interface {
	Start(maxDepth int, pruning bool)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete(utility int) SearchMetric
}

type collector struct {
	maxDepth  int
	pruning   bool
	startTime time.Time
	nodes     int
	leaves    int
	cutoffs   int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxDepth int, pruning bool) {
	m.startTime = time.Now()
	m.maxDepth = maxDepth
	m.pruning = pruning
}

func (m *collector) AddNode() {
	m.nodes++
}

func (m *collector) AddLeaf() {
	m.leaves++
}

func (m *collector) AddCutoff() {
	m.cutoffs++
}

func (m *collector) Complete(utility int) SearchMetric {
	return SearchMetric{
		MaxDepth: m.maxDepth,
		Pruning:  m.pruning,
		Duration: time.Since(m.startTime),
		Nodes:    m.nodes,
		Leaves:   m.leaves,
		Cutoffs:  m.cutoffs,
		Utility:  utility,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth int, pruning bool) {}
func (m *dummyCollector) AddNode()                         {}
func (m *dummyCollector) AddLeaf()                         {}
func (m *dummyCollector) AddCutoff()                       {}
func (m *dummyCollector) Complete(utility int) SearchMetric {
	return SearchMetric{Utility: utility}
}
