package searcher

import "othello/game"

// Node is the best outcome found below a search position: the utility reachable by
// playing Move. Leaves carry game.NoMove().
type Node struct {
	Utility int
	Move    game.Position
}

func leaf(utility int) Node {
	return Node{Utility: utility, Move: game.NoMove()}
}
