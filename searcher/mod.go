package searcher

import (
	"math"
	"othello/game"
)

// Infinity bounds every utility; evaluations stay within [game.MinUtility, game.MaxUtility].
const Infinity = math.MaxInt

type Searcher interface {
	FindNextMove(state game.State) game.Position
}
