package game

// State is the view of a game position the searcher works against. Implementations
// must be immutable: Play always returns a new State and leaves the receiver untouched.
type State interface {
	// Player returns the player whose turn it is.
	Player() Player
	// LegalMoves enumerates the positions the player to move may take. The order is
	// significant: searchers break ties in favour of earlier moves.
	LegalMoves() []Position
	// Play returns the state after the player to move takes the given position.
	Play(Position) State
	// Board returns the cells of the position for evaluation.
	Board() Board
}

type StateHash uint64

// Evaluate scores a board from the perspective of the given (maximizing) player.
// Scores are bounded to [MinUtility, MaxUtility].
type Evaluate func(board Board, player Player) int
