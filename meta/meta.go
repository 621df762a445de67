// meta/meta.go
package meta

// BoardSize is the side length of the square board.
const BoardSize = 8

// DEFAULT_MAX_DEPTH is the ply at which the minimax search stops expanding.
const DEFAULT_MAX_DEPTH = 7

// MAX_TURNS bounds a game loop. A game has at most 60 placements plus passes.
const MAX_TURNS = 128

// PARALLEL_GAMES is the default number of games an experiment plays at once.
const PARALLEL_GAMES = 4
