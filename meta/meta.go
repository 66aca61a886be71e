// meta/meta.go
package meta

import "time"

// DefaultSize is the side length of the hexagon (cells per edge).
const DefaultSize = 3

// DefaultGoal is the exponent of the winning tile, 2^11 = 2048.
const DefaultGoal = 11

// StartingTiles is the number of random tiles on a fresh board.
const StartingTiles = 2

// MaxMoves bounds an autoplayed game.
const MaxMoves = 10000

// Goroutines defines the number of goroutines to use.
const Goroutines = 8

// Episodes defines the number of episodes for MCTS.
const Episodes = 150

// Cutoff defines the rollout depth for MCTS.
const Cutoff = 100

// Duration is the default time budget of one search.
const Duration = 50 * time.Millisecond

// NumGames is the number of games played per agent in an experiment.
const NumGames = 10
