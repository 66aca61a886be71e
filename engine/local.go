package engine

import (
	"errors"
	"fmt"
	"time"

	"hex2048/agent"
	"hex2048/experiments/metrics"
	"hex2048/game"
	"hex2048/meta"

	"github.com/rs/zerolog/log"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
)

type update struct {
	dir     game.Direction
	outcome game.Outcome
	board   *game.Board
}

type localEngine struct {
	size     int
	goal     int
	seed     uint64
	options  []game.Option
	board    *game.Board
	updates  []update
	read     int
	gameOver bool
}

// NewLocalEngine returns an engine that plays a single board in process.
// Board options are applied after the seed.
func NewLocalEngine(size, goal int, seed uint64, options ...game.Option) *localEngine {
	return &localEngine{
		size:    size,
		goal:    goal,
		seed:    seed,
		options: options,
	}
}

func (e *localEngine) Init() (*game.Board, UpdateGetter) {
	options := append([]game.Option{game.WithSeed(e.seed)}, e.options...)
	e.board = game.NewBoard(e.size, e.goal, options...)
	e.board.NewGame(e.size, e.goal)
	e.updates = nil
	e.read = 0
	e.gameOver = false
	if e.board.IsLost() {
		e.finish()
	}

	// return copies with their own random source
	return e.board.Clone(game.WithSeed(e.seed)), func() (game.Direction, *game.Board, bool) {
		if e.read >= len(e.updates) {
			return game.East, nil, false
		}
		u := e.updates[e.read]
		e.read++
		return u.dir, u.board.Clone(game.WithSeed(e.seed)), true
	}
}

func (e *localEngine) Play(dir game.Direction) error {
	if e.board == nil {
		return fmt.Errorf("play %v: engine not initialised", dir)
	}
	if e.gameOver {
		return ErrGameOver
	}
	if !dir.Valid() {
		return fmt.Errorf("play %d: %w", int(dir), game.ErrInvalidDirection)
	}
	if !e.board.CanSwipe(dir) {
		// A no-op swipe on a lost board reports the loss to the board's observer
		outcome, err := e.board.Swipe(dir)
		if err != nil {
			return err
		}
		if outcome.Lost {
			e.gameOver = true
			return ErrGameOver
		}
		return fmt.Errorf("play %v: %w", dir, ErrIllegalMove)
	}

	outcome, err := e.board.Swipe(dir)
	if err != nil {
		return err
	}
	e.updates = append(e.updates, update{dir: dir, outcome: outcome, board: e.board.Clone()})
	if outcome.Lost {
		e.finish()
	}
	return nil
}

// finish ends a game whose last swipe filled the board for good. Every
// direction is a no-op by then, so one more swipe only fires the loss event.
func (e *localEngine) finish() {
	e.gameOver = true
	if _, err := e.board.Swipe(game.East); err != nil {
		panic(err)
	}
}

func (e *localEngine) Run(a agent.Agent) (metrics.GameMetric, []metrics.MoveMetric) {
	if e.board == nil {
		e.Init()
	}

	gameMetric := metrics.GameMetric{
		Seed:      e.seed,
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("starting game with seed %d on a size %d board", e.seed, e.size)

	step := 1
	for !e.gameOver && step <= meta.MaxMoves {
		dir, searchMetric := a.FindMove(e.board)
		if err := e.Play(dir); err != nil {
			if errors.Is(err, ErrGameOver) {
				break
			}
			log.Error().Err(err).Msgf("agent chose %v at step %d", dir, step)
			break
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Direction:    dir.String(),
			Merges:       e.updates[len(e.updates)-1].outcome.Merges,
			SearchMetric: searchMetric,
		})
		step++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Score = e.board.Score()
	gameMetric.MaxExponent = e.board.MaxExponent()
	gameMetric.Won = e.board.IsFinished()
	gameMetric.Lost = e.gameOver

	if gameMetric.Lost {
		log.Info().Msgf("game lost after %d moves with score %d", gameMetric.TotalMoves, gameMetric.Score)
	} else {
		log.Info().Msgf("stopped after %d moves with score %d", gameMetric.TotalMoves, gameMetric.Score)
	}

	return gameMetric, moveMetrics
}
