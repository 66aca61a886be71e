package searcher

import (
	"sync"
	"time"

	"hex2048/experiments/metrics"
	"hex2048/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	seed       uint64
	searches   uint64
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// WithSeed makes rollouts reproducible for a single goroutine.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateBlend,
		seed:       uint64(time.Now().UnixNano()),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from board and returns the visit count of every
// explored direction. board itself is never modified.
func (m *MCTS) Simulate(board *game.Board) (map[game.Direction]float64, metrics.SearchMetric) {
	m.root = newDecision(nil, board)
	m.searches++

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(board)
	} else {
		m.countdown(board)
	}
	metric := m.metrics.Complete()

	policy := m.root.Policy()
	log.Debug().Msgf("search %d visited %.0f episodes over %d moves", m.searches, m.root.Visits(), len(policy))
	return policy, metric
}

func (m *MCTS) worker(i int) *rand.Rand {
	return rand.New(rand.NewSource(m.seed + m.searches*uint64(m.goroutines) + uint64(i)))
}

func (m *MCTS) iterate(board *game.Board) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for range task {
				m.simulate(board, rng)
				m.metrics.AddEpisode()
			}
		}(m.worker(i))
	}

	wg.Wait()
}

func (m *MCTS) countdown(board *game.Board) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(board, rng)
					m.metrics.AddEpisode()
				}
			}
		}(m.worker(i))
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(board *game.Board, rng *rand.Rand) {
	state := board.Clone(game.WithRand(rng))
	newNode, state := selectThenExpand(m.root, state)
	score := rollout(state, m.cutoff, m.evaluate, rng, m.metrics)
	backup(newNode, score)
}

func selectThenExpand(root Node, board *game.Board) (Node, *game.Board) {
	node, board, selected := root.SelectOrExpand(board)
	for selected {
		node, board, selected = node.SelectOrExpand(board)
	}
	return node, board
}

func rollout(board *game.Board, cutoff int, evaluate game.Evaluate, rng *rand.Rand, metrics metrics.Collector) float64 {
	depth := 0
	moves := board.LegalMoves()
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && depth < cutoff {
		swipe(board, moves[rng.Intn(len(moves))]) // Random rollout policy
		moves = board.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		metrics.AddFullPlayout()
		return Loss
	}

	return evaluate(board)
}

func backup(newNode Node, score float64) {
	node := newNode
	for node != nil {
		node = node.Backup(score)
	}
}
