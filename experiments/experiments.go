package experiments

import (
	"fmt"

	"hex2048/agent"
	"hex2048/config"
	"hex2048/engine"
	"hex2048/experiments/metrics"
	"hex2048/game"
	"hex2048/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Run plays cfg.Experiment.Games games with every configured agent and
// stores the agent configs, game records and move records as CSV files.
// Game i of every agent starts from the same seed so agents face the same spawns.
// It returns the directory holding the results.
func Run(cfg *config.Config, seed uint64) (string, error) {
	name := cfg.Experiment.Name
	configs := cfg.Agents()

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for ai, agentConfig := range configs {
		log.Info().Msgf("starting agent %d of %d with config %+v...", ai+1, len(configs), agentConfig)

		for i := 0; i < cfg.Experiment.Games; i++ {
			gameSeed := seed + uint64(i)
			log.Info().Msgf("starting agent %d of %d game %d of %d...", ai+1, len(configs), i+1, cfg.Experiment.Games)

			gameMetric, moveMetrics := runGame(cfg.Board, agentConfig, gameSeed)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent:      agentConfig.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed agent %d game %d with score %d and max tile %d", ai+1, i+1, gameMetric.Score, 1<<gameMetric.MaxExponent)
		}
		log.Info().Msgf("completed agent %d of %d", ai+1, len(configs))
	}

	log.Info().Msgf("completed %s experiment", name)

	return store(cfg.Experiment.OutputDir, name, configs, gameRecords, moveRecords)
}

func store(root, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	// Store experiment metadata
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	err = writer.WriteGameRecords(games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame plays a single game with one agent
func runGame(board config.BoardConfig, agentConfig metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric) {
	e := engine.NewLocalEngine(board.Size, board.Goal, seed)
	e.Init()
	return e.Run(CreateAgent(agentConfig, seed))
}

// CreateAgent builds the agent described by agentConfig. Randomised agents are seeded with seed.
func CreateAgent(agentConfig metrics.AgentConfig, seed uint64) agent.Agent {
	evaluate, ok := game.Evaluations[agentConfig.Evaluation]
	if !ok {
		evaluate = game.EvaluateBlend
	}

	switch agentConfig.Kind {
	case "random":
		return agent.NewRandomAgent(rand.New(rand.NewSource(seed)))
	case "greedy":
		return agent.NewGreedyAgent(evaluate)
	}
	return agent.NewSearchAgent(createMCTS(agentConfig, evaluate, seed))
}

func createMCTS(agentConfig metrics.AgentConfig, evaluate game.Evaluate, seed uint64) *searcher.MCTS {
	options := []searcher.Option{}

	if agentConfig.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(agentConfig.Episodes))
	}
	if agentConfig.Duration > 0 {
		options = append(options, searcher.WithDuration(agentConfig.Duration))
	}
	if agentConfig.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(agentConfig.Cutoff))
	}

	options = append(options, searcher.WithEvaluationFn(evaluate), searcher.WithSeed(seed), searcher.WithMetrics())
	return searcher.NewMCTS(max(agentConfig.Goroutines, 1), options...)
}
