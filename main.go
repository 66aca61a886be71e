package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"hex2048/config"
	"hex2048/engine"
	"hex2048/experiments"
	"hex2048/game"
	"hex2048/play"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", "play", "play, auto or experiment")
	seed := flag.Uint64("seed", 0, "Random seed (default: time based)")
	size := flag.Int("size", 0, "Cells per hexagon edge (overrides config)")
	goal := flag.Int("goal", 0, "Exponent of the winning tile (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *size > 0 {
		cfg.Board.Size = *size
	}
	if *goal > 0 {
		cfg.Board.Goal = *goal
	}
	if *seed > 0 {
		cfg.Board.Seed = *seed
	}
	if cfg.Board.Seed == 0 {
		cfg.Board.Seed = uint64(time.Now().UnixNano())
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.Log)

	switch *mode {
	case "play":
		options := []game.Option{game.WithSeed(cfg.Board.Seed)}
		if cfg.Log.Events {
			options = append(options, game.WithObserver(game.LogObserver{Logger: log.Logger}))
		}
		board := game.NewBoard(cfg.Board.Size, cfg.Board.Goal, options...)
		play.PlayGame(os.Stdin, os.Stdout, board)
	case "auto":
		e := engine.NewLocalEngine(cfg.Board.Size, cfg.Board.Goal, cfg.Board.Seed)
		play.AutoPlay(os.Stdout, e, experiments.CreateAgent(cfg.Agent, cfg.Board.Seed))
	case "experiment":
		dir, err := experiments.Run(cfg, cfg.Board.Seed)
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		log.Info().Msgf("results stored in %s", dir)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

func setupLogging(cfg config.LogConfig) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
