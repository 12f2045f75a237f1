package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"github.com/ntheocharis/undercover/internal/ai"
	"github.com/ntheocharis/undercover/internal/ai/ollama"
	"github.com/ntheocharis/undercover/internal/ai/openai"
	"github.com/ntheocharis/undercover/internal/config"
	"github.com/ntheocharis/undercover/internal/export"
	"github.com/ntheocharis/undercover/internal/game"
	"github.com/ntheocharis/undercover/internal/report"
	"github.com/ntheocharis/undercover/internal/tournament"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		configPath  = flag.String("config", "simulation_config.json", "Path to the simulation config file")
		gamesFlag   = flag.Int("games", 0, "Number of games (overrides config)")
		verbose     = flag.Bool("verbose", false, "Print phases and messages while games run")
		transcripts = flag.Bool("transcripts", false, "Also export readable game transcripts")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`undercover-tournament - LLM social deduction tournament runner

Usage: %s [options]

Options:
  -h, --help       Show this help message
  -v, --version    Show version information
  --config PATH    Simulation config file (default: simulation_config.json)
  --games N        Number of games, overrides the config file
  --verbose        Print phases and messages while games run
  --transcripts    Also export readable game transcripts

Environment Variables:
  OPENAI_API_KEY   OpenAI API key (required for OpenAI-backed models)
  OPENAI_BASE_URL  Custom OpenAI API base URL (optional)
  OLLAMA_HOST      Ollama host URL (default: http://localhost:11434)

The config file lists the enabled models (one participant per model), the
word pair pool, and the tournament settings. Results are written as CSV
files under the configured results directory.
`, os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("undercover-tournament %s\n", version)
		return
	}

	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	sim, err := config.LoadSimulation(*configPath)
	if err != nil {
		zerologlog.Fatal().Err(err).Msg("invalid simulation config")
	}
	if *gamesFlag > 0 {
		sim.Tournament.NumGames = *gamesFlag
	}
	if len(sim.EnabledModels) == 0 {
		zerologlog.Fatal().Msg("no enabled models in config")
	}

	envCfg := config.FromEnv()
	providers := map[string]ai.Provider{
		"openai": openai.New(envCfg.OpenAIKey, envCfg.OpenAIBaseURL),
		"ollama": ollama.New(envCfg.OllamaHost),
	}

	seats, err := tournament.BuildSeats(sim.EnabledModels, providers, 0)
	if err != nil {
		zerologlog.Fatal().Err(err).Msg("invalid roster")
	}

	var events game.Events = game.NopEvents{}
	if *verbose || sim.Tournament.Verbose {
		events = report.Verbose{W: os.Stdout}
	}

	runner, err := tournament.New(tournament.Config{
		Seats:      seats,
		Games:      sim.Tournament.NumGames,
		WordPool:   sim.WordPairs,
		Difficulty: game.Difficulty(sim.Tournament.Difficulty),
		Events:     events,
	})
	if err != nil {
		zerologlog.Fatal().Err(err).Msg("invalid tournament config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zerologlog.Info().
		Int("games", sim.Tournament.NumGames).
		Int("players", len(seats)).
		Msg("starting tournament")

	res := runner.Run(ctx)

	report.PrintResult(os.Stdout, res)

	dir, err := export.WriteCSV(res, export.Options{
		Dir:         sim.Export.Dir,
		FolderName:  sim.Export.FolderName,
		Suffix:      sim.Export.Suffix,
		Transcripts: *transcripts || sim.Export.Transcripts,
	})
	if err != nil {
		zerologlog.Fatal().Err(err).Msg("export failed")
	}
	fmt.Printf("\nResults written to %s\n", dir)

	if res.Status == tournament.StatusPartial {
		os.Exit(1)
	}
}
