package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ntheocharis/undercover/internal/game"
)

type Config struct {
	Port          string
	OpenAIKey     string
	OpenAIBaseURL string
	OllamaHost    string
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	c.OllamaHost = getenv("OLLAMA_HOST", "http://localhost:11434")
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Simulation is the parsed tournament configuration file. The loader fills
// defaults and rejects malformed input; the core packages receive it as an
// already-validated structure.
type Simulation struct {
	EnabledModels []game.ModelRef `json:"enabled_models"`
	WordPairs     []game.WordPair `json:"word_pairs"`
	Tournament    Tournament      `json:"tournament"`
	Export        Export          `json:"export"`
}

type Tournament struct {
	NumGames   int    `json:"num_games"`
	Difficulty string `json:"difficulty"`
	Verbose    bool   `json:"verbose"`
}

type Export struct {
	Dir         string `json:"dir"`
	FolderName  string `json:"folder_name"`
	Suffix      string `json:"folder_suffix"`
	Transcripts bool   `json:"transcripts"`
}

// LoadSimulation reads the JSON config at path. A missing file yields the
// built-in defaults; invalid JSON or an unknown difficulty is an error.
func LoadSimulation(path string) (Simulation, error) {
	sim := Simulation{
		Tournament: Tournament{NumGames: 2, Difficulty: string(game.DifficultyStandard)},
		Export:     Export{Dir: "results"},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return withDefaults(sim), nil
		}
		return Simulation{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &sim); err != nil {
		return Simulation{}, fmt.Errorf("parse %s: %w", path, err)
	}
	sim = withDefaults(sim)

	switch game.Difficulty(sim.Tournament.Difficulty) {
	case game.DifficultyStandard, game.DifficultyEasy:
	default:
		return Simulation{}, fmt.Errorf("unknown difficulty %q in %s", sim.Tournament.Difficulty, path)
	}
	if sim.Tournament.NumGames <= 0 {
		return Simulation{}, fmt.Errorf("num_games must be positive in %s", path)
	}
	return sim, nil
}

func withDefaults(sim Simulation) Simulation {
	if len(sim.WordPairs) == 0 {
		sim.WordPairs = game.DefaultWordPool
	}
	if sim.Tournament.Difficulty == "" {
		sim.Tournament.Difficulty = string(game.DifficultyStandard)
	}
	if sim.Export.Dir == "" {
		sim.Export.Dir = "results"
	}
	return sim
}
