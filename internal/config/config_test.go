package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ntheocharis/undercover/internal/game"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simulation_config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadSimulation(t *testing.T) {
	path := writeFile(t, `{
		"enabled_models": [
			{"provider": "openai", "model": "gpt-4o-mini"},
			{"provider": "ollama", "model": "llama3"},
			{"provider": "openai", "model": "gpt-4o"}
		],
		"word_pairs": [{"word": "beach", "decoy": "desert"}],
		"tournament": {"num_games": 10, "difficulty": "easy", "verbose": true},
		"export": {"dir": "out", "folder_suffix": "nightly"}
	}`)

	sim, err := LoadSimulation(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sim.EnabledModels) != 3 {
		t.Fatalf("expected 3 models, got %d", len(sim.EnabledModels))
	}
	if sim.EnabledModels[1].Provider != "ollama" || sim.EnabledModels[1].Model != "llama3" {
		t.Fatalf("unexpected second model: %+v", sim.EnabledModels[1])
	}
	if sim.Tournament.NumGames != 10 {
		t.Fatalf("expected 10 games, got %d", sim.Tournament.NumGames)
	}
	if sim.Tournament.Difficulty != string(game.DifficultyEasy) {
		t.Fatalf("expected easy difficulty, got %s", sim.Tournament.Difficulty)
	}
	if len(sim.WordPairs) != 1 || sim.WordPairs[0].Word != "beach" {
		t.Fatalf("unexpected word pairs: %+v", sim.WordPairs)
	}
	if sim.Export.Dir != "out" || sim.Export.Suffix != "nightly" {
		t.Fatalf("unexpected export config: %+v", sim.Export)
	}
}

func TestLoadSimulationMissingFileUsesDefaults(t *testing.T) {
	sim, err := LoadSimulation(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(sim.WordPairs) == 0 {
		t.Fatal("defaults should include a word pool")
	}
	if sim.Tournament.Difficulty != string(game.DifficultyStandard) {
		t.Fatalf("default difficulty should be standard, got %s", sim.Tournament.Difficulty)
	}
	if sim.Tournament.NumGames <= 0 {
		t.Fatalf("default num_games should be positive, got %d", sim.Tournament.NumGames)
	}
}

func TestLoadSimulationRejectsBadInput(t *testing.T) {
	if _, err := LoadSimulation(writeFile(t, `{not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if _, err := LoadSimulation(writeFile(t, `{"tournament": {"num_games": 1, "difficulty": "brutal"}}`)); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
	if _, err := LoadSimulation(writeFile(t, `{"tournament": {"num_games": -3}}`)); err == nil {
		t.Fatal("expected error for negative num_games")
	}
}
