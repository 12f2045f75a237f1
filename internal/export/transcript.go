package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/ntheocharis/undercover/internal/game"
	"github.com/ntheocharis/undercover/internal/tournament"
)

// WriteTranscripts renders every committed game as readable text, one block
// per game, in canonical message order.
func WriteTranscripts(path string, res *tournament.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, g := range res.Games {
		sb.WriteString(fmt.Sprintf("Game %d: secret word %q (decoy %q)\n", g.GameIndex, g.Words.Word, g.Words.Decoy))
		sb.WriteString(strings.Repeat("=", 50) + "\n")
		for _, p := range g.Participants {
			marker := ""
			if p.Role == game.RoleImpostor {
				marker = " (impostor)"
			}
			sb.WriteString(fmt.Sprintf("- %s: %s/%s%s\n", p.Name, p.Model.Provider, p.Model.Model, marker))
		}
		sb.WriteString("\n")

		lastPhase := ""
		for _, m := range g.Messages {
			if string(m.Phase) != lastPhase {
				lastPhase = string(m.Phase)
				sb.WriteString(fmt.Sprintf("--- %s ---\n", lastPhase))
			}
			sb.WriteString(fmt.Sprintf("%s: %s\n", m.Speaker, m.Content))
		}

		sb.WriteString(fmt.Sprintf("\nEliminated: %s (%s win)\n\n", g.Eliminated, g.WinnerSide))
	}

	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
