package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ntheocharis/undercover/internal/game"
	"github.com/ntheocharis/undercover/internal/tournament"
)

// PrintResult writes the tournament report: status banner, side win split,
// a ranking table by overall win rate, and a detail block per model.
func PrintResult(w io.Writer, res *tournament.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w, "TOURNAMENT RESULTS")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	completed := res.Completed()
	if res.Status == tournament.StatusPartial {
		fmt.Fprintf(w, "\nStatus: PARTIAL (%d/%d games)\n", completed, res.Planned)
		if res.Failure != nil {
			fmt.Fprintf(w, "Failed at game %d, phase %s", res.Failure.GameIndex, res.Failure.Phase)
			if res.Failure.Participant != "" {
				fmt.Fprintf(w, ", participant %s", res.Failure.Participant)
			}
			fmt.Fprintf(w, ": %s\n", res.Failure.Reason)
		}
	} else {
		fmt.Fprintf(w, "\nStatus: COMPLETE (%d games)\n", completed)
	}

	if completed > 0 {
		cw := res.SideWins(game.SideCitizens)
		iw := res.SideWins(game.SideImpostor)
		fmt.Fprintf(w, "Citizens wins: %d (%.1f%%)\n", cw, pct(cw, completed))
		fmt.Fprintf(w, "Impostor wins: %d (%.1f%%)\n", iw, pct(iw, completed))
	} else {
		fmt.Fprintln(w, "No games completed.")
	}

	stats := sortedStats(res)
	if len(stats) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "MODEL RANKINGS (by overall win rate)")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "%-4s %-30s %-9s %-6s %-9s %-9s %-9s\n",
		"Rank", "Model", "Win Rate", "Games", "Imp Rate", "Cit Rate", "Survival")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for rank, s := range stats {
		name := s.Model.Key()
		if len(name) > 29 {
			name = name[:26] + "..."
		}
		fmt.Fprintf(w, "%-4d %-30s %-9s %-6d %-9s %-9s %-9s\n",
			rank+1, name,
			fmtPct(s.WinRate()), s.GamesPlayed,
			fmtPct(s.ImpostorWinRate()), fmtPct(s.CitizenWinRate()), fmtPct(s.SurvivalRate()))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "DETAILED STATISTICS")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, s := range stats {
		fmt.Fprintf(w, "\n%s:\n", s.Model.Key())
		fmt.Fprintf(w, "  Games: %d, wins: %d (%s)\n", s.GamesPlayed, s.TotalWins, fmtPct(s.WinRate()))
		fmt.Fprintf(w, "  As impostor: %d/%d (%s)\n", s.WinsAsImpostor, s.GamesAsImpostor, fmtPct(s.ImpostorWinRate()))
		fmt.Fprintf(w, "  As citizen: %d/%d (%s)\n", s.WinsAsCitizen, s.GamesAsCitizen, fmtPct(s.CitizenWinRate()))
		fmt.Fprintf(w, "  Eliminated %d times (survival %s), avg votes received %.1f\n",
			s.Eliminations, fmtPct(s.SurvivalRate()), s.AvgVotesReceived())
	}
}

func sortedStats(res *tournament.Result) []*tournament.ModelStats {
	out := make([]*tournament.ModelStats, 0, len(res.Stats))
	for _, s := range res.Stats {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate() != out[j].WinRate() {
			return out[i].WinRate() > out[j].WinRate()
		}
		return out[i].Model.Key() < out[j].Model.Key()
	})
	return out
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func fmtPct(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// Verbose streams phase transitions and messages to w while games run.
// It implements game.Events for the CLI's verbose flag.
type Verbose struct {
	W io.Writer
}

func (v Verbose) PhaseChange(gameIndex int, phase game.Phase) {
	fmt.Fprintf(v.W, "[game %d] === %s ===\n", gameIndex, phase)
}

func (v Verbose) Message(gameIndex int, msg game.Message) {
	if msg.Round > 0 && msg.Phase == game.PhaseDiscussion {
		fmt.Fprintf(v.W, "[game %d] %s (round %d): %s\n", gameIndex, msg.Speaker, msg.Round, msg.Content)
		return
	}
	fmt.Fprintf(v.W, "[game %d] %s: %s\n", gameIndex, msg.Speaker, msg.Content)
}

func (v Verbose) GameComplete(gameIndex int, res *game.Result) {
	fmt.Fprintf(v.W, "[game %d] %s win: %s eliminated, impostor was %s\n",
		gameIndex, res.WinnerSide, res.Eliminated, res.Impostor)
}
