package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/ntheocharis/undercover/internal/game"
	"github.com/ntheocharis/undercover/internal/tournament"
)

// Options control where a tournament run is written.
type Options struct {
	Dir         string // parent directory for run folders
	FolderName  string // overrides the generated folder name when set
	Suffix      string // appended to the generated folder name
	Transcripts bool   // also write a human-readable transcript file
}

// WriteCSV serializes a tournament result into a per-run folder of CSV
// files: games, players, messages, model stats, and a one-line summary.
// Partial runs get a "_partial" marker in the base name so aborted data is
// never mistaken for a full tournament. Returns the run folder path.
func WriteCSV(res *tournament.Result, opts Options) (string, error) {
	players := 0
	if len(res.Games) > 0 {
		players = len(res.Games[0].Participants)
	} else {
		players = len(res.Stats)
	}

	base := fmt.Sprintf("%dgames_%dplayers_%s", res.Planned, players, time.Now().Format("20060102_150405"))
	if res.Status == tournament.StatusPartial {
		base += "_partial"
	}

	folder := base
	if opts.FolderName != "" {
		folder = opts.FolderName
	}
	if opts.Suffix != "" {
		folder += "_" + opts.Suffix
	}
	dir := filepath.Join(opts.Dir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}

	if err := writeGames(filepath.Join(dir, base+"_games.csv"), res); err != nil {
		return "", err
	}
	if err := writePlayers(filepath.Join(dir, base+"_players.csv"), res); err != nil {
		return "", err
	}
	if err := writeMessages(filepath.Join(dir, base+"_messages.csv"), res); err != nil {
		return "", err
	}
	if err := writeModelStats(filepath.Join(dir, base+"_model_stats.csv"), res); err != nil {
		return "", err
	}
	if err := writeSummary(filepath.Join(dir, base+"_tournament_summary.csv"), res); err != nil {
		return "", err
	}
	if opts.Transcripts {
		if err := WriteTranscripts(filepath.Join(dir, base+"_transcripts.txt"), res); err != nil {
			return "", err
		}
	}
	return dir, nil
}

func writeCSVFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeGames(path string, res *tournament.Result) error {
	header := []string{
		"game_index", "timestamp", "winner_side",
		"impostor", "impostor_provider", "impostor_model",
		"eliminated", "eliminated_provider", "eliminated_model",
		"secret_word", "decoy_word", "total_votes",
	}
	rows := make([][]string, 0, len(res.Games))
	for _, g := range res.Games {
		rows = append(rows, []string{
			strconv.Itoa(g.GameIndex),
			g.Timestamp.Format(time.RFC3339),
			string(g.WinnerSide),
			g.Impostor, g.ImpostorModel.Provider, g.ImpostorModel.Model,
			g.Eliminated, g.EliminatedModel.Provider, g.EliminatedModel.Model,
			g.Words.Word, g.Words.Decoy,
			strconv.Itoa(len(g.Votes)),
		})
	}
	return writeCSVFile(path, header, rows)
}

func writePlayers(path string, res *tournament.Result) error {
	header := []string{
		"game_index", "name", "provider", "model",
		"role", "word", "survived", "votes_received",
	}
	var rows [][]string
	for _, g := range res.Games {
		for _, p := range g.Participants {
			rows = append(rows, []string{
				strconv.Itoa(g.GameIndex),
				p.Name, p.Model.Provider, p.Model.Model,
				string(p.Role), p.Word,
				strconv.FormatBool(p.Survived),
				strconv.Itoa(p.VotesReceived),
			})
		}
	}
	return writeCSVFile(path, header, rows)
}

func writeMessages(path string, res *tournament.Result) error {
	header := []string{"game_index", "ordinal", "speaker", "phase", "round", "content"}
	var rows [][]string
	for _, g := range res.Games {
		for _, m := range g.Messages {
			rows = append(rows, []string{
				strconv.Itoa(g.GameIndex),
				strconv.Itoa(m.Ordinal),
				m.Speaker, string(m.Phase),
				strconv.Itoa(m.Round),
				m.Content,
			})
		}
	}
	return writeCSVFile(path, header, rows)
}

func writeModelStats(path string, res *tournament.Result) error {
	header := []string{
		"provider", "model", "games_played", "total_wins", "win_rate",
		"games_as_impostor", "wins_as_impostor", "impostor_win_rate",
		"games_as_citizen", "wins_as_citizen", "citizen_win_rate",
		"eliminations", "survival_rate", "votes_received", "avg_votes_received",
	}
	keys := make([]string, 0, len(res.Stats))
	for k := range res.Stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		s := res.Stats[k]
		rows = append(rows, []string{
			s.Model.Provider, s.Model.Model,
			strconv.Itoa(s.GamesPlayed),
			strconv.Itoa(s.TotalWins),
			formatRate(s.WinRate()),
			strconv.Itoa(s.GamesAsImpostor),
			strconv.Itoa(s.WinsAsImpostor),
			formatRate(s.ImpostorWinRate()),
			strconv.Itoa(s.GamesAsCitizen),
			strconv.Itoa(s.WinsAsCitizen),
			formatRate(s.CitizenWinRate()),
			strconv.Itoa(s.Eliminations),
			formatRate(s.SurvivalRate()),
			strconv.Itoa(s.VotesReceived),
			strconv.FormatFloat(s.AvgVotesReceived(), 'f', 2, 64),
		})
	}
	return writeCSVFile(path, header, rows)
}

func writeSummary(path string, res *tournament.Result) error {
	header := []string{
		"planned_games", "completed_games", "status",
		"failed_game_index", "failed_phase", "failed_participant",
		"citizens_wins", "impostor_wins", "started_at", "ended_at",
	}
	failedIndex, failedPhase, failedParticipant := "", "", ""
	if res.Failure != nil {
		failedIndex = strconv.Itoa(res.Failure.GameIndex)
		failedPhase = string(res.Failure.Phase)
		failedParticipant = res.Failure.Participant
	}
	row := []string{
		strconv.Itoa(res.Planned),
		strconv.Itoa(res.Completed()),
		string(res.Status),
		failedIndex, failedPhase, failedParticipant,
		strconv.Itoa(res.SideWins(game.SideCitizens)),
		strconv.Itoa(res.SideWins(game.SideImpostor)),
		res.StartedAt.Format(time.RFC3339),
		res.EndedAt.Format(time.RFC3339),
	}
	return writeCSVFile(path, header, [][]string{row})
}

func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', 3, 64)
}
