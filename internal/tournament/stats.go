package tournament

import "github.com/ntheocharis/undercover/internal/game"

// ModelStats are the rolling aggregates for one configured model. Counters
// only ever grow; rates are derived on demand so partial tournaments report
// consistent numbers.
type ModelStats struct {
	Model           game.ModelRef `json:"model"`
	GamesPlayed     int           `json:"gamesPlayed"`
	GamesAsImpostor int           `json:"gamesAsImpostor"`
	WinsAsImpostor  int           `json:"winsAsImpostor"`
	GamesAsCitizen  int           `json:"gamesAsCitizen"`
	WinsAsCitizen   int           `json:"winsAsCitizen"`
	TotalWins       int           `json:"totalWins"`
	Eliminations    int           `json:"eliminations"`
	VotesReceived   int           `json:"votesReceived"`
}

func (s *ModelStats) record(pr game.ParticipantResult, winner game.Side) {
	s.GamesPlayed++
	s.VotesReceived += pr.VotesReceived
	if !pr.Survived {
		s.Eliminations++
	}
	if pr.Role == game.RoleImpostor {
		s.GamesAsImpostor++
		if winner == game.SideImpostor {
			s.WinsAsImpostor++
			s.TotalWins++
		}
	} else {
		s.GamesAsCitizen++
		if winner == game.SideCitizens {
			s.WinsAsCitizen++
			s.TotalWins++
		}
	}
}

func (s *ModelStats) WinRate() float64 {
	return ratio(s.TotalWins, s.GamesPlayed)
}

func (s *ModelStats) SurvivalRate() float64 {
	return ratio(s.GamesPlayed-s.Eliminations, s.GamesPlayed)
}

func (s *ModelStats) ImpostorWinRate() float64 {
	return ratio(s.WinsAsImpostor, s.GamesAsImpostor)
}

func (s *ModelStats) CitizenWinRate() float64 {
	return ratio(s.WinsAsCitizen, s.GamesAsCitizen)
}

func (s *ModelStats) AvgVotesReceived() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.VotesReceived) / float64(s.GamesPlayed)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
