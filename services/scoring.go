package services

import "sort"

// DrawerBonus is awarded to the drawer for each correct guess in a round.
const DrawerBonus = 10

// GuesserPoints computes the points for a correct guess given the seconds
// left on the round clock: 20 base plus 1 per 10 remaining seconds, floored
// at 10 so a last-moment guess is still worth something.
func GuesserPoints(timeLeft int) int {
	points := 20 + timeLeft/10
	if points < 10 {
		points = 10
	}
	return points
}

// FinalScore is the read-only ranking entry computed once at game completion.
type FinalScore struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	TotalScore     int    `json:"total_score"`
	CorrectGuesses int    `json:"correct_guesses"`
	Rank           int    `json:"rank"`
}

// ComputeFinalScores ranks players by score descending. Ties are broken by
// join order (the input order), earlier joiners ranking higher, so the
// ordering is total and ranks run 1..N with no gaps.
func ComputeFinalScores(players []*Player) []FinalScore {
	scores := make([]FinalScore, 0, len(players))
	for _, p := range players {
		scores = append(scores, FinalScore{
			PlayerID:       p.ID,
			PlayerName:     p.Name,
			TotalScore:     p.Score,
			CorrectGuesses: p.CorrectGuesses,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})

	for i := range scores {
		scores[i].Rank = i + 1
	}

	return scores
}
