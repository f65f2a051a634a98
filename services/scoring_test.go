package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuesserPoints(t *testing.T) {
	tests := []struct {
		name     string
		timeLeft int
		want     int
	}{
		{"mid round", 45, 24},
		{"last moment", 0, 20},
		{"full clock", 60, 26},
		{"just under a bonus step", 9, 20},
		{"one bonus step", 10, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GuesserPoints(tt.timeLeft))
		})
	}
}

func TestComputeFinalScores_RanksByScoreDescending(t *testing.T) {
	players := []*Player{
		{ID: "a", Name: "Alice", Score: 10},
		{ID: "b", Name: "Bob", Score: 25, CorrectGuesses: 1},
		{ID: "c", Name: "Cara", Score: 0},
	}

	finals := ComputeFinalScores(players)

	assert.Equal(t, []string{"b", "a", "c"}, []string{finals[0].PlayerID, finals[1].PlayerID, finals[2].PlayerID})
	assert.Equal(t, []int{1, 2, 3}, []int{finals[0].Rank, finals[1].Rank, finals[2].Rank})
	assert.Equal(t, 1, finals[0].CorrectGuesses)
}

func TestComputeFinalScores_TieBrokenByJoinOrder(t *testing.T) {
	// input order is join order; earlier joiner ranks higher on equal score
	players := []*Player{
		{ID: "a", Score: 10},
		{ID: "b", Score: 10},
		{ID: "c", Score: 10},
	}

	finals := ComputeFinalScores(players)

	assert.Equal(t, "a", finals[0].PlayerID)
	assert.Equal(t, "b", finals[1].PlayerID)
	assert.Equal(t, "c", finals[2].PlayerID)

	// ranks are dense even on equal scores
	for i, f := range finals {
		assert.Equal(t, i+1, f.Rank)
	}
}

func TestComputeFinalScores_Empty(t *testing.T) {
	assert.Empty(t, ComputeFinalScores(nil))
}
