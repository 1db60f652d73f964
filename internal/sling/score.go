package sling

import "math"

// Star thresholds for a winning score.
const (
	ThreeStarScore = 1200
	TwoStarScore   = 900
)

// FinalScore is the score awarded on a win. It never goes below zero.
func FinalScore(fuel float64, sessionScore int, elapsedMs float64) int {
	score := 1000 + int(math.Round(fuel*50)) + sessionScore - int(math.Floor(elapsedMs/1000))*10
	return max(0, score)
}

// Stars rates a winning score from 1 to 3.
func Stars(score int) int {
	switch {
	case score >= ThreeStarScore:
		return 3
	case score >= TwoStarScore:
		return 2
	default:
		return 1
	}
}

// Result is the summary of a won level, handed to the progress store.
type Result struct {
	LevelID        int
	Score          int
	Stars          int
	ElapsedSeconds int
	ElapsedMs      float64
	Fuel           float64
}
