package analysis

import (
	"github.com/SeamusWaldron/twisty/pkg/types"
)

// Summary collects the statistics reported for one move history.
type Summary struct {
	TotalMoves     int               `json:"total_moves"`
	OptimizedMoves int               `json:"optimized_moves"`
	Efficiency     float64           `json:"efficiency"`
	Optimized      []int             `json:"optimized"`
	Repetitions    *RepetitionReport `json:"repetitions"`
	Profile        *MovementProfile  `json:"profile"`
	NGrams         *NGramReport      `json:"ngrams"`
}

// Summarize runs every analysis over moves. N-grams of length 2 through
// maxN are mined, keeping topK per length.
func Summarize(model *types.Model, moves []int, maxN, topK int) *Summary {
	optimized := Optimize(model, moves)
	return &Summary{
		TotalMoves:     len(moves),
		OptimizedMoves: len(optimized),
		Efficiency:     Efficiency(moves, optimized),
		Optimized:      optimized,
		Repetitions:    AnalyzeRepetitions(model, moves),
		Profile:        AnalyzeMovementProfile(model, moves),
		NGrams:         MineNGrams(moves, 2, maxN, topK),
	}
}

// MovementProfile counts how often each move and each rotation side is used.
type MovementProfile struct {
	MoveCounts   map[int]int        `json:"move_counts"`
	SideCounts   map[types.Side]int `json:"side_counts,omitempty"`
	MostUsedMove int                `json:"most_used_move"`
}

// AnalyzeMovementProfile tallies move usage. Sides are only counted for
// moves that have one. MostUsedMove is -1 for an empty sequence and the
// lowest id among equally used moves otherwise.
func AnalyzeMovementProfile(model *types.Model, moves []int) *MovementProfile {
	profile := &MovementProfile{
		MoveCounts:   make(map[int]int),
		SideCounts:   make(map[types.Side]int),
		MostUsedMove: -1,
	}

	for _, m := range moves {
		profile.MoveCounts[m]++
		if side := model.Moves[m].Side; side != types.NoSide {
			profile.SideCounts[side]++
		}
	}

	best := 0
	for m, count := range profile.MoveCounts {
		if count > best || (count == best && m < profile.MostUsedMove) {
			best = count
			profile.MostUsedMove = m
		}
	}

	return profile
}
