// Package analysis inspects move histories for wasted motion and repeated
// sequences.
package analysis

import (
	"github.com/SeamusWaldron/twisty/pkg/types"
)

// Cancellation is a move immediately undone by its opposite.
type Cancellation struct {
	Index int `json:"index"`
	Move  int `json:"move"`
}

// Run is a stretch of the same move repeated that has a shorter equivalent.
type Run struct {
	Start   int `json:"start"`
	Move    int `json:"move"`
	Length  int `json:"length"`
	Reduced int `json:"reduced"`
}

// BackAndForth is an alternating pair of moves (A B A B A B ...).
type BackAndForth struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Pair  [2]int `json:"pair"`
	Count int    `json:"count"`
}

// RepetitionReport holds the repetition findings for one sequence.
type RepetitionReport struct {
	Cancellations []Cancellation `json:"cancellations"`
	Runs          []Run          `json:"runs"`
	BackAndForth  []BackAndForth `json:"back_and_forth"`
	WastedMoves   int            `json:"wasted_moves"`
}

// AnalyzeRepetitions scans moves for cancellations, reducible runs and
// back-and-forth patterns. Move ids must be valid for model.
func AnalyzeRepetitions(model *types.Model, moves []int) *RepetitionReport {
	report := &RepetitionReport{
		Cancellations: []Cancellation{},
		Runs:          []Run{},
		BackAndForth:  []BackAndForth{},
	}

	for i := 0; i+1 < len(moves); i++ {
		if moves[i+1] == model.Opposites[moves[i]] && moves[i+1] != moves[i] {
			report.Cancellations = append(report.Cancellations, Cancellation{Index: i, Move: moves[i]})
		}
	}

	for i := 0; i < len(moves); {
		j := i + 1
		for j < len(moves) && moves[j] == moves[i] {
			j++
		}
		length := j - i
		if reduced := reducedLength(model, moves[i], length); reduced < length {
			report.Runs = append(report.Runs, Run{
				Start:   i,
				Move:    moves[i],
				Length:  length,
				Reduced: reduced,
			})
		}
		i = j
	}

	report.BackAndForth = findBackAndForth(moves)
	report.WastedMoves = len(moves) - len(Optimize(model, moves))
	return report
}

// reducedLength returns the fewest moves equivalent to count repetitions of
// id, using the move's opposite for the shorter direction.
func reducedLength(model *types.Model, id, count int) int {
	f := model.Moves[id].Fraction
	c := count % f
	if model.Opposites[id] != id && f-c < c {
		return f - c
	}
	return c
}

// findBackAndForth finds alternating pairs repeated at least three times.
func findBackAndForth(moves []int) []BackAndForth {
	patterns := []BackAndForth{}

	i := 0
	for i+3 < len(moves) {
		a, b := moves[i], moves[i+1]
		if a == b {
			i++
			continue
		}

		count := 1
		j := i + 2
		for j+1 < len(moves) && moves[j] == a && moves[j+1] == b {
			count++
			j += 2
		}

		if count >= 3 {
			patterns = append(patterns, BackAndForth{
				Start: i,
				End:   i + count*2 - 1,
				Pair:  [2]int{a, b},
				Count: count,
			})
			i = j
		} else {
			i++
		}
	}

	return patterns
}

type stackEntry struct {
	move  int
	count int
}

// Optimize returns an equivalent sequence with adjacent cancellations and
// full turns removed and long runs replaced by the opposite direction.
func Optimize(model *types.Model, moves []int) []int {
	stack := make([]stackEntry, 0, len(moves))

	for _, m := range moves {
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			switch {
			case top.move == m:
				top.count++
				if top.count == model.Moves[m].Fraction {
					stack = stack[:n-1]
				}
				continue
			case model.Opposites[top.move] == m:
				top.count--
				if top.count == 0 {
					stack = stack[:n-1]
				}
				continue
			}
		}
		stack = append(stack, stackEntry{move: m, count: 1})
	}

	result := make([]int, 0, len(stack))
	for _, e := range stack {
		move, count := e.move, e.count
		if r := reducedLength(model, move, count); r != count {
			move, count = model.Opposites[move], r
		}
		for k := 0; k < count; k++ {
			result = append(result, move)
		}
	}
	return result
}

// Efficiency returns len(optimized)/len(original), or 1 for an empty
// sequence.
func Efficiency(original, optimized []int) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(optimized)) / float64(len(original))
}
