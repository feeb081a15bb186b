package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/analysis"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var (
	analyzeMoves    string
	analyzeFragment string
	analyzeSession  string
	analyzeLast     bool
	analyzeAll      bool
	analyzeJSON     bool
	analyzeMaxN     int
	analyzeTopK     int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a move history",
	Long: `Report wasted motion and repeated sequences in a move history.

The history comes from --moves, a fragment or a saved session. Only the
moves made after the scramble are analyzed unless --all is given.

Examples:
  twisty analyze --moves "R U R' U' R U R' U'"
  twisty analyze --last --json
  twisty analyze --session 5f0c... --all`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeMoves, "moves", "", "Moves to analyze, in face-turn notation")
	analyzeCmd.Flags().StringVar(&analyzeFragment, "fragment", "", "History fragment to analyze")
	analyzeCmd.Flags().StringVar(&analyzeSession, "session", "", "Saved session ID to analyze")
	analyzeCmd.Flags().BoolVar(&analyzeLast, "last", false, "Analyze the most recent saved session")
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "Include the scramble")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON")
	analyzeCmd.Flags().IntVar(&analyzeMaxN, "max-n", 8, "Longest repeated sequence to look for")
	analyzeCmd.Flags().IntVar(&analyzeTopK, "top", 3, "Repeated sequences to keep per length")
}

// analyzedPuzzle builds the puzzle whose history the flags select.
func analyzedPuzzle() (*twisty.Puzzle, error) {
	if analyzeSession != "" || analyzeLast {
		db, err := openDB()
		if err != nil {
			return nil, err
		}
		defer db.Close()

		sessions := storage.NewSessionRepository(db)
		var s *storage.Session
		if analyzeLast {
			s, err = sessions.GetLast()
		} else {
			s, err = sessions.Get(analyzeSession)
		}
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("session not found")
		}
		return loadSession(s)
	}

	p, err := newPuzzle()
	if err != nil {
		return nil, err
	}
	if analyzeFragment != "" {
		if err := p.DecodeFragment(analyzeFragment); err != nil {
			return nil, err
		}
	}
	if analyzeMoves != "" {
		if err := p.ApplyNotation(analyzeMoves); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p, err := analyzedPuzzle()
	if err != nil {
		return err
	}

	h := p.History()
	moves := h.Undo
	if analyzeAll {
		moves = append(append([]int{}, h.Initial...), h.Undo...)
	}

	summary := analysis.Summarize(p.Model(), moves, analyzeMaxN, analyzeTopK)
	log.WithField("count", len(moves)).Debug("history analyzed")

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	printSummary(p, summary)
	return nil
}

func printSummary(p *twisty.Puzzle, s *analysis.Summary) {
	fmt.Printf("Moves: %d\n", s.TotalMoves)
	fmt.Printf("Optimized: %d (%.0f%%)\n", s.OptimizedMoves, s.Efficiency*100)
	if s.OptimizedMoves > 0 && s.OptimizedMoves < s.TotalMoves {
		fmt.Printf("Shortened: %s\n", p.FormatMoves(s.Optimized))
	}
	if s.Profile.MostUsedMove >= 0 {
		fmt.Printf("Most used: %s (%d times)\n",
			p.FormatMoves([]int{s.Profile.MostUsedMove}), s.Profile.MoveCounts[s.Profile.MostUsedMove])
	}

	r := s.Repetitions
	fmt.Printf("\nWasted moves: %d\n", r.WastedMoves)
	for _, c := range r.Cancellations {
		fmt.Printf("  #%-4d %s cancelled by %s\n",
			c.Index, p.FormatMoves([]int{c.Move}), p.FormatMoves([]int{p.OppositeMove(c.Move)}))
	}
	for _, run := range r.Runs {
		fmt.Printf("  #%-4d %s x%d reduces to %d\n",
			run.Start, p.FormatMoves([]int{run.Move}), run.Length, run.Reduced)
	}
	for _, bf := range r.BackAndForth {
		fmt.Printf("  #%-4d %s repeated %d times\n",
			bf.Start, p.FormatMoves(bf.Pair[:]), bf.Count)
	}

	lengths := make([]int, 0, len(s.NGrams.TopNGrams))
	for n := range s.NGrams.TopNGrams {
		lengths = append(lengths, n)
	}
	if len(lengths) == 0 {
		return
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))

	fmt.Println("\nRepeated sequences:")
	for _, n := range lengths {
		for _, ng := range s.NGrams.TopNGrams[n] {
			fmt.Printf("  %-3d x%-3d %s\n", n, ng.Count, p.FormatMoves(ng.Moves))
		}
	}
}
