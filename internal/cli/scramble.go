package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/render"
)

var scrambleCount int

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Generate a random scramble",
	Long: `Generate a scramble of random moves, draw the result and remember it
as the last position.

Examples:
  twisty scramble
  twisty scramble -c 40 --seed 7
  twisty scramble -n 5`,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleCount, "count", "c", 0, "Number of moves (default from config)")
}

func runScramble(cmd *cobra.Command, args []string) error {
	p, err := newPuzzle()
	if err != nil {
		return err
	}

	count := scrambleCount
	if count == 0 {
		count = cfg.ScrambleLength
	}
	moves := p.Scramble(count)

	fmt.Println(moveStyle.Render(p.FormatMoves(moves)))
	fmt.Println()
	fmt.Print(drawPuzzle(p, render.NoMarks))

	fragment, err := p.EncodeFragment()
	if err != nil {
		return err
	}
	fmt.Printf("\nFragment: %s\n", fragment)

	sf, err := openStateFile()
	if err != nil {
		return err
	}
	return sf.SetLastFragment(fragment)
}
