package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/render"
)

var (
	showMoves    string
	showFragment string
	showLast     bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Draw a puzzle state",
	Long: `Draw the puzzle as an unfolded net after applying optional moves.

Examples:
  twisty show
  twisty show -n 4 --moves "R U 2R' F2"
  twisty show --fragment <fragment>
  twisty show --last`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showMoves, "moves", "", "Moves to apply, in face-turn notation")
	showCmd.Flags().StringVar(&showFragment, "fragment", "", "History fragment to replay first")
	showCmd.Flags().BoolVar(&showLast, "last", false, "Replay the last shown or scrambled position")
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := newPuzzle()
	if err != nil {
		return err
	}

	fragment := showFragment
	if showLast {
		sf, err := openStateFile()
		if err != nil {
			return err
		}
		if fragment = sf.LastFragment(); fragment == "" {
			return fmt.Errorf("no last position recorded")
		}
	}
	if fragment != "" {
		if err := p.DecodeFragment(fragment); err != nil {
			return err
		}
	}
	if showMoves != "" {
		if err := p.ApplyNotation(showMoves); err != nil {
			return err
		}
	}

	fmt.Print(drawPuzzle(p, render.NoMarks))
	fmt.Println()
	fmt.Print(describe(p))

	out, err := p.EncodeFragment()
	if err != nil {
		return err
	}
	fmt.Printf("Fragment: %s\n", out)
	return nil
}
