package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var movesCmd = &cobra.Command{
	Use:   "moves",
	Short: "List the moves of a puzzle",
	Long:  `List every generating move with its notation, opposite, axis and the number of facets it turns.`,
	RunE:  runMoves,
}

func init() {
	rootCmd.AddCommand(movesCmd)
}

func runMoves(cmd *cobra.Command, args []string) error {
	p, err := newPuzzle()
	if err != nil {
		return err
	}

	fmt.Printf("%-4s %-8s %-8s %-16s %s\n", "ID", "MOVE", "UNDO", "AXIS", "FACETS")
	for id := 0; id < p.MoveCount(); id++ {
		md := p.MoveMetadata(id)
		affected := 0
		for _, a := range md.Affected {
			if a {
				affected++
			}
		}
		opposite := p.OppositeMove(id)
		fmt.Printf("%-4d %-8s %-8s %-16s %d\n",
			id,
			p.FormatMoves([]int{id}),
			p.FormatMoves([]int{opposite}),
			fmt.Sprintf("%v/%d", md.Axis, md.Fraction),
			affected,
		)
	}
	return nil
}
