package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/puzzledata"
)

var (
	dataFormat string
	dataOutput string
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Work with precomputed puzzle data",
}

var dataGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate data for the 3x3x3 panel cube",
	Long: `Generate precomputed data for a 3x3x3 cube modelled as panels, with a
gesture table.

Examples:
  twisty data generate -o cube.json
  twisty data generate --format yaml`,
	RunE: runDataGenerate,
}

var dataExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a compiled cube as puzzle data",
	Long: `Export the move tables of a compiled NxNxN cube in the data format.

Examples:
  twisty data export -n 4 -o cube4.yaml --format yaml`,
	RunE: runDataExport,
}

var dataCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a puzzle data file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataCheck,
}

func init() {
	rootCmd.AddCommand(dataCmd)
	dataCmd.AddCommand(dataGenerateCmd, dataExportCmd, dataCheckCmd)

	for _, c := range []*cobra.Command{dataGenerateCmd, dataExportCmd} {
		c.Flags().StringVar(&dataFormat, "format", "json", "Output format (json, yaml)")
		c.Flags().StringVarP(&dataOutput, "output", "o", "", "Output file (default: stdout)")
	}
}

func runDataGenerate(cmd *cobra.Command, args []string) error {
	return writeData(puzzledata.Generate())
}

func runDataExport(cmd *cobra.Command, args []string) error {
	p, err := newPuzzle()
	if err != nil {
		return err
	}
	return writeData(puzzledata.Export(p.Model()))
}

func writeData(d *puzzledata.Data) error {
	format, err := puzzledata.ParseFormat(dataFormat)
	if err != nil {
		return err
	}

	if dataOutput == "" {
		out, err := d.Marshal(format)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	if err := d.WriteFile(dataOutput, format); err != nil {
		return err
	}
	fmt.Printf("Wrote %d panels and %d moves to %s\n", len(d.Panels), len(d.Moves), dataOutput)
	return nil
}

func runDataCheck(cmd *cobra.Command, args []string) error {
	d, err := puzzledata.ReadFile(args[0])
	if err != nil {
		return err
	}
	model, err := d.Model()
	if err != nil {
		return err
	}

	gestures := "computed"
	if model.Gestures != nil {
		gestures = "precomputed"
	}
	fmt.Printf("%s: ok\n", args[0])
	fmt.Printf("  Panels: %d\n", model.FacetCount())
	fmt.Printf("  Moves: %d\n", model.MoveCount())
	fmt.Printf("  Orientations: %d\n", model.Orient.Len())
	fmt.Printf("  Gestures: %s\n", gestures)
	return nil
}
