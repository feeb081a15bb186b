// Twisty - command-line tools for simulating and analyzing n x n x n twisty puzzles.
package main

import (
	"github.com/SeamusWaldron/twisty/internal/cli"
)

func main() {
	cli.Execute()
}
