// Command generate produces random partially-filled boards that have a
// bounded number of completions, one per stdout line, following the flag-
// parsed-CLI shape of a plain puzzle generator: pick a random empty cell and
// digit, commit it if the resulting board still has at least one completion,
// and stop once it has at most -max-solutions of them.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/digit"
	"github.com/ninedigits/engine/ninederr"
	"github.com/ninedigits/engine/prng"
	"github.com/ninedigits/engine/solutiontable"
	"github.com/ninedigits/engine/square"
)

func main() {
	count := flag.Int("count", 1, "number of boards to generate")
	maxSolutions := flag.Int("max-solutions", 1, "stop once the board has at most this many completions")
	perBoardTimeout := flag.Duration("timeout", 5*time.Second, "time budget for each solution-count check")
	flag.Parse()

	rng := prng.NewWithTimeNonce()
	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()

	for i := 0; i < *count; i++ {
		bd, err := generate(*maxSolutions, *perBoardTimeout, rng)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(writer, bd.String())
	}
}

// generate repeatedly commits a random (cell, digit) placement, backing out
// of placements that leave zero completions, until the board has between 1
// and maxSolutions completions.
func generate(maxSolutions int, timeout time.Duration, rng *prng.Generator) (board.Board, error) {
	bd := board.Empty
	for {
		mov, ok := randomMove(bd, rng)
		if !ok {
			return bd, nil
		}
		candidate := bd.Apply(mov)

		table, err := solutiontable.Generate(candidate, 0, maxSolutions, time.Now().Add(timeout), rng)
		switch {
		case err == nil && table.Len() == 0:
			continue // contradiction: this placement leaves no completions
		case err == nil:
			return candidate, nil // table.Len() is in [1, maxSolutions]
		case isMemoryExceeded(err):
			bd = candidate // too many completions remain; keep narrowing
		default:
			continue // deadline hit before a verdict; discard this attempt
		}
	}
}

func isMemoryExceeded(err error) bool {
	kind, ok := ninederr.IsResourcesExceeded(err)
	return ok && kind == ninederr.ResourceMemory
}

func randomMove(bd board.Board, rng *prng.Generator) (board.Move, bool) {
	var empties []square.Cell
	for _, c := range square.AllCells() {
		if _, ok := bd.Get(c).Digit(); !ok {
			empties = append(empties, c)
		}
	}
	if len(empties) == 0 {
		return board.Move{}, false
	}
	cell := empties[rng.Uniform(uint32(len(empties)))]
	d := digit.New(uint8(rng.Uniform(9)))
	return board.Move{Cell: cell, Digit: d}, true
}
