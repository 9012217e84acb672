// Command console is an interactive REPL for driving and inspecting a
// single Player: apply moves, ask it to choose one, and inspect the
// transposition-table telemetry the endgame solver accumulates. Its
// shell-like command line is grounded on the dependencies the teacher repo
// carries for exactly this purpose (github.com/chzyer/readline for the
// prompt/history, github.com/kballard/go-shellquote to tokenize a typed
// line) rather than a hand-rolled bufio.Scanner split.
package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/config"
	"github.com/ninedigits/engine/driver"
	"github.com/ninedigits/engine/prng"
)

func main() {
	rl, err := readline.New("ninedigits> ")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer rl.Close()

	cfg := config.New()
	player := driver.NewPlayer(cfg, prng.NewWithTimeNonce())

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return
		}
		if err != nil {
			fmt.Println(err)
			return
		}

		fields, err := shellquote.Split(line)
		if err != nil {
			fmt.Println("parse error:", err)
			continue
		}
		if len(fields) == 0 {
			continue
		}

		if quit := dispatch(cfg, player, fields); quit {
			return
		}
	}
}

// dispatch runs one command, returning true if the REPL should exit.
func dispatch(cfg *config.Config, player *driver.Player, fields []string) bool {
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		printHelp()
	case "board":
		fmt.Println(player.Board().String())
	case "load":
		cmdLoad(player, args)
	case "move":
		cmdMove(player, args)
	case "choose":
		cmdChoose(cfg, player)
	case "stats":
		cmdStats(player)
	default:
		fmt.Printf("unrecognized command %q; try \"help\"\n", cmd)
	}
	return false
}

func printHelp() {
	fmt.Println(strings.Join([]string{
		"commands:",
		"  board           print the current 81-character board",
		"  load <string>   replace the board with an 81-character board string",
		"  move <move>     apply a move in this engine's move grammar, e.g. Aa119",
		"  choose          ask the player to choose and apply its next move",
		"  stats           print move/search telemetry for the last choose",
		"  help            print this message",
		"  quit            exit",
	}, "\n"))
}

func cmdLoad(player *driver.Player, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: load <81-character board string>")
		return
	}
	bd, err := board.Parse(args[0])
	if err != nil {
		fmt.Println("invalid board:", err)
		return
	}
	player.LoadBoard(bd)
}

func cmdMove(player *driver.Player, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: move <move>")
		return
	}
	mov, err := board.ParseMove(args[0])
	if err != nil {
		fmt.Println("invalid move:", err)
		return
	}
	player.OpponentMove(mov)
}

func cmdChoose(cfg *config.Config, player *driver.Player) {
	mov := player.ChooseMove(time.Now(), cfg.GameTimeLimit())
	fmt.Println(mov.String())
}

func cmdStats(player *driver.Player) {
	s := player.Stats()
	fmt.Printf("moves played:       %d\n", s.MovesPlayed)
	fmt.Printf("last solutions:     %d\n", s.LastSolutionCount)
	fmt.Printf("exhaustive table:   %t\n", s.AllSolutionsGenerated)
	fmt.Printf("last move latency:  %s\n", s.LastMoveLatency)
	fmt.Printf("endgame nodes:      %d\n", s.EndgameNodes)
	fmt.Printf("endgame tt inserts: %d\n", s.EndgameTTInserts)
	fmt.Printf("tt era:             %d\n", s.TTEra)
	fmt.Printf("tt hit rate:        %.3f\n", s.TTHitRate)
}
