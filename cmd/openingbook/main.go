// Command openingbook runs the parallel proof/disproof-number search over
// opening positions and persists the resulting tree to disk, grounded on the
// reference opening-book tool's thread pool and periodic progress reporting.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/ninedigits/engine/board"
	"github.com/ninedigits/engine/openingbook"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

func main() {
	inPath := flag.String("in", "", "optional snapshot file to resume from")
	outPath := flag.String("out", "book.yaml", "snapshot file to write on exit")
	rootBoard := flag.String("root", "", "optional 81-character board to start the search from, instead of the empty board")
	threads := flag.Int("threads", 4, "number of search worker goroutines")
	tableMemory := flag.Uint64("table-memory", 64<<20, "per-worker transposition table size in bytes")
	minSolutions := flag.Int("min-solutions", 0, "completions a node's solve stores before its deadline is first checked")
	maxSolutions := flag.Int("max-solutions", 200000, "maximum completions enumerated per node solve")
	solveTimeLimit := flag.Duration("solve-time-limit", 5*time.Second, "per-node solve deadline")
	runFor := flag.Duration("for", 0, "stop the search after this long (0 means run until proven or interrupted)")
	reportEvery := flag.Duration("report-every", 10*time.Second, "progress report interval")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	book, err := openBook(*inPath, *rootBoard)
	if err != nil {
		log.Fatal().Err(err).Msg("openingbook: failed to initialize book")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if *runFor > 0 {
		var timeoutCancel context.CancelFunc
		ctx, timeoutCancel = context.WithTimeout(ctx, *runFor)
		defer timeoutCancel()
	}

	stopReporting := make(chan struct{})
	go reportPeriodically(book, *reportEvery, stopReporting)

	runErr := openingbook.Run(ctx, book, openingbook.SearchOptions{
		Threads:        *threads,
		TableMemory:    *tableMemory,
		MinSolutions:   *minSolutions,
		MaxSolutions:   *maxSolutions,
		SolveTimeLimit: *solveTimeLimit,
	})
	close(stopReporting)
	if runErr != nil {
		log.Error().Err(runErr).Msg("openingbook: search ended with an error")
	}

	openingbook.Report(book)
	if err := saveBook(book, *outPath); err != nil {
		log.Fatal().Err(err).Msg("openingbook: failed to write snapshot")
	}
}

func openBook(inPath, rootBoard string) (*openingbook.Book, error) {
	if inPath != "" {
		data, err := os.ReadFile(inPath)
		if err != nil {
			return nil, err
		}
		var snap openingbook.Snapshot
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, err
		}
		return openingbook.LoadSnapshot(snap)
	}
	if rootBoard != "" {
		bd, err := board.Parse(rootBoard)
		if err != nil {
			return nil, err
		}
		return openingbook.NewFromBoard(bd), nil
	}
	return openingbook.New(), nil
}

func saveBook(book *openingbook.Book, outPath string) error {
	data, err := yaml.Marshal(book.Snapshot())
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

func reportPeriodically(book *openingbook.Book, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			openingbook.Report(book)
		case <-stop:
			return
		}
	}
}
