package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/chessteg/chessteg/board"
	"github.com/chessteg/chessteg/engine"
	"github.com/chessteg/chessteg/shell"
)

const (
	exitOK = iota
	exitErr
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")
	debug   = flag.Bool("debug", false, "enable debug logging")
	fen     = flag.String("fen", board.DefaultStartingPositionFEN, "starting position")
	hash    = flag.Uint64("hash", engine.DefaultHashTableSize, "transposition table entries")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	perftDepth    = flag.Int("perft", 0, "run perft to the given depth")
	perftParallel = flag.Bool("perft.parallel", true, "search root moves in parallel in perft mode")

	stepRun = flag.Int("step", 0, "play the given number of random plies, timing each phase")

	searchRun          = flag.Int("search", 0, "play the given number of plies against a random mover")
	searchMaxDepth     = flag.Uint("search.maxdepth", uint(engine.DefaultMaxDepth), "search max depth")
	searchTimeout      = flag.Duration("search.timeout", engine.DefaultTimeout, "search timeout per move")
	searchNoQuiescence = flag.Bool("search.noquiescence", false, "disable quiescence search")
	searchNoOrdering   = flag.Bool("search.noordering", false, "disable move ordering")
)

func main() {
	flag.Parse()

	logger := newLogger(*debug)
	if *profile {
		runProfiler(logger)
	}

	if err := realMain(context.Background(), logger); err != nil {
		logger.Error().Err(err).Msg("exiting")
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func runProfiler(logger zerolog.Logger) {
	go func() {
		addr := "localhost:6060"
		logger.Info().Str("url", "http://"+addr+"/debug/pprof").Msg("starting pprof endpoint")
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(ctx context.Context, logger zerolog.Logger) error {
	switch {
	case *movegenRun:
		return movegen(*fen, *movegenDraw)
	case *perftDepth > 0:
		return perft(logger, *perftDepth, *fen, *perftParallel)
	case *stepRun > 0:
		return step(logger, *fen, *stepRun)
	case *searchRun > 0:
		cfg, err := newSearchConfig(*searchMaxDepth, *searchTimeout, !*searchNoQuiescence, !*searchNoOrdering)
		if err != nil {
			return err
		}
		return search(ctx, logger, *fen, *searchRun, cfg)
	}
	return shell.NewShell(os.Stdout, logger).Run(ctx, os.Stdin)
}

func newSearchConfig(maxDepth uint, timeout time.Duration, quiescence, ordering bool) (*engine.SearchConfig, error) {
	if maxDepth == 0 || maxDepth > engine.MaxPly {
		return nil, fmt.Errorf("invalid -search.maxdepth %d: must be between 1 and %d", maxDepth, engine.MaxPly)
	}
	return &engine.SearchConfig{
		MaxDepth:        uint8(maxDepth),
		Timeout:         timeout,
		UseQuiescence:   quiescence,
		UseMoveOrdering: ordering,
	}, nil
}
