package main

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/chessteg/chessteg/board"
)

// step plays random legal moves and reports the average cost of each phase.
func step(logger zerolog.Logger, fen string, plies int) error {
	var (
		timesGenerateMoves []time.Duration
		timesApply         []time.Duration
		timesState         []time.Duration
	)
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	r := rand.New(rand.NewSource(1))

	for i := 0; i < plies; i++ {
		t1 := time.Now()
		mvs := b.LegalMoves(b.Turn())
		timesGenerateMoves = append(timesGenerateMoves, time.Since(t1))
		if len(mvs) == 0 {
			break
		}
		mv := mvs[r.Intn(len(mvs))]

		t1 = time.Now()
		if err := b.ApplyMove(mv); err != nil {
			return err
		}
		timesApply = append(timesApply, time.Since(t1))

		t1 = time.Now()
		st := b.State()
		timesState = append(timesState, time.Since(t1))

		logger.Debug().
			Int("ply", i+1).
			Str("move", mv.Algebra()).
			Str("fen", b.FEN()).
			Msg("step")
		if !st.IsRunning() {
			break
		}
	}

	logger.Info().
		Str("state", b.State().String()).
		Str("fen", b.FEN()).
		Dur("genmv", avg(timesGenerateMoves)).
		Dur("apply", avg(timesApply)).
		Dur("state", avg(timesState)).
		Msg("step done")
	return nil
}

func avg(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	var s time.Duration
	for _, d := range ds {
		s += d
	}
	return s / time.Duration(len(ds))
}
