package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chessteg/chessteg/board"
	"github.com/chessteg/chessteg/engine"
)

// search lets the engine play the side to move of fen against a random mover.
func search(ctx context.Context, logger zerolog.Logger, fen string, plies int, cfg *engine.SearchConfig) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	e := engine.NewEngine(&engine.EngineConfig{
		HashTableSize: *hash,
		Logger:        &logger,
	})
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	fmt.Println(b.Draw())

	playingSide := b.Turn()
	getMove := func(b *board.Board) (board.Move, error) {
		if b.Turn() == playingSide {
			return e.Search(ctx, b, cfg)
		}
		mvs := b.LegalMoves(b.Turn())
		return mvs[r.Intn(len(mvs))], nil
	}

	var history []board.Move
	for i := 0; i < plies && b.State().IsRunning(); i++ {
		mv, err := getMove(b)
		if err != nil {
			return err
		}
		if err := b.ApplyMove(mv); err != nil {
			return err
		}
		history = append(history, mv)

		logger.Info().
			Str("side", mv.IsTurn.String()).
			Str("move", mv.Algebra()).
			Str("fen", b.FEN()).
			Msg("played")
		fmt.Println(b.Draw())
	}

	logger.Info().Str("state", b.State().String()).Str("fen", b.FEN()).Msg("game ended")
	fmt.Println(dumpHistory(history))
	return nil
}

func dumpHistory(mvs []board.Move) string {
	builder := strings.Builder{}
	offset := 0
	if len(mvs) > 0 && mvs[0].IsTurn == board.SideBlack {
		offset = 1
		_, _ = builder.WriteString("1... ")
	}
	for i, mv := range mvs {
		if mv.IsTurn == board.SideWhite {
			_, _ = builder.WriteString(fmt.Sprintf("%d. ", (i+offset)/2+1))
		}
		_, _ = builder.WriteString(mv.String())
		_, _ = builder.WriteRune(' ')
	}
	return strings.TrimSpace(builder.String())
}
