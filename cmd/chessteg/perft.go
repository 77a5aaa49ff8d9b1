package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chessteg/chessteg/bench"
)

func perft(logger zerolog.Logger, depth int, fen string, parallel bool) error {
	logger.Info().Int("depth", depth).Bool("parallel", parallel).Str("fen", fen).Msg("perft")

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for line := range out {
			fmt.Println(line)
		}
	}()
	res, err := bench.Perft(depth, fen, parallel, true, out)
	close(out)
	<-done
	if err != nil {
		return err
	}

	logger.Info().Msg(res.String())
	return nil
}
