package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chessteg/chessteg/board"
)

// Stats tallies the leaf moves of a perft run.
type Stats struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (s *Stats) tally(mv board.Move) {
	s.Nodes++
	if mv.IsCapture() {
		s.Captures++
	}
	if mv.IsEnPassant() {
		s.EnPassants++
	}
	if mv.IsCastle != board.CastleDirectionUnknown {
		s.Castles++
	}
	if mv.IsPromote != board.PieceUnknown {
		s.Promotions++
	}
	if mv.IsCheck {
		s.Checks++
	}
}

func (s *Stats) merge(o *Stats) {
	atomic.AddUint64(&s.Nodes, o.Nodes)
	atomic.AddUint64(&s.Captures, o.Captures)
	atomic.AddUint64(&s.EnPassants, o.EnPassants)
	atomic.AddUint64(&s.Castles, o.Castles)
	atomic.AddUint64(&s.Promotions, o.Promotions)
	atomic.AddUint64(&s.Checks, o.Checks)
}

type Result struct {
	Stats
	Depth   int
	Elapsed time.Duration
}

func (r *Result) String() string {
	return message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)",
			r.Depth, r.Nodes, int(float64(r.Nodes)/(r.Elapsed+1).Seconds()),
			r.Captures, r.EnPassants, r.Castles, r.Promotions, r.Checks, r.Elapsed.Seconds())
}

// Perft counts the legal move sequences of length depth from fen. With
// verbose set, the count below every root move is sent to out, which may be
// nil otherwise.
func Perft(depth int, fen string, parallel, verbose bool, out chan<- string) (*Result, error) {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return nil, err
	}

	var run perftFunc = runPerft
	if parallel {
		run = runPerftParallel
	}

	res := &Result{Depth: depth}
	start := time.Now()
	run(b, depth, verbose, out, &res.Stats)
	res.Elapsed = time.Since(start)
	return res, nil
}

type perftFunc func(b *board.Board, d int, verbose bool, out chan<- string, stats *Stats) uint64

func runPerft(b *board.Board, d int, verbose bool, out chan<- string, stats *Stats) uint64 {
	if d == 0 {
		stats.Nodes++
		return 1
	}
	var sum uint64
	for _, mv := range b.LegalMoves(b.Turn()) {
		child := perft(b, mv, d-1, stats)
		if verbose && out != nil {
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
		}
		sum += child
	}
	return sum
}

// runPerftParallel searches every root move on its own clone.
func runPerftParallel(b *board.Board, d int, verbose bool, out chan<- string, stats *Stats) uint64 {
	if d == 0 {
		stats.Nodes++
		return 1
	}
	var sum uint64
	var wg sync.WaitGroup
	for _, mv := range b.LegalMoves(b.Turn()) {
		mv := mv
		bb := b.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local Stats
			child := perft(bb, mv, d-1, &local)
			stats.merge(&local)
			if verbose && out != nil {
				out <- fmt.Sprintf("%s: %d", mv.UCI(), child)
			}
			atomic.AddUint64(&sum, child)
		}()
	}
	wg.Wait()
	return sum
}

// perft plays mv and counts the sequences of length d that follow it. A
// zero d tallies mv itself.
func perft(b *board.Board, mv board.Move, d int, stats *Stats) uint64 {
	if d == 0 {
		stats.tally(mv)
		return 1
	}
	unApply, _ := b.Apply(mv)
	defer unApply()

	mvs := b.LegalMoves(b.Turn())
	if d == 1 {
		for _, leaf := range mvs {
			stats.tally(leaf)
		}
		return uint64(len(mvs))
	}
	var sum uint64
	for _, next := range mvs {
		sum += perft(b, next, d-1, stats)
	}
	return sum
}
