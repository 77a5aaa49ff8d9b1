package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chessteg/chessteg/board"
	"github.com/chessteg/chessteg/position"
)

const (
	ScoreInfinite  int32 = 30_000_000
	ScoreCheckmate int32 = 20_000_000

	// MaxPly bounds the search path, quiescence included.
	MaxPly = 64

	DefaultMaxDepth uint8 = 4

	// any score at least this large is a forced mate
	scoreMateBound = ScoreCheckmate - MaxPly
)

var ErrNoLegalMoves = errors.New("no legal moves")

type EngineConfig struct {
	HashTableSize uint64
	Logger        *zerolog.Logger
}

type SearchConfig struct {
	MaxDepth        uint8
	Timeout         time.Duration // zero means no deadline
	UseQuiescence   bool
	UseMoveOrdering bool
}

func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		MaxDepth:        DefaultMaxDepth,
		Timeout:         DefaultTimeout,
		UseQuiescence:   true,
		UseMoveOrdering: true,
	}
}

// Engine searches for the best move of a position. It keeps its
// transposition table between searches and is not safe for concurrent use.
type Engine struct {
	tt      *TranspositionTable
	history [2][position.TotalCells][position.TotalCells]int32
	path    [MaxPly + 1]uint64
	clock   *Clock
	cfg     SearchConfig

	nodes   uint64
	aborted bool
	logger  zerolog.Logger
	printer *message.Printer
}

func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Engine{
		tt:      NewTranspositionTable(cfg.HashTableSize),
		clock:   NewClock(),
		logger:  logger.With().Str("component", "engine").Logger(),
		printer: message.NewPrinter(language.English),
	}
}

// Search returns the best move found for the side to move in b. b is never
// mutated. A search cut short by the timeout or by ctx still returns the best
// move of the last completed depth, or the first legal move if none completed.
func (e *Engine) Search(ctx context.Context, b *board.Board, cfg *SearchConfig) (board.Move, error) {
	if cfg == nil {
		cfg = DefaultSearchConfig()
	}
	if err := b.Validate(); err != nil {
		return board.Move{}, err
	}
	root := b.Clone()
	mvs := root.LegalMoves(root.Turn())
	if len(mvs) == 0 {
		return board.Move{}, fmt.Errorf("%w: %s", ErrNoLegalMoves, root.State())
	}

	e.cfg = *cfg
	e.cfg.MaxDepth = min(max(e.cfg.MaxDepth, 1), MaxPly)
	e.nodes = 0
	e.aborted = false
	e.history = [2][position.TotalCells][position.TotalCells]int32{}
	e.tt.NewSearch()

	bestMove := mvs[0]
	if len(mvs) == 1 {
		e.logger.Debug().Str("move", bestMove.UCI()).Msg("single legal move")
		return bestMove, nil
	}

	e.clock.Start(ctx, e.cfg.Timeout)
	defer e.clock.Stop()

	var bestScore int32
	var depth uint8
	for d := uint8(1); d <= e.cfg.MaxDepth; d++ {
		mv, score, ok := e.searchRoot(root, mvs, d)
		if !ok {
			e.logger.Debug().Uint8("depth", d).Msg("search interrupted, depth discarded")
			break
		}
		bestMove, bestScore, depth = mv, score, d

		if e.logger.GetLevel() <= zerolog.DebugLevel {
			e.logIteration(root, d, mv, score)
		}
		if abs(score) >= scoreMateBound {
			break
		}
	}

	hits, misses, writes := e.tt.Stats()
	e.logger.Info().
		Str("move", bestMove.UCI()).
		Uint8("depth", depth).
		Str("score", formatScore(bestScore)).
		Uint64("nodes", e.nodes).
		Int("tt_hits", hits).
		Int("tt_misses", misses).
		Int("tt_writes", writes).
		Dur("elapsed", e.clock.Elapsed()).
		Msg("search done")
	return bestMove, nil
}

func (e *Engine) logIteration(root *board.Board, depth uint8, mv board.Move, score int32) {
	elapsed := e.clock.Elapsed()
	hits, misses, writes := e.tt.Stats()
	e.logger.Debug().
		Uint8("depth", depth).
		Str("move", mv.UCI()).
		Str("score", formatScore(score)).
		Str("nodes", e.printer.Sprintf("%d", e.nodes)).
		Str("nps", e.printer.Sprintf("%.0f", float64(e.nodes)/(elapsed+1).Seconds())).
		Dur("elapsed", elapsed).
		Int("tt_hits", hits).
		Int("tt_misses", misses).
		Int("tt_writes", writes).
		Str("pv", formatPV(e.principalVariation(root, depth))).
		Msg("iteration")
}

// searchRoot runs one full-width iteration. The hash table is never used for
// cutoffs here so the root always yields a move; ok is false if the clock ran
// out before every root move was searched.
func (e *Engine) searchRoot(b *board.Board, mvs []board.Move, depth uint8) (board.Move, int32, bool) {
	hash := b.Hash()
	e.path[0] = hash

	var scores []int32
	if e.cfg.UseMoveOrdering {
		_, ttMove, _, _, _ := e.tt.Get(hash, 0)
		scores = e.scoreMoves(mvs, ttMove)
	}

	alpha, beta := -ScoreInfinite, ScoreInfinite
	var bestMove board.Move
	bestScore := -ScoreInfinite
	for i := range mvs {
		if scores != nil {
			sortMoves(mvs, scores, i)
		}
		mv := mvs[i]

		unApply, _ := b.Apply(mv)
		score := -e.negamax(b, depth-1, 1, -beta, -alpha)
		unApply()
		if e.aborted {
			return board.Move{}, 0, false
		}

		if score > bestScore {
			bestMove, bestScore = mv, score
		}
		alpha = max(alpha, score)
	}

	e.tt.Set(hash, 0, EntryTypeExact, bestMove, bestScore, depth)
	return bestMove, bestScore, true
}

// negamax scores b for the side to move. Scores are always maximised.
func (e *Engine) negamax(b *board.Board, depth, ply uint8, alpha, beta int32) int32 {
	e.nodes++
	if e.checkClock() {
		return 0
	}

	hash := b.Hash()
	e.path[ply] = hash
	if e.isRepeated(ply) {
		return 0
	}
	if b.HalfMoveClock() >= 100 {
		// mate still wins over the fifty-move rule
		if b.State().IsCheckmate() {
			return -ScoreCheckmate + int32(ply)
		}
		return 0
	}
	if ply >= MaxPly {
		return evaluateRelative(b)
	}
	if depth == 0 {
		if e.cfg.UseQuiescence {
			return e.quiescence(b, ply, alpha, beta)
		}
		return evaluateRelative(b)
	}

	alphaOrig := alpha
	ttType, ttMove, ttScore, ttDepth, ok := e.tt.Get(hash, ply)
	if ok && ttDepth >= depth {
		switch ttType {
		case EntryTypeExact:
			return ttScore
		case EntryTypeLowerBound:
			alpha = max(alpha, ttScore)
		case EntryTypeUpperBound:
			beta = min(beta, ttScore)
		}
		if alpha >= beta {
			return ttScore
		}
	}

	turn := b.Turn()
	mvs := b.LegalMoves(turn)
	if len(mvs) == 0 {
		if b.IsKingChecked(turn) {
			return -ScoreCheckmate + int32(ply)
		}
		return 0
	}

	var scores []int32
	if e.cfg.UseMoveOrdering {
		scores = e.scoreMoves(mvs, ttMove)
	}

	var bestMove board.Move
	bestScore := -ScoreInfinite
	for i := range mvs {
		if scores != nil {
			sortMoves(mvs, scores, i)
		}
		mv := mvs[i]

		unApply, _ := b.Apply(mv)
		score := -e.negamax(b, depth-1, ply+1, -beta, -alpha)
		unApply()
		if e.aborted {
			return 0
		}

		if score > bestScore {
			bestMove, bestScore = mv, score
		}
		alpha = max(alpha, score)
		if alpha >= beta {
			e.recordCutoff(mv, depth)
			break
		}
	}

	ttType = EntryTypeExact
	switch {
	case bestScore <= alphaOrig:
		ttType = EntryTypeUpperBound
	case bestScore >= beta:
		ttType = EntryTypeLowerBound
	}
	e.tt.Set(hash, ply, ttType, bestMove, bestScore, depth)
	return bestScore
}

// quiescence extends leaves with captures and promotions until the position
// is quiet. The static score stands in when no capture improves on it.
func (e *Engine) quiescence(b *board.Board, ply uint8, alpha, beta int32) int32 {
	e.nodes++
	if e.checkClock() {
		return 0
	}

	standPat := evaluateRelative(b)
	if ply >= MaxPly || standPat >= beta {
		return standPat
	}
	alpha = max(alpha, standPat)

	mvs := b.GenerateCaptures(b.Turn())
	var scores []int32
	if e.cfg.UseMoveOrdering {
		scores = e.scoreMoves(mvs, board.Move{})
	}

	bestScore := standPat
	for i := range mvs {
		if scores != nil {
			sortMoves(mvs, scores, i)
		}
		mv := mvs[i]

		unApply, ok := b.Apply(mv)
		if !ok {
			unApply()
			continue
		}
		score := -e.quiescence(b, ply+1, -beta, -alpha)
		unApply()
		if e.aborted {
			return 0
		}

		bestScore = max(bestScore, score)
		if score >= beta {
			break
		}
		alpha = max(alpha, score)
	}
	return bestScore
}

func (e *Engine) checkClock() bool {
	if !e.aborted && e.clock.Done() {
		e.aborted = true
	}
	return e.aborted
}

// isRepeated reports whether the position at ply already occurred on the
// current search path with the same side to move.
func (e *Engine) isRepeated(ply uint8) bool {
	for p := int(ply) - 2; p >= 0; p -= 2 {
		if e.path[p] == e.path[ply] {
			return true
		}
	}
	return false
}

// principalVariation follows hash moves from the root of b.
func (e *Engine) principalVariation(b *board.Board, depth uint8) []board.Move {
	bb := b.Clone()
	var pv []board.Move
	seen := map[uint64]bool{}
	for len(pv) < int(depth) {
		hash := bb.Hash()
		if seen[hash] {
			break
		}
		seen[hash] = true
		ent, ok := e.tt.probe(hash)
		if !ok || ent.mv.IsNull() {
			break
		}
		mv, ok := findMove(bb.LegalMoves(bb.Turn()), ent.mv)
		if !ok {
			break
		}
		pv = append(pv, mv)
		bb.Apply(mv)
	}
	return pv
}

func findMove(mvs []board.Move, want board.Move) (board.Move, bool) {
	for _, mv := range mvs {
		if mv.Equals(want) {
			return mv, true
		}
	}
	return board.Move{}, false
}

func formatPV(mvs []board.Move) string {
	parts := make([]string, len(mvs))
	for i, mv := range mvs {
		parts[i] = mv.UCI()
	}
	return strings.Join(parts, " ")
}

// formatScore renders centipawns as pawns, or mate distance in moves.
func formatScore(s int32) string {
	switch {
	case s >= scoreMateBound:
		return fmt.Sprintf("#+%d", (ScoreCheckmate-s+1)/2)
	case s <= -scoreMateBound:
		return fmt.Sprintf("#-%d", (ScoreCheckmate+s)/2)
	case s > 0:
		return fmt.Sprintf("+%.2f", float64(s)/100)
	case s < 0:
		return fmt.Sprintf("%.2f", float64(s)/100)
	default:
		return "0"
	}
}

func max[T constraints.Ordered](x1, x2 T) T {
	if x1 > x2 {
		return x1
	}
	return x2
}

func min[T constraints.Ordered](x1, x2 T) T {
	if x1 < x2 {
		return x1
	}
	return x2
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return x * -1
	}
	return x
}
