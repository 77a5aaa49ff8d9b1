package engine

import (
	"github.com/chessteg/chessteg/board"
)

const (
	scoreOrderTT      int32 = 1 << 30
	scoreOrderCapture int32 = 1 << 24
	scoreOrderCheck   int32 = 1 << 22
	scoreOrderHistory       = scoreOrderCheck - 1 // cap
)

// scoreMoves ranks mvs for search: the hash move first, then captures and
// promotions by victim minus attacker value, then checks, then quiet moves
// by history score.
func (e *Engine) scoreMoves(mvs []board.Move, ttMove board.Move) []int32 {
	scores := make([]int32, len(mvs))
	for i, mv := range mvs {
		var score int32
		switch {
		case !ttMove.IsNull() && mv.Equals(ttMove):
			score = scoreOrderTT
		case !mv.IsQuiet():
			score = scoreOrderCapture - scorePiece[mv.Piece.Ordinal()]
			if mv.IsCapture() {
				score += scorePiece[mv.Captured.Piece.Ordinal()]
			}
			if mv.IsPromote != board.PieceUnknown {
				score += scorePiece[mv.IsPromote.Ordinal()]
			}
		case mv.IsCheck:
			score = scoreOrderCheck
		default:
			score = min(e.history[sideIndex(mv.IsTurn)][mv.From][mv.To], scoreOrderHistory)
		}
		scores[i] = score
	}
	return scores
}

// sortMoves moves the best scored move of mvs[index:] to index. Called once
// per index it is a lazy selection sort.
func sortMoves(mvs []board.Move, scores []int32, index int) {
	bestIndex, bestScore := index, scores[index]
	for i := index + 1; i < len(mvs); i++ {
		if scores[i] > bestScore {
			bestIndex = i
			bestScore = scores[i]
		}
	}
	mvs[index], mvs[bestIndex] = mvs[bestIndex], mvs[index]
	scores[index], scores[bestIndex] = scores[bestIndex], scores[index]
}

// recordCutoff rewards a quiet move that caused a beta cutoff.
func (e *Engine) recordCutoff(mv board.Move, depth uint8) {
	if !mv.IsQuiet() {
		return
	}
	h := &e.history[sideIndex(mv.IsTurn)][mv.From][mv.To]
	*h = min(*h+int32(depth)*int32(depth), scoreOrderHistory)
}
