package board

import (
	"fmt"
	"strings"

	"github.com/chessteg/chessteg/position"
)

// Apply plays mv without checking it against the legal move list. The
// returned function restores the previous position and must always be
// called; ok is false when mv leaves the mover's king in check.
func (b *Board) Apply(mv Move) (func(), bool) {
	prev := b.snapshot
	b.apply(mv)
	return func() {
		b.snapshot = prev
	}, !b.IsKingChecked(mv.IsTurn)
}

func (b *Board) apply(mv Move) {
	s := mv.IsTurn
	idx := b.index[mv.From]
	b.cells[mv.From] = CellEmpty
	b.index[mv.From] = noUnit

	if mv.IsCapture() {
		if ci := b.index[mv.Captured.Pos]; ci != noUnit {
			b.units[ci].Captured = true
		}
		b.cells[mv.Captured.Pos] = CellEmpty
		b.index[mv.Captured.Pos] = noUnit
	}

	p := mv.Piece
	if mv.IsPromote != PieceUnknown {
		p = mv.IsPromote
	}
	b.place(idx, p, s, mv.To)

	if mv.IsCastle != CastleDirectionUnknown {
		r := castleRoutes[mv.IsCastle]
		ri := b.index[r.rookFrom]
		b.cells[r.rookFrom] = CellEmpty
		b.index[r.rookFrom] = noUnit
		b.place(ri, PieceRook, s, r.rookTo)
	}

	b.castleRights &^= revokeCastleRights[mv.From] | revokeCastleRights[mv.To]

	if mv.Kind == MoveKindDoublePush {
		b.enPassant = mv.From + pawnForward(s)
	} else {
		b.enPassant = position.NoPos
	}

	if mv.Piece == PiecePawn || mv.IsCapture() {
		b.halfMoveClock = 0
	} else {
		b.halfMoveClock++
	}
	if s == SideBlack {
		b.fullMoveClock++
	}
	b.turn = s.Opposite()
	b.state = StateUnknown
}

func (b *Board) place(idx int8, p Piece, s Side, pos position.Pos) {
	b.units[idx].Piece = p
	b.units[idx].Pos = pos
	b.cells[pos] = NewCell(p, s)
	b.index[pos] = idx
}

// ApplyMove plays mv if it is legal for the side to move and records it in
// the history. Illegal moves leave the board untouched.
func (b *Board) ApplyMove(mv Move) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for _, legal := range b.LegalMoves(b.turn) {
		if legal.Equals(mv) {
			b.push(legal)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidMove, mv.UCI())
}

// ApplyUCI parses a move in coordinate notation (e.g. e2e4, e7e8q) and applies it.
func (b *Board) ApplyUCI(s string) (Move, error) {
	if err := b.Validate(); err != nil {
		return Move{}, err
	}
	mv, err := b.ParseUCI(s)
	if err != nil {
		return Move{}, err
	}
	if err := b.ApplyMove(mv); err != nil {
		return Move{}, err
	}
	return b.history.last(), nil
}

// ParseUCI resolves coordinate notation against the legal moves of the side to move.
func (b *Board) ParseUCI(s string) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: malformed %q", ErrInvalidMove, s)
	}
	from, err := position.NewPosFromNotation(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	promote := PieceUnknown
	if len(s) == 5 {
		p, _ := pieceFromSymbol(rune(s[4]))
		if p == PieceUnknown || p == PiecePawn || p == PieceKing {
			return Move{}, fmt.Errorf("%w: bad promotion %q", ErrInvalidMove, s[4:])
		}
		promote = p
	}
	want := Move{From: from, To: to, IsPromote: promote}
	for _, mv := range b.LegalMoves(b.turn) {
		if mv.Equals(want) {
			return mv, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %s", ErrInvalidMove, s)
}

func (b *Board) push(mv Move) {
	if b.history == nil {
		b.history = &History{}
	}
	before := b.snapshot
	b.apply(mv)
	b.state = b.computeState()
	b.history.push(historyEntry{
		before: before,
		move:   mv,
	})
}

// Undo restores the position before the last applied move.
func (b *Board) Undo() bool {
	if b.history == nil {
		return false
	}
	e, ok := b.history.undo()
	if !ok {
		return false
	}
	b.snapshot = e.before
	return true
}

// Redo re-applies the last undone move.
func (b *Board) Redo() bool {
	if b.history == nil {
		return false
	}
	e, ok := b.history.redo()
	if !ok {
		return false
	}
	b.apply(e.move)
	b.state = b.computeState()
	return true
}

// History returns the moves leading to the current position, oldest first.
// Only the most recent HistoryLimit moves are retained.
func (b *Board) History() []Move {
	if b.history == nil {
		return nil
	}
	return b.history.moves()
}
