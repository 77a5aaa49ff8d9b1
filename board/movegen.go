package board

import "github.com/chessteg/chessteg/position"

// GeneratePseudoLegalMoves generates every move of s that obeys piece movement
// rules, without checking whether s's king is left in check. Castling is the
// exception: its attacked-square conditions are always enforced.
func (b *Board) GeneratePseudoLegalMoves(s Side) []Move {
	return b.generate(s, false)
}

// GenerateCaptures generates pseudo-legal captures and promotions of s.
func (b *Board) GenerateCaptures(s Side) []Move {
	return b.generate(s, true)
}

// LegalMoves generates the legal moves of s, annotated with IsCheck.
func (b *Board) LegalMoves(s Side) []Move {
	mvs := b.GeneratePseudoLegalMoves(s)
	legal := mvs[:0]
	for _, mv := range mvs {
		unApply, ok := b.Apply(mv)
		if ok {
			mv.IsCheck = b.IsKingChecked(s.Opposite())
			legal = append(legal, mv)
		}
		unApply()
	}
	return legal
}

// IsLegal reports whether the pseudo-legal move mv keeps the mover's king
// out of check.
func (b *Board) IsLegal(mv Move) bool {
	unApply, ok := b.Apply(mv)
	unApply()
	return ok
}

func (b *Board) hasLegalMove(s Side) bool {
	for _, mv := range b.GeneratePseudoLegalMoves(s) {
		if b.IsLegal(mv) {
			return true
		}
	}
	return false
}

func (b *Board) generate(s Side, tactical bool) []Move {
	mvs := make([]Move, 0, 64)
	for i := 0; i < int(b.unitCount); i++ {
		u := b.units[i]
		if u.Captured || u.Side != s {
			continue
		}
		switch u.Piece {
		case PiecePawn:
			mvs = b.genPawn(mvs, u, tactical)
		case PieceKnight:
			mvs = b.genLeaper(mvs, u, offsetsKnight, tactical)
		case PieceBishop:
			mvs = b.genSlider(mvs, u, offsetsBishop, tactical)
		case PieceRook:
			mvs = b.genSlider(mvs, u, offsetsRook, tactical)
		case PieceQueen:
			mvs = b.genSlider(mvs, u, offsetsKing, tactical)
		case PieceKing:
			mvs = b.genLeaper(mvs, u, offsetsKing, tactical)
			if !tactical {
				mvs = b.genCastles(mvs, u)
			}
		}
	}
	return mvs
}

func (b *Board) newMove(u Unit, to position.Pos) Move {
	mv := Move{
		From:   u.Pos,
		To:     to,
		Piece:  u.Piece,
		IsTurn: u.Side,
		Kind:   MoveKindQuiet,
	}
	if c := b.cells[to]; !c.IsEmpty() {
		mv.Kind = MoveKindCapture
		mv.Captured = Captured{Piece: c.Piece(), Side: c.Side(), Pos: to}
	}
	return mv
}

func (b *Board) genSlider(mvs []Move, u Unit, dirs []position.Pos, tactical bool) []Move {
	for _, d := range dirs {
		for to := u.Pos + d; ; to += d {
			c := b.cells[to]
			if c.IsOffBoard() {
				break
			}
			if c.IsEmpty() {
				if !tactical {
					mvs = append(mvs, b.newMove(u, to))
				}
				continue
			}
			if c.Side() != u.Side {
				mvs = append(mvs, b.newMove(u, to))
			}
			break
		}
	}
	return mvs
}

func (b *Board) genLeaper(mvs []Move, u Unit, offsets []position.Pos, tactical bool) []Move {
	for _, d := range offsets {
		to := u.Pos + d
		c := b.cells[to]
		if c.IsOffBoard() || (!c.IsEmpty() && c.Side() == u.Side) {
			continue
		}
		if tactical && c.IsEmpty() {
			continue
		}
		mvs = append(mvs, b.newMove(u, to))
	}
	return mvs
}

func (b *Board) genPawn(mvs []Move, u Unit, tactical bool) []Move {
	fwd := pawnForward(u.Side)
	promoteRank := pawnPromoteRank[u.Side]

	// pushes
	if one := u.Pos + fwd; b.cells[one].IsEmpty() {
		if one.Y() == promoteRank {
			mvs = appendPromotions(mvs, b.newMove(u, one))
		} else if !tactical {
			mvs = append(mvs, b.newMove(u, one))
			if two := one + fwd; u.Pos.Y() == pawnStartRank[u.Side] && b.cells[two].IsEmpty() {
				mv := b.newMove(u, two)
				mv.Kind = MoveKindDoublePush
				mvs = append(mvs, mv)
			}
		}
	}

	// captures
	for _, d := range [2]position.Pos{fwd - 1, fwd + 1} {
		to := u.Pos + d
		c := b.cells[to]
		switch {
		case c.IsOffBoard():
		case !c.IsEmpty():
			if c.Side() == u.Side {
				continue
			}
			mv := b.newMove(u, to)
			if to.Y() == promoteRank {
				mvs = appendPromotions(mvs, mv)
			} else {
				mvs = append(mvs, mv)
			}
		case to == b.enPassant && u.Side == b.turn:
			victim := to - fwd
			if b.cells[victim] != NewCell(PiecePawn, u.Side.Opposite()) {
				continue
			}
			mv := b.newMove(u, to)
			mv.Kind = MoveKindEnPassant
			mv.Captured = Captured{Piece: PiecePawn, Side: u.Side.Opposite(), Pos: victim}
			mvs = append(mvs, mv)
		}
	}
	return mvs
}

func appendPromotions(mvs []Move, mv Move) []Move {
	mv.Kind = MoveKindPromotion
	for _, p := range PawnPromoteCandidates {
		mv.IsPromote = p
		mvs = append(mvs, mv)
	}
	return mvs
}

func (b *Board) genCastles(mvs []Move, u Unit) []Move {
	if !b.castleRights.IsSideAllowed(u.Side) {
		return mvs
	}
	opp := u.Side.Opposite()
	for _, d := range castleDirectionsBySide[u.Side] {
		if !b.castleRights.IsAllowed(d) {
			continue
		}
		r := castleRoutes[d]
		if u.Pos != r.kingFrom || b.cells[r.rookFrom] != NewCell(PieceRook, u.Side) {
			continue
		}
		if !b.allEmpty(r.empty) {
			continue
		}
		if b.IsSquareAttacked(r.kingFrom, opp) || b.anyAttacked(r.safe, opp) {
			continue
		}
		mvs = append(mvs, Move{
			From:     r.kingFrom,
			To:       r.kingTo,
			Piece:    PieceKing,
			IsTurn:   u.Side,
			Kind:     MoveKindCastle,
			IsCastle: d,
		})
	}
	return mvs
}

func (b *Board) allEmpty(ps []position.Pos) bool {
	for _, pos := range ps {
		if !b.cells[pos].IsEmpty() {
			return false
		}
	}
	return true
}

func (b *Board) anyAttacked(ps []position.Pos, by Side) bool {
	for _, pos := range ps {
		if b.IsSquareAttacked(pos, by) {
			return true
		}
	}
	return false
}
