package board

import "github.com/chessteg/chessteg/position"

// IsSquareAttacked reports whether any piece of by attacks pos. It looks
// outward from pos along every line a piece of by could arrive on, which
// agrees with walking the generator over every enemy piece.
func (b *Board) IsSquareAttacked(pos position.Pos, by Side) bool {
	fwd := pawnForward(by)
	pawn := NewCell(PiecePawn, by)
	if b.cells[pos-fwd-1] == pawn || b.cells[pos-fwd+1] == pawn {
		return true
	}

	knight := NewCell(PieceKnight, by)
	for _, d := range offsetsKnight {
		if b.cells[pos+d] == knight {
			return true
		}
	}

	king := NewCell(PieceKing, by)
	for _, d := range offsetsKing {
		if b.cells[pos+d] == king {
			return true
		}
	}

	queen := NewCell(PieceQueen, by)
	if b.isRayAttacked(pos, offsetsRook, NewCell(PieceRook, by), queen) {
		return true
	}
	return b.isRayAttacked(pos, offsetsBishop, NewCell(PieceBishop, by), queen)
}

func (b *Board) isRayAttacked(pos position.Pos, dirs []position.Pos, slider, queen Cell) bool {
	for _, d := range dirs {
		for to := pos + d; ; to += d {
			c := b.cells[to]
			if c.IsEmpty() {
				continue
			}
			if c == slider || c == queen {
				return true
			}
			break
		}
	}
	return false
}

// IsKingChecked reports whether the king of s is attacked. A side without a
// king is never in check.
func (b *Board) IsKingChecked(s Side) bool {
	pos := b.KingPos(s)
	if pos == position.NoPos {
		return false
	}
	return b.IsSquareAttacked(pos, s.Opposite())
}
