package board

import "github.com/chessteg/chessteg/position"

// MoveKind discriminates the move variants. A promotion may also capture.
type MoveKind uint8

const (
	MoveKindQuiet MoveKind = iota
	MoveKindDoublePush
	MoveKindCapture
	MoveKindEnPassant
	MoveKindCastle
	MoveKindPromotion
)

func (k MoveKind) String() string {
	switch k {
	case MoveKindQuiet:
		return "quiet"
	case MoveKindDoublePush:
		return "double-push"
	case MoveKindCapture:
		return "capture"
	case MoveKindEnPassant:
		return "en-passant"
	case MoveKindCastle:
		return "castle"
	case MoveKindPromotion:
		return "promotion"
	default:
		return ""
	}
}

// Captured records the piece removed by a move. Pos differs from the move's
// destination only for en passant.
type Captured struct {
	Piece Piece
	Side  Side
	Pos   position.Pos
}

// Move is a plain value; it stays valid across any amount of apply/revert.
type Move struct {
	From, To position.Pos
	Piece    Piece
	IsTurn   Side
	Kind     MoveKind

	Captured  Captured
	IsPromote Piece
	IsCastle  CastleDirection

	// IsCheck is annotated by LegalMoves.
	IsCheck bool
}

func (m Move) IsNull() bool {
	return m.Piece == PieceUnknown
}

func (m Move) IsCapture() bool {
	return m.Captured.Piece != PieceUnknown
}

func (m Move) IsEnPassant() bool {
	return m.Kind == MoveKindEnPassant
}

func (m Move) IsDoublePush() bool {
	return m.Kind == MoveKindDoublePush
}

// IsQuiet reports moves that neither capture nor promote.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && m.IsPromote == PieceUnknown
}

// Equals compares the identifying coordinates of two moves.
func (m Move) Equals(n Move) bool {
	return m.From == n.From && m.To == n.To && m.IsPromote == n.IsPromote
}

func (m Move) String() string {
	return m.Algebra()
}

func (m Move) Algebra() string {
	if m.IsCastle != CastleDirectionUnknown {
		nt := "0-0-0"
		if m.IsCastle.IsRight() {
			nt = "0-0"
		}
		if m.IsCheck {
			nt += "+"
		}
		return nt
	}
	nt := m.Piece.SymbolAlgebra(SideWhite) // SideWhite because it returns capital symbols
	if m.IsCapture() {
		if m.Piece == PiecePawn {
			nt += m.From.X().NotationComponentX()
		} else {
			nt += m.From.Notation()
		}
		nt += "x"
	}
	nt += m.To.Notation()
	if m.IsPromote != PieceUnknown {
		nt += m.IsPromote.SymbolAlgebra(SideWhite)
	}
	if m.IsCheck {
		nt += "+"
	}
	if m.IsEnPassant() {
		nt += " e.p."
	}
	return nt
}

func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	return m.From.Notation() + m.To.Notation() + m.IsPromote.SymbolAlgebra(SideBlack)
}
