package board

// Piece is the kind of a piece. Its numeric value is the board weight, so a
// cell stores Piece*Side.Sign() and 0 means empty.
type Piece int8

const (
	PieceUnknown Piece = 0
	PiecePawn    Piece = 1
	PieceBishop  Piece = 3
	PieceKnight  Piece = 4
	PieceRook    Piece = 5
	PieceQueen   Piece = 9
	PieceKing    Piece = 99
)

var (
	// PawnPromoteCandidates represents the candidates for pawn promotion.
	PawnPromoteCandidates = []Piece{PieceQueen, PieceRook, PieceBishop, PieceKnight}

	// Pieces lists every kind in ordinal order.
	Pieces = []Piece{PiecePawn, PieceKnight, PieceBishop, PieceRook, PieceQueen, PieceKing}
)

// Ordinal maps a kind onto 0..5 for table lookups, -1 if unknown.
func (p Piece) Ordinal() int {
	switch p {
	case PiecePawn:
		return 0
	case PieceKnight:
		return 1
	case PieceBishop:
		return 2
	case PieceRook:
		return 3
	case PieceQueen:
		return 4
	case PieceKing:
		return 5
	default:
		return -1
	}
}

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceBishop:
		return "Bishop"
	case PieceKnight:
		return "Knight"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

func (p Piece) SymbolAlgebra(s Side) string {
	if p == PiecePawn {
		return ""
	}
	return p.SymbolFEN(s)
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceBishop:
		sym = 'B'
	case PieceKnight:
		sym = 'N'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func pieceFromSymbol(r rune) (Piece, Side) {
	s := SideWhite
	if r >= 'a' && r <= 'z' {
		s = SideBlack
		r &^= 0x20
	}
	switch r {
	case 'P':
		return PiecePawn, s
	case 'B':
		return PieceBishop, s
	case 'N':
		return PieceKnight, s
	case 'R':
		return PieceRook, s
	case 'Q':
		return PieceQueen, s
	case 'K':
		return PieceKing, s
	default:
		return PieceUnknown, SideUnknown
	}
}

func (p Piece) SymbolUnicode(s Side, invert bool) string {
	if invert {
		s = s.Opposite()
	}
	switch s {
	case SideWhite:
		switch p {
		case PiecePawn:
			return "♙"
		case PieceBishop:
			return "♗"
		case PieceKnight:
			return "♘"
		case PieceRook:
			return "♖"
		case PieceQueen:
			return "♕"
		case PieceKing:
			return "♔"
		default:
			return ""
		}
	case SideBlack:
		switch p {
		case PiecePawn:
			return "♟"
		case PieceBishop:
			return "♝"
		case PieceKnight:
			return "♞"
		case PieceRook:
			return "♜"
		case PieceQueen:
			return "♛"
		case PieceKing:
			return "♚"
		default:
			return ""
		}
	default:
		return ""
	}
}

// Cell is the content of one mailbox square: Piece*Side.Sign(), 0 when empty
// and CellOffBoard on the padding.
type Cell int8

const (
	CellEmpty    Cell = 0
	CellOffBoard Cell = 100
)

func NewCell(p Piece, s Side) Cell {
	return Cell(p) * Cell(s.Sign())
}

func (c Cell) IsEmpty() bool {
	return c == CellEmpty
}

func (c Cell) IsOffBoard() bool {
	return c == CellOffBoard
}

func (c Cell) Piece() Piece {
	if c == CellOffBoard {
		return PieceUnknown
	}
	if c < 0 {
		return Piece(-c)
	}
	return Piece(c)
}

func (c Cell) Side() Side {
	switch {
	case c == CellOffBoard || c == CellEmpty:
		return SideUnknown
	case c > 0:
		return SideWhite
	default:
		return SideBlack
	}
}
