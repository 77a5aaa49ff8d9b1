package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/chessteg/chessteg/position"
)

func UnmarshalFEN(fen string, b *Board) error {
	if b == nil {
		return fmt.Errorf("invalid board")
	}
	segments := strings.Split(fen, " ")
	if len(segments) != 6 {
		return fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}
	b.reset()

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(position.MaxComponentScalar) {
		return fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for i, row := range rows {
		y := position.MaxComponentScalar - 1 - position.Pos(i)
		x := position.Pos(0)
		for _, cell := range row {
			if x >= position.MaxComponentScalar {
				return fmt.Errorf("%w: row %d overflows", ErrInvalidFEN, y+1)
			}
			if unicode.IsDigit(cell) {
				skip := position.Pos(cell - '0')
				if skip == 0 || x+skip > position.MaxComponentScalar {
					return fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				x += skip
				continue
			}
			p, s := pieceFromSymbol(cell)
			if p == PieceUnknown {
				return fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			if p == PiecePawn && (y == position.Rank1 || y == position.Rank8) {
				return fmt.Errorf("%w: pawn on back rank", ErrInvalidFEN)
			}
			if err := b.addUnit(p, s, position.NewPos(x, y)); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
			}
			x++
		}
		if x != position.MaxComponentScalar {
			return fmt.Errorf("%w: missing cells", ErrInvalidFEN)
		}
	}

	switch segments[1] {
	case "w":
		b.turn = SideWhite
	case "b":
		b.turn = SideBlack
	default:
		return fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if len(segments[2]) > 4 || segments[2] == "" {
		return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
crLoop:
	for i, e := range segments[2] {
		switch e {
		case 'K':
			b.castleRights.Set(CastleDirectionWhiteRight, true)
		case 'k':
			b.castleRights.Set(CastleDirectionBlackRight, true)
		case 'Q':
			b.castleRights.Set(CastleDirectionWhiteLeft, true)
		case 'q':
			b.castleRights.Set(CastleDirectionBlackLeft, true)
		default:
			if i == 0 && e == '-' {
				break crLoop
			}
			return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
	}

	b.enPassant = position.NoPos
	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		if pos.Y() != position.Rank3 && pos.Y() != position.Rank6 {
			return fmt.Errorf("%w: invalid enpassant position", ErrInvalidFEN)
		}
		b.enPassant = pos
	}

	halfMoveClock, err := strconv.ParseUint(segments[4], 10, 16)
	if err != nil {
		return fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	b.halfMoveClock = uint16(halfMoveClock)

	fullMoveClock, err := strconv.ParseUint(segments[5], 10, 16)
	if err != nil {
		return fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}
	b.fullMoveClock = uint16(fullMoveClock)

	return nil
}

func MarshalFEN(b *Board) (string, error) {
	if b == nil {
		return "", fmt.Errorf("invalid board")
	}
	builder := strings.Builder{}
	for y := position.MaxComponentScalar - 1; y >= 0; y-- {
		var skip int
		for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
			c := b.cells[position.NewPos(x, y)]
			if c.IsEmpty() {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			_, _ = builder.WriteString(c.Piece().SymbolFEN(c.Side()))
		}
		if skip != 0 {
			_, _ = builder.WriteString(strconv.Itoa(skip))
		}
		if y > 0 {
			_, _ = builder.WriteRune('/')
		}
	}

	if b.turn == SideWhite {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}
	_, _ = builder.WriteString(b.castleRights.String())
	_, _ = builder.WriteRune(' ')

	if b.enPassant == position.NoPos {
		_, _ = builder.WriteRune('-')
	} else {
		_, _ = builder.WriteString(b.enPassant.Notation())
	}

	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", b.halfMoveClock, b.fullMoveClock))

	return builder.String(), nil
}
