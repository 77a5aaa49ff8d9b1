package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the number of files and ranks of the playable board.
	MaxComponentScalar Pos = 8

	// Width and Height describe the padded mailbox: one sentinel file on each side,
	// two sentinel ranks above and below so knight jumps never leave the array.
	Width      Pos = 10
	Height     Pos = 12
	TotalCells     = int(Width) * int(Height)

	// NoPos is off-board and doubles as the null square.
	NoPos Pos = 0
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is an index into the 10x12 mailbox.
type Pos int8

func NewPos(x, y Pos) Pos {
	return (y+2)*Width + x + 1
}

func NewPosFromNotation(n string) (Pos, error) {
	x, y, err := notationToXY(n)
	if err != nil {
		return NoPos, err
	}
	return NewPos(x, y), nil
}

// NewPosFromIndex converts a 0..63 little-endian rank-file index into a mailbox position.
func NewPosFromIndex(i int) Pos {
	return NewPos(Pos(i)%MaxComponentScalar, Pos(i)/MaxComponentScalar)
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) IsValid() bool {
	if p < A1 || p > H8 {
		return false
	}
	col := p % Width
	return col >= 1 && col <= MaxComponentScalar
}

func (p Pos) Notation() string {
	if !p.IsValid() {
		return ""
	}
	return string(rune('a'+p.X())) + string(rune('1'+p.Y()))
}

// X returns the file, 0 for a through 7 for h.
func (p Pos) X() Pos {
	return p%Width - 1
}

// Y returns the rank, 0 for rank 1 through 7 for rank 8.
func (p Pos) Y() Pos {
	return p/Width - 2
}

// Index returns the 0..63 little-endian rank-file index, used by lookup tables.
func (p Pos) Index() int {
	return int(p.Y())*int(MaxComponentScalar) + int(p.X())
}

// Flip mirrors the position vertically (a1 <-> a8).
func (p Pos) Flip() Pos {
	return NewPos(p.X(), MaxComponentScalar-1-p.Y())
}

// Distance is the king-move (Chebyshev) distance between two positions.
func Distance(a, b Pos) Pos {
	dx, dy := a.X()-b.X(), a.Y()-b.Y()
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

func notationToXY(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	pX, err := notationToX(n[0])
	if err != nil {
		return 0, 0, err
	}
	pY, err := notationToY(n[1])
	if err != nil {
		return 0, 0, err
	}
	return pX, pY, nil
}

func notationToX(x byte) (Pos, error) {
	if x < 'a' || x >= 'a'+byte(MaxComponentScalar) {
		return 0, ErrInvalidNotation
	}
	return Pos(x - 'a'), nil
}

func notationToY(y byte) (Pos, error) {
	if y < '1' || y >= '1'+byte(MaxComponentScalar) {
		return 0, ErrInvalidNotation
	}
	return Pos(y - '1'), nil
}

func (p Pos) NotationComponentX() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) NotationComponentY() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('1' + p))
}
