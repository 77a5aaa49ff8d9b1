package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/chessteg/chessteg/position"
)

var (
	ErrInvalidFEN    = errors.New("invalid fen")
	ErrInvalidMove   = errors.New("invalid move")
	ErrNoKing        = errors.New("king missing")
	ErrMultipleKings = errors.New("multiple kings")
)

// Unit is one roster entry. Captured units stay in the roster so that a
// restored snapshot brings back the same identity.
type Unit struct {
	Piece    Piece
	Side     Side
	Pos      position.Pos
	Captured bool
}

// snapshot is the complete, copyable game state. Restoring one is how moves
// are reverted.
type snapshot struct {
	// grid data
	cells     [position.TotalCells]Cell
	index     [position.TotalCells]int8 // roster index per cell, noUnit if empty
	units     [MaxUnits]Unit
	unitCount uint8

	// meta
	turn          Side
	castleRights  CastleRights
	enPassant     position.Pos
	halfMoveClock uint16
	fullMoveClock uint16
	state         State
}

// Board is a chess position on a 10x12 mailbox together with its undo/redo
// history. It is not safe for concurrent use.
type Board struct {
	snapshot
	history *History
}

type boardConfig struct {
	fen      string
	validate bool
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

// WithoutValidation accepts positions without exactly one king per side.
// Such boards can be inspected but are refused by the engine.
func WithoutValidation() BoardOption {
	return func(cfg *boardConfig) {
		cfg.validate = false
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		fen:      DefaultStartingPositionFEN,
		validate: true,
	}
	for _, f := range opts {
		f(cfg)
	}

	b := &Board{}
	if err := UnmarshalFEN(cfg.fen, b); err != nil {
		return nil, err
	}
	if cfg.validate {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// NewGame returns the standard starting position.
func NewGame() *Board {
	b, err := NewBoard()
	if err != nil {
		panic(err) // starting position is a constant
	}
	return b
}

func (b *Board) reset() {
	b.snapshot = snapshot{}
	for i := range b.cells {
		if position.Pos(i).IsValid() {
			b.cells[i] = CellEmpty
		} else {
			b.cells[i] = CellOffBoard
		}
		b.index[i] = noUnit
	}
	b.history = nil
}

func (b *Board) addUnit(p Piece, s Side, pos position.Pos) error {
	if b.unitCount >= MaxUnits {
		return fmt.Errorf("too many pieces: max %d", MaxUnits)
	}
	if !b.cells[pos].IsEmpty() {
		return fmt.Errorf("square %s occupied", pos)
	}
	idx := int8(b.unitCount)
	b.units[idx] = Unit{Piece: p, Side: s, Pos: pos}
	b.unitCount++
	b.cells[pos] = NewCell(p, s)
	b.index[pos] = idx
	return nil
}

// Validate checks that each side has exactly one king.
func (b *Board) Validate() error {
	for _, s := range []Side{SideWhite, SideBlack} {
		var kings int
		for i := 0; i < int(b.unitCount); i++ {
			u := &b.units[i]
			if !u.Captured && u.Side == s && u.Piece == PieceKing {
				kings++
			}
		}
		switch {
		case kings == 0:
			return fmt.Errorf("%w: %s", ErrNoKing, s)
		case kings > 1:
			return fmt.Errorf("%w: %s has %d", ErrMultipleKings, s, kings)
		}
	}
	return nil
}

func (b *Board) Turn() Side {
	return b.turn
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

// EnPassant returns the en passant target square, position.NoPos if none.
func (b *Board) EnPassant() position.Pos {
	return b.enPassant
}

func (b *Board) HalfMoveClock() uint16 {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() uint16 {
	return b.fullMoveClock
}

// Ply counts half-moves since the start of the game.
func (b *Board) Ply() uint16 {
	return b.snapshot.ply()
}

func (s *snapshot) ply() uint16 {
	full := s.fullMoveClock
	if full == 0 {
		full = 1
	}
	ply := (full - 1) * 2
	if s.turn == SideBlack {
		ply++
	}
	return ply
}

func (b *Board) Cell(pos position.Pos) Cell {
	if pos < 0 || int(pos) >= position.TotalCells {
		return CellOffBoard
	}
	return b.cells[pos]
}

func (b *Board) GetSideAndPiece(pos position.Pos) (Side, Piece) {
	c := b.Cell(pos)
	return c.Side(), c.Piece()
}

// Units returns a copy of the roster, captured units included.
func (b *Board) Units() []Unit {
	units := make([]Unit, b.unitCount)
	copy(units, b.units[:b.unitCount])
	return units
}

// KingPos returns the square of the king of s, position.NoPos if missing.
func (b *Board) KingPos(s Side) position.Pos {
	for i := 0; i < int(b.unitCount); i++ {
		u := &b.units[i]
		if u.Piece == PieceKing && u.Side == s && !u.Captured {
			return u.Pos
		}
	}
	return position.NoPos
}

// State returns the cached game state of the side to move, computing it if needed.
func (b *Board) State() State {
	if b.state == StateUnknown {
		b.state = b.computeState()
	}
	return b.state
}

func (b *Board) computeState() State {
	s := b.turn
	isCheck := b.IsKingChecked(s)
	if !b.hasLegalMove(s) {
		if isCheck {
			return stateCheckmate(s)
		}
		return StateStalemate
	}
	if b.halfMoveClock >= 100 {
		return StateFiftyMoveViolated
	}
	if isCheck {
		return stateCheck(s)
	}
	return StateRunning
}

func (b *Board) IsCheckmate(s Side) bool {
	return b.IsKingChecked(s) && !b.hasLegalMove(s)
}

func (b *Board) IsStalemate(s Side) bool {
	return !b.IsKingChecked(s) && !b.hasLegalMove(s)
}

// Clone copies the position. The clone starts with an empty history.
func (b *Board) Clone() *Board {
	return &Board{snapshot: b.snapshot}
}

// Equal compares the logical position, ignoring history and cached state.
func (b *Board) Equal(o *Board) bool {
	l, r := b.snapshot, o.snapshot
	l.state, r.state = StateUnknown, StateUnknown
	return l == r
}

// Mirror returns the colour-flipped mirror image: ranks reversed, sides swapped.
func (b *Board) Mirror() *Board {
	m := &Board{}
	m.reset()
	for i := 0; i < int(b.unitCount); i++ {
		u := b.units[i]
		if u.Captured {
			continue
		}
		_ = m.addUnit(u.Piece, u.Side.Opposite(), u.Pos.Flip())
	}
	m.turn = b.turn.Opposite()
	m.castleRights = b.castleRights.Mirror()
	if b.enPassant != position.NoPos {
		m.enPassant = b.enPassant.Flip()
	}
	m.halfMoveClock = b.halfMoveClock
	m.fullMoveClock = b.fullMoveClock
	return m
}

func (b *Board) FEN() string {
	fen, _ := MarshalFEN(b)
	return fen
}

// Dump renders the board as plain text, White at the bottom.
func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := position.MaxComponentScalar - 1; y >= 0; y-- {
		for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
			c := b.cells[position.NewPos(x, y)]
			sym := c.Piece().SymbolFEN(c.Side())
			if sym == "" {
				sym = "."
			}
			_, _ = builder.WriteString(sym)
			if x < position.MaxComponentScalar-1 {
				_, _ = builder.WriteRune(' ')
			}
		}
		_, _ = builder.WriteRune('\n')
	}
	return builder.String()
}

// Draw renders the board with terminal colours.
func (b *Board) Draw() string {
	var (
		label = color.New(color.Bold)
		dark  = color.New(color.FgBlack, color.BgGreen)
		light = color.New(color.FgBlack, color.BgHiWhite)
	)
	builder := strings.Builder{}
	for y := position.MaxComponentScalar - 1; y >= 0; y-- {
		_, _ = builder.WriteString(label.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
			c := b.cells[position.NewPos(x, y)]
			sym := c.Piece().SymbolUnicode(c.Side(), true)
			if sym == "" {
				sym = " "
			}
			bg := light
			if (x+y)%2 == 0 {
				bg = dark
			}
			_, _ = builder.WriteString(bg.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteRune('\n')
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < position.MaxComponentScalar; x++ {
		_, _ = builder.WriteString(label.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	return fmt.Sprintf("turn=%s state=%s castle=%s enpassant=%s half=%d full=%d hash=%016x",
		b.turn, b.State(), b.castleRights, b.enPassant, b.halfMoveClock, b.fullMoveClock, b.Hash())
}
