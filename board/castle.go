package board

import "github.com/chessteg/chessteg/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

// castleRoute describes the squares involved in one castling move.
type castleRoute struct {
	side             Side
	kingFrom, kingTo position.Pos
	rookFrom, rookTo position.Pos
	empty            []position.Pos // strictly between king and rook
	safe             []position.Pos // king path, excluding its origin
}

var castleRoutes = [4 + 1]castleRoute{
	CastleDirectionWhiteRight: {
		side:     SideWhite,
		kingFrom: position.E1,
		kingTo:   position.G1,
		rookFrom: position.H1,
		rookTo:   position.F1,
		empty:    []position.Pos{position.F1, position.G1},
		safe:     []position.Pos{position.F1, position.G1},
	},
	CastleDirectionWhiteLeft: {
		side:     SideWhite,
		kingFrom: position.E1,
		kingTo:   position.C1,
		rookFrom: position.A1,
		rookTo:   position.D1,
		empty:    []position.Pos{position.D1, position.C1, position.B1},
		safe:     []position.Pos{position.D1, position.C1},
	},
	CastleDirectionBlackRight: {
		side:     SideBlack,
		kingFrom: position.E8,
		kingTo:   position.G8,
		rookFrom: position.H8,
		rookTo:   position.F8,
		empty:    []position.Pos{position.F8, position.G8},
		safe:     []position.Pos{position.F8, position.G8},
	},
	CastleDirectionBlackLeft: {
		side:     SideBlack,
		kingFrom: position.E8,
		kingTo:   position.C8,
		rookFrom: position.A8,
		rookTo:   position.D8,
		empty:    []position.Pos{position.D8, position.C8, position.B8},
		safe:     []position.Pos{position.D8, position.C8},
	},
}

var castleDirectionsBySide = [2 + 1][2]CastleDirection{
	SideWhite: {CastleDirectionWhiteRight, CastleDirectionWhiteLeft},
	SideBlack: {CastleDirectionBlackRight, CastleDirectionBlackLeft},
}

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White 0-0"
	case CastleDirectionWhiteLeft:
		return "White 0-0-0"
	case CastleDirectionBlackRight:
		return "Black 0-0"
	case CastleDirectionBlackLeft:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

// Mirror returns the same wing for the other side.
func (d CastleDirection) Mirror() CastleDirection {
	switch d {
	case CastleDirectionWhiteRight:
		return CastleDirectionBlackRight
	case CastleDirectionWhiteLeft:
		return CastleDirectionBlackLeft
	case CastleDirectionBlackRight:
		return CastleDirectionWhiteRight
	case CastleDirectionBlackLeft:
		return CastleDirectionWhiteLeft
	default:
		return CastleDirectionUnknown
	}
}

type CastleRights uint8

var maskCastleRights = [4 + 1]CastleRights{
	CastleDirectionWhiteRight: 0b1000,
	CastleDirectionWhiteLeft:  0b0100,
	CastleDirectionBlackRight: 0b0010,
	CastleDirectionBlackLeft:  0b0001,
}

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&(maskCastleRights[CastleDirectionWhiteLeft]|maskCastleRights[CastleDirectionWhiteRight]) != 0
	}
	return c&(maskCastleRights[CastleDirectionBlackLeft]|maskCastleRights[CastleDirectionBlackRight]) != 0
}

// Mirror swaps White and Black rights.
func (c CastleRights) Mirror() CastleRights {
	var m CastleRights
	for d := CastleDirectionWhiteRight; d <= CastleDirectionBlackLeft; d++ {
		if c.IsAllowed(d) {
			m.Set(d.Mirror(), true)
		}
	}
	return m
}

func (c CastleRights) String() string {
	if c == 0 {
		return "-"
	}
	var s string
	if c.IsAllowed(CastleDirectionWhiteRight) {
		s += "K"
	}
	if c.IsAllowed(CastleDirectionWhiteLeft) {
		s += "Q"
	}
	if c.IsAllowed(CastleDirectionBlackRight) {
		s += "k"
	}
	if c.IsAllowed(CastleDirectionBlackLeft) {
		s += "q"
	}
	return s
}
