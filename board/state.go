package board

// State is the outcome of the position for the side to move.
type State uint8

const (
	StateUnknown State = iota // not computed since the last apply
	StateRunning
	StateCheckWhite
	StateCheckBlack
	StateCheckmateWhite // White is mated
	StateCheckmateBlack // Black is mated
	StateStalemate
	StateFiftyMoveViolated // 100 plies without a capture or pawn move
)

var stateNames = [...]string{
	StateUnknown:           "StateUnknown",
	StateRunning:           "StateRunning",
	StateCheckWhite:        "StateCheckWhite",
	StateCheckBlack:        "StateCheckBlack",
	StateCheckmateWhite:    "StateCheckmateWhite",
	StateCheckmateBlack:    "StateCheckmateBlack",
	StateStalemate:         "StateStalemate",
	StateFiftyMoveViolated: "StateFiftyMoveViolated",
}

// IsRunning reports whether the side to move may still play.
func (s State) IsRunning() bool {
	return s == StateRunning || s.IsCheck()
}

func (s State) IsCheck() bool {
	return s == StateCheckWhite || s == StateCheckBlack
}

func (s State) IsCheckmate() bool {
	return s == StateCheckmateWhite || s == StateCheckmateBlack
}

func (s State) IsDraw() bool {
	return s == StateStalemate || s == StateFiftyMoveViolated
}

// Loser returns the mated side, SideUnknown if nobody is mated.
func (s State) Loser() Side {
	switch s {
	case StateCheckmateWhite:
		return SideWhite
	case StateCheckmateBlack:
		return SideBlack
	default:
		return SideUnknown
	}
}

func (s State) String() string {
	if int(s) >= len(stateNames) {
		return ""
	}
	return stateNames[s]
}

func stateCheck(s Side) State {
	if s == SideWhite {
		return StateCheckWhite
	}
	return StateCheckBlack
}

func stateCheckmate(s Side) State {
	if s == SideWhite {
		return StateCheckmateWhite
	}
	return StateCheckmateBlack
}
