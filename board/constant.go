package board

import "github.com/chessteg/chessteg/position"

const (
	// MaxUnits bounds the roster; a legal game never holds more than 32 pieces.
	MaxUnits = 32

	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	noUnit int8 = -1
)

var (
	offsetsKnight = []position.Pos{-21, -19, -12, -8, 8, 12, 19, 21}
	offsetsKing   = []position.Pos{-11, -10, -9, -1, 1, 9, 10, 11}
	offsetsBishop = []position.Pos{-11, -9, 9, 11}
	offsetsRook   = []position.Pos{-10, -1, 1, 10}

	// revokeCastleRights lists the rights lost when a move leaves or lands on a square.
	revokeCastleRights [position.TotalCells]CastleRights

	pawnStartRank = [2 + 1]position.Pos{
		SideWhite: position.Rank2,
		SideBlack: position.Rank7,
	}
	pawnPromoteRank = [2 + 1]position.Pos{
		SideWhite: position.Rank8,
		SideBlack: position.Rank1,
	}
)

func init() {
	initCastleRights()
	initZobrist()
}

func initCastleRights() {
	for d := CastleDirectionWhiteRight; d <= CastleDirectionBlackLeft; d++ {
		r := castleRoutes[d]
		revokeCastleRights[r.kingFrom] |= maskCastleRights[d]
		revokeCastleRights[r.rookFrom] |= maskCastleRights[d]
	}
}

// pawnForward is the mailbox step of a pawn push for s.
func pawnForward(s Side) position.Pos {
	return position.Pos(10 * s.Sign())
}
