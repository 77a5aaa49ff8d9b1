package engine

import (
	"github.com/chessteg/chessteg/board"
	"github.com/chessteg/chessteg/position"
)

var (
	// indexed by Piece.Ordinal
	scorePiece = [6]int32{100, 320, 330, 500, 900, 20000}

	// PST table taken from https://www.chessprogramming.org/Simplified_Evaluation_Function
	// Laid out as seen from White, rank 8 first.
	scorePiecePosition = [6][64]int32{
		{ // pawn
			0, 0, 0, 0, 0, 0, 0, 0,
			50, 50, 50, 50, 50, 50, 50, 50,
			10, 10, 20, 30, 30, 20, 10, 10,
			5, 5, 10, 25, 25, 10, 5, 5,
			0, 0, 0, 20, 20, 0, 0, 0,
			5, -5, -10, 0, 0, -10, -5, 5,
			5, 10, 10, -20, -20, 10, 10, 5,
			0, 0, 0, 0, 0, 0, 0, 0,
		},
		{ // knight
			-50, -40, -30, -30, -30, -30, -40, -50,
			-40, -20, 0, 0, 0, 0, -20, -40,
			-30, 0, 10, 15, 15, 10, 0, -30,
			-30, 5, 15, 20, 20, 15, 5, -30,
			-30, 0, 15, 20, 20, 15, 0, -30,
			-30, 5, 10, 15, 15, 10, 5, -30,
			-40, -20, 0, 5, 5, 0, -20, -40,
			-50, -40, -30, -30, -30, -30, -40, -50,
		},
		{ // bishop
			-20, -10, -10, -10, -10, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 10, 10, 5, 0, -10,
			-10, 5, 5, 10, 10, 5, 5, -10,
			-10, 0, 10, 10, 10, 10, 0, -10,
			-10, 10, 10, 10, 10, 10, 10, -10,
			-10, 5, 0, 0, 0, 0, 5, -10,
			-20, -10, -10, -10, -10, -10, -10, -20,
		},
		{ // rook
			0, 0, 0, 0, 0, 0, 0, 0,
			5, 10, 10, 10, 10, 10, 10, 5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			-5, 0, 0, 0, 0, 0, 0, -5,
			0, 0, 0, 5, 5, 0, 0, 0,
		},
		{ // queen
			-20, -10, -10, -5, -5, -10, -10, -20,
			-10, 0, 0, 0, 0, 0, 0, -10,
			-10, 0, 5, 5, 5, 5, 0, -10,
			-5, 0, 5, 5, 5, 5, 0, -5,
			0, 0, 5, 5, 5, 5, 0, -5,
			-10, 5, 5, 5, 5, 5, 0, -10,
			-10, 0, 5, 0, 0, 0, 0, -10,
			-20, -10, -10, -5, -5, -10, -10, -20,
		},
		{ // king
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-30, -40, -40, -50, -50, -40, -40, -30,
			-20, -30, -30, -40, -40, -30, -30, -20,
			-10, -20, -20, -20, -20, -20, -20, -10,
			20, 20, 0, 0, 0, 0, 20, 20,
			20, 30, 10, 0, 0, 10, 30, 20,
		},
	}

	// indexed by relative rank, 0 being the side's own back rank
	scorePassedPawn = [8]int32{0, 10, 15, 20, 35, 60, 100, 0}

	scoreBishopPair     int32 = 30
	scoreDoubledPawn    int32 = -10
	scoreIsolatedPawn   int32 = -15
	scoreRookOpenFile   int32 = 20
	scoreRookSemiOpen   int32 = 10
	scorePawnShield     int32 = 10
	scoreKingAttacker   int32 = -10
	scoreCentreControl  int32 = 15
	scoreDevelopedMinor int32 = 10

	centreSquares = []position.Pos{position.D4, position.E4, position.D5, position.E5}
)

const kingAttackerDistance position.Pos = 2

// sideEval gathers the per-side features of one position.
type sideEval struct {
	score      int32
	pawnFiles  [8]int8
	pawns      []position.Pos
	rooks      []position.Pos
	pieces     []position.Pos // everything but pawns and the king
	king       position.Pos
	bishops    int
	developed  int
	centreHeld int
}

// Evaluate returns the static score of b from White's point of view. Boards
// without exactly one king per side are refused.
func Evaluate(b *board.Board) (int32, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return evaluate(b), nil
}

// evaluate is positive in White's favour and satisfies
// evaluate(b) == -evaluate(b.Mirror()).
func evaluate(b *board.Board) int32 {
	var sides [2]sideEval
	for i := 0; i < 64; i++ {
		pos := position.NewPosFromIndex(i)
		s, p := b.GetSideAndPiece(pos)
		if p == board.PieceUnknown {
			continue
		}
		ev := &sides[sideIndex(s)]
		o := p.Ordinal()
		ev.score += scorePiece[o] + scorePiecePosition[o][pstIndex(pos, s)]
		switch p {
		case board.PiecePawn:
			ev.pawnFiles[pos.X()]++
			ev.pawns = append(ev.pawns, pos)
		case board.PieceKing:
			ev.king = pos
		default:
			ev.pieces = append(ev.pieces, pos)
			if p == board.PieceRook {
				ev.rooks = append(ev.rooks, pos)
			}
			if p == board.PieceBishop {
				ev.bishops++
			}
			if (p == board.PieceBishop || p == board.PieceKnight) && relativeRank(pos, s) != 0 {
				ev.developed++
			}
		}
		for _, c := range centreSquares {
			if pos == c {
				ev.centreHeld++
			}
		}
	}

	white := sides[0].score + evaluateStructure(b, &sides[0], &sides[1], board.SideWhite)
	black := sides[1].score + evaluateStructure(b, &sides[1], &sides[0], board.SideBlack)
	return white - black
}

// evaluateStructure scores pawn structure, rook files, king safety, centre
// control and development for s.
func evaluateStructure(b *board.Board, us, them *sideEval, s board.Side) int32 {
	var score int32

	if us.bishops >= 2 {
		score += scoreBishopPair
	}

	for _, n := range us.pawnFiles {
		if n > 1 {
			score += scoreDoubledPawn * int32(n-1)
		}
	}
	for _, pos := range us.pawns {
		x := int(pos.X())
		if fileCount(&us.pawnFiles, x-1) == 0 && fileCount(&us.pawnFiles, x+1) == 0 {
			score += scoreIsolatedPawn
		}
		if isPassed(pos, s, them.pawns) {
			score += scorePassedPawn[relativeRank(pos, s)]
		}
	}

	for _, pos := range us.rooks {
		x := pos.X()
		switch {
		case us.pawnFiles[x] == 0 && them.pawnFiles[x] == 0:
			score += scoreRookOpenFile
		case us.pawnFiles[x] == 0:
			score += scoreRookSemiOpen
		}
	}

	if us.king != position.NoPos {
		fwd := position.Width * position.Pos(s.Sign())
		pawn := board.NewCell(board.PiecePawn, s)
		for _, d := range []position.Pos{-1, 0, 1} {
			if b.Cell(us.king+fwd+d) == pawn {
				score += scorePawnShield
			}
		}
		for _, pos := range them.pieces {
			if position.Distance(pos, us.king) <= kingAttackerDistance {
				score += scoreKingAttacker
			}
		}
	}

	score += scoreCentreControl * int32(us.centreHeld)
	score += scoreDevelopedMinor * int32(us.developed)
	return score
}

// isPassed reports whether no enemy pawn stands ahead of pos on its own or an
// adjacent file.
func isPassed(pos position.Pos, s board.Side, enemy []position.Pos) bool {
	rank := relativeRank(pos, s)
	for _, e := range enemy {
		dx := e.X() - pos.X()
		if dx < -1 || dx > 1 {
			continue
		}
		if relativeRank(e, s) > rank {
			return false
		}
	}
	return true
}

func fileCount(files *[8]int8, x int) int8 {
	if x < 0 || x >= len(files) {
		return 0
	}
	return files[x]
}

func relativeRank(pos position.Pos, s board.Side) position.Pos {
	if s == board.SideWhite {
		return pos.Y()
	}
	return position.MaxComponentScalar - 1 - pos.Y()
}

func pstIndex(pos position.Pos, s board.Side) int {
	y := int(relativeRank(pos, s))
	return (7-y)*8 + int(pos.X())
}

func sideIndex(s board.Side) int {
	if s == board.SideWhite {
		return 0
	}
	return 1
}

// evaluateRelative scores b for the side to move.
func evaluateRelative(b *board.Board) int32 {
	score := evaluate(b)
	if b.Turn() == board.SideBlack {
		return -score
	}
	return score
}
