package board

import "github.com/chessteg/chessteg/position"

const zobristSeed uint64 = 0x98F107A2BEEF1234

var (
	zobristConstantPiece     [2 + 1][6][64]uint64
	zobristConstantEnPassant [64]uint64
	zobristConstantCastle    [4 + 1]uint64
	zobristConstantSideBlack uint64
)

// PseudoRand is a xorshift64* generator. Keys only need to be stable within
// one process, so a fixed seed is enough.
type PseudoRand struct {
	s uint64
}

func NewPseudoRand(seed uint64) *PseudoRand {
	if seed == 0 {
		seed = zobristSeed
	}
	return &PseudoRand{s: seed}
}

func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

func initZobrist() {
	r := NewPseudoRand(zobristSeed)
	for _, s := range []Side{SideWhite, SideBlack} {
		for _, p := range Pieces {
			for i := 0; i < 64; i++ {
				zobristConstantPiece[s][p.Ordinal()][i] = r.Uint64()
			}
		}
	}
	for i := 0; i < 64; i++ {
		zobristConstantEnPassant[i] = r.Uint64()
	}
	for d := CastleDirectionWhiteRight; d <= CastleDirectionBlackLeft; d++ {
		zobristConstantCastle[d] = r.Uint64()
	}
	zobristConstantSideBlack = r.Uint64()
}

// Hash recomputes the Zobrist key of the position from scratch.
func (b *Board) Hash() uint64 {
	var hash uint64
	for i := 0; i < int(b.unitCount); i++ {
		u := &b.units[i]
		if u.Captured {
			continue
		}
		hash ^= zobristConstantPiece[u.Side][u.Piece.Ordinal()][u.Pos.Index()]
	}
	if b.turn == SideBlack {
		hash ^= zobristConstantSideBlack
	}
	for d := CastleDirectionWhiteRight; d <= CastleDirectionBlackLeft; d++ {
		if b.castleRights.IsAllowed(d) {
			hash ^= zobristConstantCastle[d]
		}
	}
	if b.enPassant != position.NoPos {
		hash ^= zobristConstantEnPassant[b.enPassant.Index()]
	}
	return hash
}
