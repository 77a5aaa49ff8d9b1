package board

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/notnil/chess"

	"github.com/chessteg/chessteg/position"
)

var testFENs = []string{
	DefaultStartingPositionFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
}

func mustBoard(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := NewBoard(WithFEN(fen))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func uciList(mvs []Move) []string {
	list := make([]string, 0, len(mvs))
	for _, mv := range mvs {
		list = append(list, mv.UCI())
	}
	sort.Strings(list)
	return list
}

func referenceList(mvs []*chess.Move) []string {
	list := make([]string, 0, len(mvs))
	for _, mv := range mvs {
		list = append(list, mv.String())
	}
	sort.Strings(list)
	return list
}

func TestLegalMovesAgainstReference(t *testing.T) {
	t.Parallel()

	for i, fen := range testFENs {
		i, fen := i, fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewSource(int64(i) + 1))
			for game := 0; game < 4; game++ {
				b := mustBoard(t, fen)
				opt, err := chess.FEN(fen)
				if err != nil {
					t.Fatalf("unexpected reference error: %v", err)
				}
				ref := chess.NewGame(opt)

				for ply := 0; ply < 40; ply++ {
					got := uciList(b.LegalMoves(b.Turn()))
					want := referenceList(ref.ValidMoves())
					if strings.Join(got, " ") != strings.Join(want, " ") {
						t.Fatalf("unexpected moves at %s:\n got=%v\nwant=%v", b.FEN(), got, want)
					}
					if len(got) == 0 {
						break
					}

					pick := got[r.Intn(len(got))]
					if _, err := b.ApplyUCI(pick); err != nil {
						t.Fatalf("unexpected apply error: %v", err)
					}
					for _, mv := range ref.ValidMoves() {
						if mv.String() == pick {
							if err := ref.Move(mv); err != nil {
								t.Fatalf("unexpected reference error: %v", err)
							}
							break
						}
					}
				}
			}
		})
	}
}

func TestApplyUndoRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen   string
		depth int
	}{
		{fen: DefaultStartingPositionFEN, depth: 3},
		{fen: testFENs[1], depth: 2},
		{fen: testFENs[3], depth: 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)

			var walk func(d int)
			walk = func(d int) {
				if d == 0 {
					return
				}
				for _, mv := range b.LegalMoves(b.Turn()) {
					before := b.Clone()
					if err := b.ApplyMove(mv); err != nil {
						t.Fatalf("unexpected error applying %s at %s: %v", mv.UCI(), before.FEN(), err)
					}
					walk(d - 1)
					if !b.Undo() {
						t.Fatalf("undo failed after %s at %s", mv.UCI(), before.FEN())
					}
					if !b.Equal(before) {
						t.Fatalf("position not restored after %s: got=%s want=%s", mv.UCI(), b.FEN(), before.FEN())
					}
					if b.Hash() != before.Hash() {
						t.Fatalf("hash not restored after %s at %s", mv.UCI(), before.FEN())
					}
				}
			}
			walk(tt.depth)
		})
	}
}

func TestCastlingGating(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		fen        string
		setup      []string
		wantRight  bool
		wantLeft   bool
		wantChecks bool
	}{
		{
			name:      "both allowed",
			fen:       "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			wantRight: true,
			wantLeft:  true,
		},
		{
			name:  "king has moved",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			setup: []string{"e1d1", "e8d8", "d1e1", "d8e8"},
		},
		{
			name:     "rook captured",
			fen:      "r3k2r/8/8/8/8/8/6b1/R3K2R b KQkq - 0 1",
			setup:    []string{"g2h1"},
			wantLeft: true,
		},
		{
			name: "interposing pieces",
			fen:  "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1",
		},
		{
			name: "king in check",
			fen:  "4k3/4r3/8/8/8/8/8/R3K2R w KQ - 0 1",
		},
		{
			name:     "king passes attacked square",
			fen:      "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			wantLeft: true,
		},
		{
			name:     "king lands on attacked square",
			fen:      "4k1r1/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			wantLeft: true,
		},
		{
			name:      "rook passes attacked square",
			fen:       "1r2k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			wantRight: true,
			wantLeft:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			for _, s := range tt.setup {
				if _, err := b.ApplyUCI(s); err != nil {
					t.Fatalf("unexpected setup error: %v", err)
				}
			}

			var gotRight, gotLeft bool
			for _, mv := range b.LegalMoves(SideWhite) {
				switch mv.IsCastle {
				case CastleDirectionWhiteRight:
					gotRight = true
				case CastleDirectionWhiteLeft:
					gotLeft = true
				}
			}
			if gotRight != tt.wantRight {
				t.Errorf("unexpected 0-0: got=%v want=%v", gotRight, tt.wantRight)
			}
			if gotLeft != tt.wantLeft {
				t.Errorf("unexpected 0-0-0: got=%v want=%v", gotLeft, tt.wantLeft)
			}
		})
	}
}

func TestCastlingMovesRook(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	if _, err := b.ApplyUCI("e1g1"); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if _, err := b.ApplyUCI("e8c8"); err != nil {
		t.Fatal("unexpected error:", err)
	}
	want := "2kr3r/8/8/8/8/8/8/R4RK1 w - - 2 2"
	if got := b.FEN(); got != want {
		t.Errorf("unexpected FEN: got=%s want=%s", got, want)
	}
}

func TestEnPassantLifetime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		fen      string
		push     string
		target   position.Pos
		capture  string
		captured position.Pos
		waits    []string
	}{
		{
			name:     "white double push",
			fen:      "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1",
			push:     "e2e4",
			target:   position.E3,
			capture:  "d4e3",
			captured: position.E4,
			waits:    []string{"e8e7", "e1d1"},
		},
		{
			name:     "black double push",
			fen:      "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1",
			push:     "d7d5",
			target:   position.D6,
			capture:  "e5d6",
			captured: position.D5,
			waits:    []string{"e1e2", "e8e7"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			capturer := b.Turn().Opposite()

			if _, err := b.ApplyUCI(tt.push); err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got := b.EnPassant(); got != tt.target {
				t.Fatalf("unexpected en passant target: got=%v want=%v", got, tt.target)
			}
			var enp []Move
			for _, mv := range b.LegalMoves(capturer) {
				if mv.IsEnPassant() {
					enp = append(enp, mv)
				}
			}
			if len(enp) != 1 || enp[0].UCI() != tt.capture {
				t.Fatalf("unexpected en passant moves: got=%v want=[%s]", uciList(enp), tt.capture)
			}
			if enp[0].Captured.Pos != tt.captured {
				t.Errorf("unexpected captured square: got=%v want=%v", enp[0].Captured.Pos, tt.captured)
			}

			if _, err := b.ApplyUCI(tt.waits[0]); err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got := b.EnPassant(); got != position.NoPos {
				t.Fatalf("unexpected en passant target: got=%v want=none", got)
			}
			if _, err := b.ApplyUCI(tt.waits[1]); err != nil {
				t.Fatal("unexpected error:", err)
			}
			for _, mv := range b.LegalMoves(capturer) {
				if mv.IsEnPassant() || mv.UCI() == tt.capture {
					t.Fatalf("unexpected stale en passant move: %s", mv.UCI())
				}
			}
		})
	}
}

func TestEnPassantCapture(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		fen      string
		moves    []string
		wantFEN  string
		captured Unit
	}{
		{
			name:     "black takes",
			fen:      "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1",
			moves:    []string{"e2e4", "d4e3"},
			wantFEN:  "4k3/8/8/8/8/4p3/8/4K3 w - - 0 2",
			captured: Unit{Piece: PiecePawn, Side: SideWhite, Pos: position.E4, Captured: true},
		},
		{
			name:     "white takes",
			fen:      "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1",
			moves:    []string{"d7d5", "e5d6"},
			wantFEN:  "4k3/8/3P4/8/8/8/8/4K3 b - - 0 2",
			captured: Unit{Piece: PiecePawn, Side: SideBlack, Pos: position.D5, Captured: true},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			for _, s := range tt.moves {
				if _, err := b.ApplyUCI(s); err != nil {
					t.Fatal("unexpected error:", err)
				}
			}
			if got := b.FEN(); got != tt.wantFEN {
				t.Errorf("unexpected FEN: got=%s want=%s", got, tt.wantFEN)
			}
			var captured []Unit
			for _, u := range b.Units() {
				if u.Captured {
					captured = append(captured, u)
				}
			}
			if len(captured) != 1 || captured[0] != tt.captured {
				t.Errorf("unexpected captured units: got=%+v want=%+v", captured, tt.captured)
			}
		})
	}
}

func TestEnPassantTargetAfterBlackPush(t *testing.T) {
	t.Parallel()
	b := NewGame()
	for _, s := range []string{"e2e4", "a7a6", "e4e5", "d7d5"} {
		if _, err := b.ApplyUCI(s); err != nil {
			t.Fatal("unexpected error:", err)
		}
	}

	want := "rnbqkbnr/1pp1pppp/p7/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3"
	if got := b.FEN(); got != want {
		t.Fatalf("unexpected FEN: got=%s want=%s", got, want)
	}
	again := mustBoard(t, b.FEN())
	if !again.Equal(b) || again.Hash() != b.Hash() {
		t.Errorf("unexpected reparse: got=%s want=%s", again.DebugString(), b.DebugString())
	}
	mv, err := b.ParseUCI("e5d6")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !mv.IsEnPassant() || mv.Captured.Pos != position.D5 {
		t.Errorf("unexpected move: got=%+v want=en passant capturing d5", mv)
	}
}

func TestPromotion(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	var pushes, captures int
	for _, mv := range b.LegalMoves(SideWhite) {
		if mv.Piece != PiecePawn {
			continue
		}
		if mv.IsPromote == PieceUnknown {
			t.Fatalf("unexpected pawn move without promotion: %s", mv.UCI())
		}
		if mv.IsCapture() {
			captures++
		} else {
			pushes++
		}
	}
	if pushes != 4 || captures != 4 {
		t.Fatalf("unexpected promotions: pushes=%d captures=%d want=4/4", pushes, captures)
	}

	if _, err := b.ApplyUCI("a7b8n"); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if s, p := b.GetSideAndPiece(position.B8); s != SideWhite || p != PieceKnight {
		t.Errorf("unexpected promoted piece: got=%v %v want=White Knight", s, p)
	}
	if _, err := b.ApplyUCI("e8d8"); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if _, err := b.ApplyUCI("a7a8"); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidMove)
	}
}

func TestCheckDetection(t *testing.T) {
	t.Parallel()

	for i, fen := range testFENs {
		i, fen := i, fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewSource(int64(i) + 100))
			b := mustBoard(t, fen)
			for ply := 0; ply < 60; ply++ {
				for _, s := range []Side{SideWhite, SideBlack} {
					opp := s.Opposite()
					targets := make(map[position.Pos]bool)
					for _, mv := range b.GeneratePseudoLegalMoves(opp) {
						targets[mv.To] = true
					}
					if got, want := b.IsKingChecked(s), targets[b.KingPos(s)]; got != want {
						t.Fatalf("unexpected check for %s at %s: got=%v want=%v", s, b.FEN(), got, want)
					}
					for _, u := range b.Units() {
						if u.Captured || u.Side != s {
							continue
						}
						if got, want := b.IsSquareAttacked(u.Pos, opp), targets[u.Pos]; got != want {
							t.Fatalf("unexpected attack on %s at %s: got=%v want=%v", u.Pos, b.FEN(), got, want)
						}
					}
				}

				mvs := b.LegalMoves(b.Turn())
				if len(mvs) == 0 {
					break
				}
				if err := b.ApplyMove(mvs[r.Intn(len(mvs))]); err != nil {
					t.Fatal("unexpected error:", err)
				}
			}
		})
	}
}

func TestState(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen           string
		want          State
		wantCheckmate bool
		wantStalemate bool
	}{
		{fen: DefaultStartingPositionFEN, want: StateRunning},
		{fen: "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", want: StateCheckmateWhite, wantCheckmate: true},
		{fen: "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", want: StateStalemate, wantStalemate: true},
		{fen: "4k3/8/8/8/8/8/4q3/4K3 w - - 0 1", want: StateCheckWhite},
		{fen: "4k3/8/8/8/8/8/8/R3K3 b - - 100 80", want: StateFiftyMoveViolated},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			if got := b.State(); got != tt.want {
				t.Errorf("unexpected state: got=%v want=%v", got, tt.want)
			}
			if got := b.IsCheckmate(b.Turn()); got != tt.wantCheckmate {
				t.Errorf("unexpected checkmate: got=%v want=%v", got, tt.wantCheckmate)
			}
			if tt.wantCheckmate && b.State().Loser() != b.Turn() {
				t.Errorf("unexpected loser: got=%v want=%v", b.State().Loser(), b.Turn())
			}
			if got := b.IsStalemate(b.Turn()); got != tt.wantStalemate {
				t.Errorf("unexpected stalemate: got=%v want=%v", got, tt.wantStalemate)
			}
		})
	}
}

func TestApplyMoveInvalid(t *testing.T) {
	t.Parallel()
	b := NewGame()
	before := b.Clone()

	for _, s := range []string{"e2e5", "e7e5", "a1a2", "e1g1", "zz", "e2e4k"} {
		if _, err := b.ApplyUCI(s); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("unexpected error for %s: got=%v want=%v", s, err, ErrInvalidMove)
		}
	}
	if err := b.ApplyMove(Move{From: position.E2, To: position.E5}); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidMove)
	}
	if !b.Equal(before) {
		t.Errorf("board mutated by invalid moves: got=%s want=%s", b.FEN(), before.FEN())
	}
	if b.Undo() {
		t.Error("unexpected undo on empty history")
	}
}

func TestHistory(t *testing.T) {
	t.Parallel()
	b := NewGame()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	var fens []string
	for ply := 0; ply < 60; ply++ {
		fens = append(fens, b.FEN())
		if _, err := b.ApplyUCI(shuffle[ply%len(shuffle)]); err != nil {
			t.Fatal("unexpected error:", err)
		}
	}
	final := b.FEN()
	if got := len(b.History()); got != HistoryLimit {
		t.Fatalf("unexpected history length: got=%d want=%d", got, HistoryLimit)
	}

	for i := 0; i < HistoryLimit; i++ {
		if !b.Undo() {
			t.Fatalf("unexpected undo failure at %d", i)
		}
		if got, want := b.FEN(), fens[59-i]; got != want {
			t.Fatalf("unexpected FEN after %d undos: got=%s want=%s", i+1, got, want)
		}
	}
	if b.Undo() {
		t.Fatal("unexpected undo beyond history limit")
	}

	for i := 0; i < HistoryLimit; i++ {
		if !b.Redo() {
			t.Fatalf("unexpected redo failure at %d", i)
		}
	}
	if b.Redo() {
		t.Fatal("unexpected redo at end of history")
	}
	if got := b.FEN(); got != final {
		t.Fatalf("unexpected FEN after redo: got=%s want=%s", got, final)
	}

	if !b.Undo() {
		t.Fatal("unexpected undo failure")
	}
	if _, err := b.ApplyUCI("b1c3"); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if b.Redo() {
		t.Error("unexpected redo after a new move")
	}
}

func TestHash(t *testing.T) {
	t.Parallel()
	b := NewGame()
	start := b.Hash()

	for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		if _, err := b.ApplyUCI(s); err != nil {
			t.Fatal("unexpected error:", err)
		}
	}
	if got := b.Hash(); got != start {
		t.Errorf("unexpected hash after transposition: got=%x want=%x", got, start)
	}

	tests := []struct {
		a, b string
	}{
		{a: DefaultStartingPositionFEN, b: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"},
		{a: DefaultStartingPositionFEN, b: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w Kkq - 0 1"},
		{a: "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", b: "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2"},
		{a: DefaultStartingPositionFEN, b: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1"},
	}
	for _, tt := range tests {
		if mustBoard(t, tt.a).Hash() == mustBoard(t, tt.b).Hash() {
			t.Errorf("unexpected hash collision: %s / %s", tt.a, tt.b)
		}
	}
}

func TestMirror(t *testing.T) {
	t.Parallel()

	for _, fen := range testFENs {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, fen)
			m := b.Mirror()
			if err := m.Validate(); err != nil {
				t.Fatal("unexpected error:", err)
			}
			if got := m.Mirror().FEN(); got != b.FEN() {
				t.Errorf("unexpected double mirror: got=%s want=%s", got, b.FEN())
			}
			if got, want := len(m.LegalMoves(m.Turn())), len(b.LegalMoves(b.Turn())); got != want {
				t.Errorf("unexpected mirrored move count: got=%d want=%d", got, want)
			}
		})
	}
}

func TestMoveNotation(t *testing.T) {
	t.Parallel()
	b := mustBoard(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	tests := []struct {
		uci  string
		want string
	}{
		{uci: "e1g1", want: "0-0"},
		{uci: "e1c1", want: "0-0-0"},
		{uci: "e5f7", want: "Ne5xf7"},
		{uci: "d5e6", want: "dxe6"},
		{uci: "a2a4", want: "a4"},
	}

	mvs := b.LegalMoves(SideWhite)
	for _, tt := range tests {
		var found bool
		for _, mv := range mvs {
			if mv.UCI() != tt.uci {
				continue
			}
			found = true
			if got := mv.Algebra(); got != tt.want {
				t.Errorf("unexpected notation for %s: got=%s want=%s", tt.uci, got, tt.want)
			}
		}
		if !found {
			t.Errorf("move %s not generated", tt.uci)
		}
	}
}

func TestIsLegal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		mv   string
		want bool
	}{
		{name: "pinned bishop", fen: "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", mv: "e2d3", want: false},
		{name: "king steps aside", fen: "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", mv: "e1d1", want: true},
		{name: "diagonal step", fen: "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", mv: "e1f2", want: true},
		{name: "king into rook file", fen: "4k3/3r4/8/8/8/8/8/4K3 w - - 0 1", mv: "e1d1", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := mustBoard(t, tt.fen)
			fen := b.FEN()
			var found bool
			for _, mv := range b.GeneratePseudoLegalMoves(b.Turn()) {
				if mv.UCI() != tt.mv {
					continue
				}
				found = true
				if got := b.IsLegal(mv); got != tt.want {
					t.Errorf("unexpected legality: got=%v want=%v", got, tt.want)
				}
			}
			if !found {
				t.Fatalf("pseudo-legal move %s not generated", tt.mv)
			}
			if got := b.FEN(); got != fen {
				t.Errorf("unexpected board after check: got=%s want=%s", got, fen)
			}
		})
	}
}
