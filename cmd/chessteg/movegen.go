package main

import (
	"fmt"
	"strconv"

	"github.com/chessteg/chessteg/board"
)

func movegen(fen string, draw bool) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", b.Turn())
	fmt.Println(b.Dump())
	fmt.Println(b.Draw())
	fmt.Println(b.DebugString())
	dumpMoves(b)

	if draw {
		for _, mv := range b.LegalMoves(b.Turn()) {
			unApply, _ := b.Apply(mv)
			fmt.Println(mv)
			fmt.Println(b.Draw())
			fmt.Println(b.FEN())
			unApply()
		}
	}
	return nil
}

func dumpMoves(b *board.Board) {
	mvs := b.LegalMoves(b.Turn())
	for i, mv := range mvs {
		fmt.Printf("option %*d: [%s] [%s] %s %s %s => %s (kind=%s) (cas=%s) (pro=%s) (chk=%v)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), mv.Algebra(), mv.IsTurn, mv.Piece, mv.From, mv.To, mv.Kind, mv.IsCastle, mv.IsPromote, mv.IsCheck)
	}
}
