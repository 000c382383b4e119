package main

import (
	"fmt"

	"chess3d/internal/chess3d"
)

func main() {
	pos := chess3d.NewInitialPosition()
	fmt.Println("Position:", pos.Encode())
	fmt.Printf("Hash: %016x\n", pos.Hash)
	for l := 0; l < chess3d.Levels; l++ {
		fmt.Printf("Level %d: %s\n", l, chess3d.LevelName(l))
	}
	for _, side := range []chess3d.Color{chess3d.White, chess3d.Black} {
		moves := pos.Board.PseudoMoves(side)
		caps := 0
		for _, m := range moves {
			if m.Capture {
				caps++
			}
		}
		fmt.Printf("%s: %d kings, %d pseudo moves (%d captures), in check: %v\n",
			side, pos.KingCount(side), len(moves), caps, pos.InCheck(side))
	}
}
