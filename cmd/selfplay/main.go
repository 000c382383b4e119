package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"chess3d/internal/chess3d"
)

func main() {
	totalGames := flag.Int("games", 8, "number of games to play")
	parallel := flag.Int("parallel", 4, "games played at the same time")
	white := flag.String("white", "engine", "white player: engine or random")
	black := flag.String("black", "random", "black player: engine or random")
	depth := flag.Int("depth", 2, "Alpha-Beta search depth")
	moveTime := flag.Duration("movetime", 2*time.Second, "time limit per engine move")
	maxMoves := flag.Int("maxmoves", 400, "plies before a game is scored as a draw")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random player seed")
	flag.Parse()

	wp, err := parsePlayer(*white)
	if err != nil {
		log.Fatalf("white: %v", err)
	}
	bp, err := parsePlayer(*black)
	if err != nil {
		log.Fatalf("black: %v", err)
	}

	var (
		mu      sync.Mutex
		tally   = map[chess3d.Color]int{}
		results = make([]result, *totalGames)
	)

	start := time.Now()
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*parallel)
	for i := 0; i < *totalGames; i++ {
		g.Go(func() error {
			m := match{
				White:    newPlayer(wp, *depth, *moveTime, *seed+uint64(i)*2),
				Black:    newPlayer(bp, *depth, *moveTime, *seed+uint64(i)*2+1),
				MaxMoves: *maxMoves,
			}
			res, err := m.play(ctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = res
			log.Printf("game %d: %s after %d plies (%v)", i+1, res, res.Plies, res.Duration.Round(time.Millisecond))

			mu.Lock()
			tally[res.Winner]++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	plies := 0
	for _, r := range results {
		plies += r.Plies
	}
	fmt.Printf("\n=== Final Score (%d games, %v) ===\n", *totalGames, time.Since(start).Round(time.Millisecond))
	fmt.Printf("White [%s]: %d\n", *white, tally[chess3d.White])
	fmt.Printf("Black [%s]: %d\n", *black, tally[chess3d.Black])
	fmt.Printf("Draws: %d\n", tally[chess3d.NoColor])
	if *totalGames > 0 {
		fmt.Printf("Average length: %.1f plies\n", float64(plies)/float64(*totalGames))
	}
}

func parsePlayer(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "engine", "random":
		return v, nil
	default:
		return "", fmt.Errorf("unknown player %q (want engine or random)", s)
	}
}
