package chess3d

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustPlay(t *testing.T, g *Game, from, to Square) {
	t.Helper()
	if err := g.Play(from, to); err != nil {
		t.Fatalf("play %s -> %s: %v", from, to, err)
	}
}

func TestFirstPawnMove(t *testing.T) {
	g := NewGame()
	from, to := sq(1, 0, 0), sq(2, 0, 0)
	pawn := g.Piece(from)

	act, err := g.Select(from)
	if err != nil || act != ActionSelected {
		t.Fatalf("select pawn: act=%s err=%v", act, err)
	}
	if g.Phase() != SelectDestination {
		t.Fatalf("phase = %s, want select-destination", g.Phase())
	}
	if diff := cmp.Diff(sortedSquares(sq(2, 0, 0), sq(3, 0, 0)), targets(g.Destinations())); diff != "" {
		t.Fatalf("destinations mismatch (-want +got):\n%s", diff)
	}

	act, err = g.Select(to)
	if err != nil || act != ActionMoved {
		t.Fatalf("move pawn: act=%s err=%v", act, err)
	}
	if !g.Piece(from).Empty() {
		t.Fatalf("origin not cleared")
	}
	moved := g.Piece(to)
	if moved.Kind != Pawn || moved.Color != White || moved.ID != pawn.ID || !moved.Moved {
		t.Fatalf("unexpected piece at destination: %+v", moved)
	}
	if g.Turn() != Black {
		t.Fatalf("turn = %s, want black", g.Turn())
	}
	if g.Phase() != SelectPiece {
		t.Fatalf("phase = %s, want select-piece", g.Phase())
	}
	if _, ok := g.Selected(); ok {
		t.Fatalf("selection should be cleared after a move")
	}
	last, ok := g.LastMove()
	if !ok || last.Move.From != from || last.Move.To != to || last.Move.Capture || last.Promoted {
		t.Fatalf("unexpected last move %+v", last)
	}
}

func TestPawnPromotesOnFarLevel(t *testing.T) {
	g := NewGame()
	steps := []struct{ from, to Square }{
		{sq(1, 0, 0), sq(2, 0, 0)}, {sq(6, 7, 7), sq(5, 7, 7)},
		{sq(2, 0, 0), sq(3, 0, 0)}, {sq(5, 7, 7), sq(4, 7, 7)},
		{sq(3, 0, 0), sq(4, 0, 0)}, {sq(4, 7, 7), sq(3, 7, 7)},
		{sq(4, 0, 0), sq(5, 0, 0)}, {sq(3, 7, 7), sq(2, 7, 7)},
		{sq(5, 0, 0), sq(6, 1, 0)}, {sq(6, 7, 6), sq(5, 7, 6)},
	}
	for _, s := range steps {
		mustPlay(t, g, s.from, s.to)
		if pc := g.Piece(s.to); pc.Kind == Queen && pc.Color == White {
			t.Fatalf("promoted too early at %s", s.to)
		}
	}

	pawn := g.Piece(sq(6, 1, 0))
	if pawn.Kind != Pawn || pawn.Color != White {
		t.Fatalf("white pawn missing on level 6: %+v", pawn)
	}
	mustPlay(t, g, sq(6, 1, 0), sq(7, 0, 0))

	got := g.Piece(sq(7, 0, 0))
	if got.Kind != Queen || got.Color != White || got.ID != pawn.ID {
		t.Fatalf("want promoted white queen, got %+v", got)
	}
	last, _ := g.LastMove()
	if !last.Promoted || last.Captured.Kind != Rook || last.Captured.Color != Black {
		t.Fatalf("unexpected last move %+v", last)
	}
}

func TestCapturingSoleKingEndsGame(t *testing.T) {
	pos := emptyPosition(White)
	place(t, pos, sq(0, 0, 0), Queen, White)
	place(t, pos, sq(0, 7, 7), King, White)
	king := place(t, pos, sq(3, 0, 0), King, Black)
	place(t, pos, sq(7, 7, 7), Rook, Black)

	g := NewGameFromPosition(pos)
	if g.Kings(Black)[0].ID != king.ID {
		t.Fatalf("registry does not hold the black king")
	}
	mustPlay(t, g, sq(0, 0, 0), sq(3, 0, 0))

	if !g.Over() || g.Phase() != GameOver {
		t.Fatalf("game should be over, phase=%s", g.Phase())
	}
	if g.Winner() != White {
		t.Fatalf("winner = %s, want white", g.Winner())
	}
	if n := len(g.Kings(Black)); n != 0 {
		t.Fatalf("black registry has %d kings", n)
	}
	if g.Message() != "White Wins! All Black Kings captured." {
		t.Fatalf("unexpected message %q", g.Message())
	}

	before := g.Encode()
	for _, s := range []Square{sq(7, 7, 7), sq(3, 0, 0), sq(0, 7, 7)} {
		if _, err := g.Select(s); !errors.Is(err, ErrGameOver) {
			t.Fatalf("select after game over: err=%v", err)
		}
	}
	if err := g.Play(sq(7, 7, 7), sq(6, 7, 7)); !errors.Is(err, ErrGameOver) {
		t.Fatalf("play after game over: err=%v", err)
	}
	if g.Encode() != before {
		t.Fatalf("board changed after game over")
	}
}

func TestOneOfSeveralKingsCapturedKeepsPlaying(t *testing.T) {
	pos := emptyPosition(White)
	place(t, pos, sq(0, 0, 0), Rook, White)
	place(t, pos, sq(0, 7, 7), King, White)
	place(t, pos, sq(4, 0, 0), King, Black)
	place(t, pos, sq(7, 7, 7), King, Black)

	g := NewGameFromPosition(pos)
	mustPlay(t, g, sq(0, 0, 0), sq(4, 0, 0))
	if g.Over() {
		t.Fatalf("game over with a black king still alive")
	}
	if diff := cmp.Diff([]KingEntry{{ID: idFor(sq(7, 7, 7)), At: sq(7, 7, 7)}}, g.Kings(Black)); diff != "" {
		t.Fatalf("black registry mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectionStateMachine(t *testing.T) {
	g := NewGame()

	t.Run("EmptyAndOpponentCellsAreIgnored", func(t *testing.T) {
		for _, s := range []Square{sq(3, 3, 3), sq(6, 0, 0), sq(7, 3, 3)} {
			act, err := g.Select(s)
			if err != nil || act != ActionNone {
				t.Fatalf("select %s: act=%s err=%v", s, act, err)
			}
			if g.Phase() != SelectPiece {
				t.Fatalf("phase changed to %s", g.Phase())
			}
		}
	})

	t.Run("OffBoardIsRejected", func(t *testing.T) {
		for _, s := range []Square{NoSquare, Square(NumCells)} {
			if _, err := g.Select(s); !errors.Is(err, ErrOffBoard) {
				t.Fatalf("select %d: err=%v", s, err)
			}
		}
	})

	t.Run("ReselectingOriginDeselects", func(t *testing.T) {
		if act, _ := g.Select(sq(1, 2, 2)); act != ActionSelected {
			t.Fatalf("select: %s", act)
		}
		if act, _ := g.Select(sq(1, 2, 2)); act != ActionDeselected {
			t.Fatalf("reselect: %s", act)
		}
		if g.Phase() != SelectPiece || len(g.Destinations()) != 0 {
			t.Fatalf("deselect left phase=%s destinations=%v", g.Phase(), g.Destinations())
		}
	})

	t.Run("InvalidTargetKeepsState", func(t *testing.T) {
		before := g.Encode()
		if act, _ := g.Select(sq(1, 2, 2)); act != ActionSelected {
			t.Fatalf("select: %s", act)
		}
		for _, s := range []Square{sq(5, 5, 5), sq(1, 2, 3), sq(4, 2, 2)} {
			act, err := g.Select(s)
			if !errors.Is(err, ErrInvalidTarget) || act != ActionNone {
				t.Fatalf("select %s: act=%s err=%v", s, act, err)
			}
		}
		if g.Phase() != SelectDestination {
			t.Fatalf("phase = %s", g.Phase())
		}
		if at, ok := g.Selected(); !ok || at != sq(1, 2, 2) {
			t.Fatalf("selection lost: %s %v", at, ok)
		}
		if g.Message() != ErrInvalidTarget.Error() {
			t.Fatalf("message = %q", g.Message())
		}
		if g.Encode() != before || g.Turn() != White {
			t.Fatalf("invalid target changed the game")
		}
	})

	t.Run("PlayRejectsOpponentPiece", func(t *testing.T) {
		if err := g.Play(sq(6, 0, 0), sq(5, 0, 0)); !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("err=%v", err)
		}
		if g.Phase() != SelectPiece {
			t.Fatalf("phase = %s", g.Phase())
		}
	})
}

func TestInvalidTargetMessageIsTransient(t *testing.T) {
	g := NewGame()

	t.Run("ClearedByMove", func(t *testing.T) {
		if act, _ := g.Select(sq(1, 0, 0)); act != ActionSelected {
			t.Fatalf("select: %s", act)
		}
		if _, err := g.Select(sq(5, 5, 5)); !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("err=%v", err)
		}
		if g.Message() != ErrInvalidTarget.Error() {
			t.Fatalf("message = %q", g.Message())
		}
		if act, err := g.Select(sq(2, 0, 0)); err != nil || act != ActionMoved {
			t.Fatalf("move: act=%s err=%v", act, err)
		}
		if g.Turn() != Black || g.Message() != "" {
			t.Fatalf("after move: turn=%s message=%q", g.Turn(), g.Message())
		}
	})

	t.Run("ClearedByDeselect", func(t *testing.T) {
		if act, _ := g.Select(sq(6, 0, 0)); act != ActionSelected {
			t.Fatalf("select: %s", act)
		}
		if _, err := g.Select(sq(2, 5, 5)); !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("err=%v", err)
		}
		if act, _ := g.Select(sq(6, 0, 0)); act != ActionDeselected {
			t.Fatalf("deselect: %s", act)
		}
		if g.Phase() != SelectPiece || g.Message() != "" {
			t.Fatalf("after deselect: phase=%s message=%q", g.Phase(), g.Message())
		}
	})

	t.Run("FailedPlayKeepsMessage", func(t *testing.T) {
		if err := g.Play(sq(6, 0, 0), sq(2, 0, 0)); !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("err=%v", err)
		}
		if g.Message() != ErrInvalidTarget.Error() {
			t.Fatalf("message = %q", g.Message())
		}
		mustPlay(t, g, sq(6, 0, 0), sq(5, 0, 0))
		if g.Message() != "" {
			t.Fatalf("message after move = %q", g.Message())
		}
	})
}

func TestCheckFlagsAndMovingIntoCheckIsAllowed(t *testing.T) {
	pos := emptyPosition(White)
	place(t, pos, sq(0, 0, 0), King, White)
	place(t, pos, sq(2, 7, 0), Rook, White)
	place(t, pos, sq(7, 7, 7), King, Black)

	g := NewGameFromPosition(pos)
	if g.InCheck(Black) || g.InCheck(White) {
		t.Fatalf("nobody should be in check yet")
	}

	mustPlay(t, g, sq(2, 7, 0), sq(7, 7, 0))
	if !g.InCheck(Black) {
		t.Fatalf("black king should be in check")
	}
	if g.InCheck(White) {
		t.Fatalf("white king should not be in check")
	}
	var blackStatus CheckStatus
	for _, st := range g.Checks() {
		if st.Color == Black {
			blackStatus = st
		}
	}
	if diff := cmp.Diff([]Square{sq(7, 7, 0)}, blackStatus.Attackers); diff != "" {
		t.Fatalf("attackers mismatch (-want +got):\n%s", diff)
	}

	// 不拦截送将：黑王可以沿着被控制的线走
	mustPlay(t, g, sq(7, 7, 7), sq(7, 7, 6))
	if !g.InCheck(Black) {
		t.Fatalf("black king should still be in check")
	}
	if diff := cmp.Diff([]KingEntry{{ID: idFor(sq(7, 7, 7)), At: sq(7, 7, 6)}}, g.Kings(Black)); diff != "" {
		t.Fatalf("registry mismatch (-want +got):\n%s", diff)
	}
}

func TestStartResetsAnytime(t *testing.T) {
	want := NewInitialPosition().Encode()

	g := NewGame()
	mustPlay(t, g, sq(1, 4, 4), sq(3, 4, 4))
	if _, err := g.Select(sq(6, 0, 0)); err != nil {
		t.Fatalf("select: %v", err)
	}
	g.Start()
	if g.Encode() != want || g.Turn() != White || g.Phase() != SelectPiece {
		t.Fatalf("reset mid-game failed: %s %s", g.Turn(), g.Phase())
	}

	pos := emptyPosition(White)
	place(t, pos, sq(0, 0, 0), Queen, White)
	place(t, pos, sq(1, 0, 0), King, Black)
	place(t, pos, sq(7, 7, 7), King, White)
	g = NewGameFromPosition(pos)
	mustPlay(t, g, sq(0, 0, 0), sq(1, 0, 0))
	if !g.Over() {
		t.Fatalf("expected game over")
	}
	g.Start()
	if g.Over() || g.Encode() != want || g.Winner() != NoColor || g.Message() != "" {
		t.Fatalf("reset after game over failed")
	}
	if len(g.Kings(White)) != 4 || len(g.Kings(Black)) != 4 {
		t.Fatalf("want 4 kings a side, got %d/%d", len(g.Kings(White)), len(g.Kings(Black)))
	}
}

func TestPositionWithoutKingsIsAlreadyDecided(t *testing.T) {
	pos := emptyPosition(White)
	place(t, pos, sq(0, 0, 0), King, White)
	g := NewGameFromPosition(pos)
	if !g.Over() || g.Winner() != White {
		t.Fatalf("position without black kings should be decided, winner=%s", g.Winner())
	}
}

func TestKingRegistryVerify(t *testing.T) {
	b := NewInitialBoard()
	kr := NewKingRegistry(&b)
	if err := kr.Verify(&b); err != nil {
		t.Fatalf("fresh registry: %v", err)
	}
	if kr.Count(White) != 4 || kr.Count(Black) != 4 {
		t.Fatalf("want 4 kings each, got %d/%d", kr.Count(White), kr.Count(Black))
	}

	k := kr.Live(White)[0]
	king := b.Get(k.At)
	b.Clear(k.At)
	b.Set(sq(3, 3, 3), king)
	if err := kr.Verify(&b); !errors.Is(err, ErrKingRegistry) {
		t.Fatalf("moved king without relocating: err=%v", err)
	}
	kr.relocate(White, k.ID, sq(3, 3, 3))
	if err := kr.Verify(&b); err != nil {
		t.Fatalf("after relocate: %v", err)
	}

	b.Place(sq(4, 4, 4), King, Black)
	if err := kr.Verify(&b); !errors.Is(err, ErrKingRegistry) {
		t.Fatalf("unregistered king: err=%v", err)
	}
}

func TestInitialPieceIdentitiesAreUnique(t *testing.T) {
	b := NewInitialBoard()
	seen := make(map[string]Square)
	count := 0
	for s := Square(0); s < NumCells; s++ {
		pc := b.Cells[s]
		if pc.Empty() {
			if l := s.Level(); l != 2 && l != 3 && l != 4 && l != 5 {
				t.Fatalf("empty cell %s on a starting level", s)
			}
			continue
		}
		count++
		tag := pc.Tag()
		if prev, dup := seen[tag]; dup {
			t.Fatalf("identity %s used at %s and %s", tag, prev, s)
		}
		seen[tag] = s
	}
	if count != 256 {
		t.Fatalf("got %d pieces, want 256", count)
	}
	if tag := b.Get(sq(0, 3, 3)).Tag(); tag != "K_L0R3F3" {
		t.Fatalf("tag = %q", tag)
	}
}
