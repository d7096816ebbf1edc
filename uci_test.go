package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"chess-bot/board"
	"chess-bot/engine"
)

func run(t *testing.T, u *uci, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	u.out = &out
	u.loop(strings.NewReader(strings.Join(script, "\n")))
	return out.String()
}

func TestUCIHandshake(t *testing.T) {
	out := run(t, newUCI(nil, 0), "uci", "isready", "quit", "isready")
	if !strings.Contains(out, "uciok\n") {
		t.Fatalf("missing uciok:\n%s", out)
	}
	if strings.Count(out, "readyok") != 1 {
		t.Fatalf("commands after quit must be ignored:\n%s", out)
	}
}

func TestUCIGoFindsMate(t *testing.T) {
	out := run(t, newUCI(nil, 3),
		"position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
		"go wtime 1000 btime 1000 winc 0 binc 0",
	)
	if !strings.Contains(out, "bestmove a1a8\n") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestUCIPositionMoves(t *testing.T) {
	u := newUCI(nil, 0)
	out := run(t, u, "position startpos moves e2e4 e7e5 g1f3", "d")
	pos := board.New()
	for _, mv := range []string{"e2e4", "e7e5", "g1f3"} {
		m, err := pos.ParseMove(mv)
		if err != nil {
			t.Fatalf("parse %s: %v", mv, err)
		}
		pos.Apply(m)
	}
	want := pos.FEN()
	if !strings.HasPrefix(want, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq") {
		t.Fatalf("unexpected reference position %s", want)
	}
	if !strings.Contains(out, want) {
		t.Fatalf("d: got\n%s\nwant %s", out, want)
	}

	// A bad move leaves the previous position in place.
	out = run(t, u, "position startpos moves e2e5", "d")
	if !strings.Contains(out, "not found") || !strings.Contains(out, want) {
		t.Fatalf("illegal move handling:\n%s", out)
	}
}

func TestUCINoLegalMoves(t *testing.T) {
	out := run(t, newUCI(nil, 0), "position fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", "go")
	if !strings.Contains(out, "bestmove 0000\n") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestUCIScores(t *testing.T) {
	out := run(t, newUCI(nil, 0), "position startpos", "scores")
	if n := strings.Count(out, "info string move "); n != 20 {
		t.Fatalf("scores: %d lines, want 20:\n%s", n, out)
	}
	if !strings.Contains(out, "san Nf3") || !strings.Contains(out, "info string max") {
		t.Fatalf("scores output:\n%s", out)
	}
}

func TestUCISetOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.json")
	w := engine.DefaultWeights()
	w.CheckBonus = 1
	if err := engine.SaveWeights(path, w); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}

	u := newUCI(nil, 0)
	out := run(t, u,
		"setoption name WeightsFile value "+path,
		"setoption name StrictMateFirst value true",
		"setoption name Seed value 42",
		"setoption name Bogus value 1",
	)
	if got := u.eng.Weights().CheckBonus; got != 1 {
		t.Fatalf("weights not loaded: CheckBonus=%d", got)
	}
	if !u.eng.StrictMateFirst() || u.seed != 42 {
		t.Fatalf("options lost after reseed: strict=%v seed=%d", u.eng.StrictMateFirst(), u.seed)
	}
	if !strings.Contains(out, "Unknown option Bogus") {
		t.Fatalf("got:\n%s", out)
	}
}

func TestUCIRejectsBadFEN(t *testing.T) {
	out := run(t, newUCI(nil, 0), "position fen 4k3/8/8/8/8/8/8/4K3 w - z9 0 1", "d", "go")
	if !strings.Contains(out, "Invalid fen position") {
		t.Fatalf("got:\n%s", out)
	}
	if !strings.Contains(out, "fen "+board.New().FEN()) || !strings.Contains(out, "bestmove ") {
		t.Fatalf("previous position not kept:\n%s", out)
	}
}
