package match_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"chess-bot/board"
	"chess-bot/match"
	"chess-bot/player"
)

// scripted plays a fixed list of UCI moves.
type scripted struct {
	name  string
	moves []string
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) Choose(pos *board.Position, _ []board.Move) (board.Move, error) {
	if len(s.moves) == 0 {
		return board.NullMove, fmt.Errorf("%s: out of moves", s.name)
	}
	text := s.moves[0]
	s.moves = s.moves[1:]
	return pos.ParseMove(text)
}

type cheater struct{}

func (cheater) Name() string { return "cheater" }

func (cheater) Choose(*board.Position, []board.Move) (board.Move, error) {
	return board.New().ParseMove("e2e4")
}

type mutator struct{}

func (mutator) Name() string { return "mutator" }

func (mutator) Choose(pos *board.Position, moves []board.Move) (board.Move, error) {
	pos.Apply(moves[0])
	return moves[0], nil
}

func TestPlay_FoolsMate(t *testing.T) {
	white := &scripted{name: "w", moves: []string{"f2f3", "g2g4"}}
	black := &scripted{name: "b", moves: []string{"e7e5", "d8h4"}}

	g, err := match.Play(context.Background(), white, black, match.Options{Event: "test", Round: 3})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.Result != match.BlackWins || g.Termination != match.Checkmate {
		t.Fatalf("got %s by %s", g.Result, g.Termination)
	}
	if g.Winner() != "b" {
		t.Fatalf("Winner: got %q", g.Winner())
	}
	if got := strings.Join(g.SAN, " "); got != "f3 e5 g4 Qh4#" {
		t.Fatalf("SAN: %s", got)
	}
	if got := strings.Join(g.Moves, " "); got != "f2f3 e7e5 g2g4 d8h4" {
		t.Fatalf("moves: %s", got)
	}

	pgn := g.PGN()
	for _, want := range []string{
		`[Event "test"]`,
		`[Round "3"]`,
		`[White "w"]`,
		`[Black "b"]`,
		`[Result "0-1"]`,
		"1. f3 e5 2. g4 Qh4# 0-1\n",
	} {
		if !strings.Contains(pgn, want) {
			t.Fatalf("PGN missing %q:\n%s", want, pgn)
		}
	}
	if strings.Contains(pgn, "[FEN") {
		t.Fatalf("standard start must not carry a FEN tag:\n%s", pgn)
	}
}

func TestPlay_HeuristicMatesInOne(t *testing.T) {
	const fen = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	g, err := match.Play(context.Background(), player.NewHeuristic(1), player.NewRandom(1), match.Options{StartFEN: fen})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.Result != match.WhiteWins || g.Termination != match.Checkmate {
		t.Fatalf("got %s by %s", g.Result, g.Termination)
	}
	if len(g.SAN) != 1 || g.SAN[0] != "Ra8#" {
		t.Fatalf("SAN: %v", g.SAN)
	}
	pgn := g.PGN()
	if !strings.Contains(pgn, `[SetUp "1"]`) || !strings.Contains(pgn, `[FEN "`+fen+`"]`) {
		t.Fatalf("PGN missing setup tags:\n%s", pgn)
	}
}

func TestPlay_BlackToMoveNumbering(t *testing.T) {
	white := &scripted{name: "w"}
	black := &scripted{name: "b", moves: []string{"a8a1"}}
	g, err := match.Play(context.Background(), white, black, match.Options{StartFEN: "r5k1/8/8/8/8/8/5PPP/6K1 b - - 0 1"})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.Result != match.BlackWins {
		t.Fatalf("got %s by %s", g.Result, g.Termination)
	}
	if !strings.Contains(g.PGN(), "1... Ra1# 0-1\n") {
		t.Fatalf("PGN:\n%s", g.PGN())
	}
}

func TestPlay_Stalemate(t *testing.T) {
	g, err := match.Play(context.Background(), player.NewRandom(1), player.NewRandom(2),
		match.Options{StartFEN: "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.Result != match.Draw || g.Termination != match.Stalemate || len(g.Moves) != 0 {
		t.Fatalf("got %s by %s after %d plies", g.Result, g.Termination, len(g.Moves))
	}
}

func TestPlay_Threefold(t *testing.T) {
	white := &scripted{name: "w", moves: []string{"g1f3", "f3g1", "g1f3", "f3g1"}}
	black := &scripted{name: "b", moves: []string{"g8f6", "f6g8", "g8f6", "f6g8"}}
	g, err := match.Play(context.Background(), white, black, match.Options{})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.Termination != match.ThreefoldRepetition || len(g.Moves) != 8 {
		t.Fatalf("got %s after %d plies", g.Termination, len(g.Moves))
	}
	if g.Result != match.Draw || g.Winner() != "" {
		t.Fatalf("got result %s winner %q", g.Result, g.Winner())
	}
}

func TestPlay_PlyLimit(t *testing.T) {
	white := &scripted{name: "w", moves: []string{"g1f3", "f3g1", "g1f3", "f3g1"}}
	black := &scripted{name: "b", moves: []string{"g8f6", "f6g8", "g8f6", "f6g8"}}
	g, err := match.Play(context.Background(), white, black, match.Options{MaxPlies: 6})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.Termination != match.PlyLimit || g.Result != match.Draw || len(g.Moves) != 6 {
		t.Fatalf("got %s by %s after %d plies", g.Result, g.Termination, len(g.Moves))
	}
}

func TestPlay_RejectsBadPlayers(t *testing.T) {
	const fen = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	_, err := match.Play(context.Background(), cheater{}, player.NewRandom(1), match.Options{StartFEN: fen})
	if !errors.Is(err, match.ErrIllegalChoice) {
		t.Fatalf("cheater: got %v", err)
	}
	g, err := match.Play(context.Background(), mutator{}, player.NewRandom(1), match.Options{StartFEN: fen})
	if !errors.Is(err, match.ErrBoardMutated) {
		t.Fatalf("mutator: got %v", err)
	}
	if g.Result != match.Unfinished {
		t.Fatalf("aborted game must be unfinished, got %s", g.Result)
	}
}

func TestPlay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, err := match.Play(ctx, player.NewRandom(1), player.NewRandom(2), match.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v want context.Canceled", err)
	}
	if g.Result != match.Unfinished || g.Termination != match.Aborted {
		t.Fatalf("got %s by %s", g.Result, g.Termination)
	}
}

func TestPlay_InvalidStart(t *testing.T) {
	if _, err := match.Play(context.Background(), player.NewRandom(1), player.NewRandom(2),
		match.Options{StartFEN: "not a fen"}); !errors.Is(err, board.ErrInvalidFEN) {
		t.Fatalf("got %v want ErrInvalidFEN", err)
	}
}

func TestPlay_RandomGamesFinish(t *testing.T) {
	for seed := uint64(1); seed <= 4; seed++ {
		g, err := match.Play(context.Background(), player.NewHeuristic(seed), player.NewProximity(seed), match.Options{MaxPlies: 200})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if g.Result == match.Unfinished || len(g.Moves) != len(g.SAN) || len(g.Moves) > 200 {
			t.Fatalf("seed %d: %s by %s, %d moves / %d san", seed, g.Result, g.Termination, len(g.Moves), len(g.SAN))
		}
		if g.FinalFEN == "" || g.Finished.Before(g.Started) {
			t.Fatalf("seed %d: incomplete record %+v", seed, g)
		}
	}
}
