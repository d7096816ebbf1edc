package archive

import (
	"errors"
	"testing"
	"time"

	"chess-bot/match"
)

func game(white, black string, result match.Result, plies int) *match.Game {
	moves := make([]string, plies)
	for i := range moves {
		moves[i] = "e2e4"
	}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &match.Game{
		White:       white,
		Black:       black,
		Moves:       moves,
		SAN:         moves,
		Result:      result,
		Termination: match.Checkmate,
		Started:     now,
		Finished:    now.Add(time.Minute),
	}
}

func openStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestSaveAndLoadGame(t *testing.T) {
	s := openStore(t, t.TempDir())
	defer s.Close()

	g := game("heuristic", "random", match.WhiteWins, 3)
	id, err := s.SaveGame(g)
	if err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if id != 1 {
		t.Fatalf("first id: got %d want 1", id)
	}
	got, err := s.Game(id)
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if got.White != g.White || got.Black != g.Black || got.Result != g.Result || len(got.Moves) != 3 {
		t.Fatalf("loaded %+v", got)
	}
	if !got.Finished.Equal(g.Finished) {
		t.Fatalf("finished: got %v want %v", got.Finished, g.Finished)
	}

	if _, err := s.Game(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing game: got %v want ErrNotFound", err)
	}
}

func TestStatsAccumulate(t *testing.T) {
	s := openStore(t, "")
	defer s.Close()

	for _, g := range []*match.Game{
		game("heuristic", "random", match.WhiteWins, 10),
		game("random", "heuristic", match.WhiteWins, 20),
		game("heuristic", "proximity", match.Draw, 30),
		game("heuristic", "random", match.Unfinished, 5),
	} {
		if _, err := s.SaveGame(g); err != nil {
			t.Fatalf("SaveGame: %v", err)
		}
	}

	h, err := s.Stats("heuristic")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := Stats{Name: "heuristic", Games: 3, Wins: 1, Losses: 1, Draws: 1, AsWhite: 2, Plies: 60}
	h.LastPlayed = time.Time{}
	if h != want {
		t.Fatalf("heuristic: got %+v want %+v", h, want)
	}
	if sc := h.Score(); sc != 0.5 {
		t.Fatalf("score: got %v want 0.5", sc)
	}

	all, err := s.AllStats()
	if err != nil {
		t.Fatalf("AllStats: %v", err)
	}
	var names []string
	for _, st := range all {
		names = append(names, st.Name)
	}
	if len(names) != 3 || names[0] != "heuristic" || names[1] != "proximity" || names[2] != "random" {
		t.Fatalf("AllStats names: %v", names)
	}

	unknown, err := s.Stats("nobody")
	if err != nil || unknown.Games != 0 || unknown.Score() != 0 {
		t.Fatalf("unknown player: %+v, %v", unknown, err)
	}
}

func TestReopenKeepsGamesAndIDs(t *testing.T) {
	dir := t.TempDir()
	s := openStore(t, dir)
	for i := 0; i < 3; i++ {
		if _, err := s.SaveGame(game("a", "b", match.BlackWins, 1)); err != nil {
			t.Fatalf("SaveGame: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s = openStore(t, dir)
	defer s.Close()
	ids, err := s.GameIDs()
	if err != nil {
		t.Fatalf("GameIDs: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[2] != 3 {
		t.Fatalf("ids after reopen: %v", ids)
	}
	id, err := s.SaveGame(game("a", "b", match.Draw, 1))
	if err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if id <= 3 {
		t.Fatalf("id %d reused after reopen", id)
	}
	b, _ := s.Stats("b")
	if b.Wins != 3 || b.Draws != 1 {
		t.Fatalf("b stats after reopen: %+v", b)
	}
}
