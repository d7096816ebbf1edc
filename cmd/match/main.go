package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"chess-bot/archive"
	"chess-bot/engine"
	"chess-bot/match"
	"chess-bot/player"
)

type tally struct {
	wins, losses, draws int
}

func main() {
	white := flag.String("white", "heuristic", "white player ("+strings.Join(player.Names(), ", ")+")")
	black := flag.String("black", "random", "black player")
	games := flag.Int("games", 1, "number of games to play")
	seed := flag.Uint64("seed", 1, "base random seed; game i uses seed+2i and seed+2i+1")
	fen := flag.String("fen", "", "start position (defaults to the initial position)")
	maxPlies := flag.Int("maxplies", match.DefaultMaxPlies, "adjudicate a draw after this many plies")
	alternate := flag.Bool("alternate", false, "swap colors every other game")
	parallel := flag.Int("parallel", runtime.GOMAXPROCS(0), "games played at the same time")
	dbDir := flag.String("db", "", "archive games and player stats in this directory")
	pgnFile := flag.String("pgn", "", "write all games to this PGN file")
	weightsFile := flag.String("weights", "", "JSON file with scoring weights for the heuristic player")
	verbose := flag.Bool("v", false, "log every ply")
	flag.Parse()

	if *games <= 0 {
		log.Fatalf("-games must be > 0")
	}
	weights := engine.DefaultWeights()
	if *weightsFile != "" {
		var err error
		if weights, err = engine.LoadWeights(*weightsFile); err != nil {
			log.Fatalf("load weights: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := make([]*match.Game, *games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*parallel, 1))
	for i := 0; i < *games; i++ {
		i := i
		g.Go(func() error {
			wName, bName := *white, *black
			if *alternate && i%2 == 1 {
				wName, bName = bName, wName
			}
			s := *seed + 2*uint64(i)
			wp, err := newPlayer(wName, s, weights)
			if err != nil {
				return err
			}
			bp, err := newPlayer(bName, s+1, weights)
			if err != nil {
				return err
			}

			opts := match.Options{
				Event:    "chess-bot match",
				Round:    i + 1,
				StartFEN: *fen,
				MaxPlies: *maxPlies,
			}
			if *verbose {
				opts.Logf = func(format string, args ...any) {
					log.Printf("game %d: "+format, append([]any{i + 1}, args...)...)
				}
			}
			game, err := match.Play(ctx, wp, bp, opts)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = game
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("match: %v", err)
	}

	scores := map[string]*tally{}
	for _, game := range results {
		fmt.Printf("Game %d: %s vs %s: %s (%s, %d plies)\n",
			game.Round, game.White, game.Black, game.Result, game.Termination, len(game.Moves))
		count(scores, game)
	}
	names := maps.Keys(scores)
	slices.Sort(names)
	fmt.Println("\nPlayer \t\tWins \tLosses \tDraws")
	for _, name := range names {
		t := scores[name]
		fmt.Printf("%-12s \t%d \t%d \t%d\n", name, t.wins, t.losses, t.draws)
	}

	if *pgnFile != "" {
		var sb strings.Builder
		for i, game := range results {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(game.PGN())
		}
		if err := os.WriteFile(*pgnFile, []byte(sb.String()), 0o644); err != nil {
			log.Fatalf("write pgn: %v", err)
		}
	}

	if *dbDir != "" {
		if err := archiveGames(*dbDir, results); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

func newPlayer(name string, seed uint64, w engine.Weights) (player.Player, error) {
	p, err := player.ByName(name, seed)
	if err != nil {
		return nil, err
	}
	if h, ok := p.(*player.Heuristic); ok {
		h.Engine.SetWeights(w)
	}
	return p, nil
}

func count(scores map[string]*tally, game *match.Game) {
	for _, name := range []string{game.White, game.Black} {
		if scores[name] == nil {
			scores[name] = &tally{}
		}
	}
	switch winner := game.Winner(); {
	case game.Result == match.Draw:
		scores[game.White].draws++
		scores[game.Black].draws++
	case winner == game.White:
		scores[game.White].wins++
		scores[game.Black].losses++
	case winner == game.Black:
		scores[game.Black].wins++
		scores[game.White].losses++
	}
}

// archiveGames saves the games in round order and prints the all-time
// standings kept in the archive.
func archiveGames(dir string, games []*match.Game) error {
	store, err := archive.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, game := range games {
		id, err := store.SaveGame(game)
		if err != nil {
			return err
		}
		log.Printf("archived game %d as #%d", game.Round, id)
	}

	all, err := store.AllStats()
	if err != nil {
		return err
	}
	fmt.Println("\nAll-time \tGames \tWins \tLosses \tDraws \tScore")
	for _, st := range all {
		fmt.Printf("%-12s \t%d \t%d \t%d \t%d \t%.3f\n", st.Name, st.Games, st.Wins, st.Losses, st.Draws, st.Score())
	}
	return nil
}
