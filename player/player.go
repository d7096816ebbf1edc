// Package player wraps move choosers behind one interface so they can be
// paired against each other.
package player

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"chess-bot/board"
	"chess-bot/engine"
)

// Player chooses one of the legal moves of pos. pos must be unchanged when
// Choose returns.
type Player interface {
	Name() string
	Choose(pos *board.Position, moves []board.Move) (board.Move, error)
}

// Heuristic plays with the single-ply engine.
type Heuristic struct {
	Engine *engine.Engine
}

func NewHeuristic(seed uint64) *Heuristic {
	return &Heuristic{Engine: engine.NewSeeded(seed)}
}

func (h *Heuristic) Name() string { return "heuristic" }

func (h *Heuristic) Choose(pos *board.Position, moves []board.Move) (board.Move, error) {
	return h.Engine.Decide(pos, moves)
}

// Random plays a uniformly random legal move.
type Random struct {
	rng engine.Source
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Choose(pos *board.Position, moves []board.Move) (board.Move, error) {
	if len(moves) == 0 {
		return board.NullMove, engine.ErrNoLegalMoves
	}
	return moves[r.rng.Intn(len(moves))], nil
}

// Proximity takes the first move that mates or captures. Otherwise it
// prefers moving pieces close to its own king early in the game and far
// from it after ply 60, with a little noise.
type Proximity struct {
	rng engine.Source
}

const proximityFlipPly = 60

func NewProximity(seed uint64) *Proximity {
	return &Proximity{rng: rand.New(rand.NewSource(seed))}
}

func (p *Proximity) Name() string { return "proximity" }

func (p *Proximity) Choose(pos *board.Position, moves []board.Move) (board.Move, error) {
	if len(moves) == 0 {
		return board.NullMove, engine.ErrNoLegalMoves
	}

	king := int(pos.KingSquare(pos.WhiteToMove()))
	sign := 1
	if pos.PlyCount() >= proximityFlipPly {
		sign = -1
	}
	values := make([]int, len(moves))
	for i, m := range moves {
		values[i] = p.rng.Intn(3) - engine.Abs(int(m.From())-king)*sign
	}

	for _, m := range moves {
		var mate bool
		pos.Simulate(m, func() { mate = pos.InCheckmate() })
		if mate || m.IsCapture() {
			return m, nil
		}
	}

	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return moves[best], nil
}

// Factory builds a player from a seed.
type Factory func(seed uint64) Player

var registry = map[string]Factory{
	"heuristic": func(seed uint64) Player { return NewHeuristic(seed) },
	"random":    func(seed uint64) Player { return NewRandom(seed) },
	"proximity": func(seed uint64) Player { return NewProximity(seed) },
}

// Names lists the registered player names in sorted order.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// ByName builds the named player.
func ByName(name string, seed uint64) (Player, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("player: unknown player %q (have %s)", name, strings.Join(Names(), ", "))
	}
	return f(seed), nil
}
