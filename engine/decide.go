// Package engine picks a move for the side to move with a one-ply heuristic:
// take the first mating or capturing move, otherwise score every legal move
// and choose uniformly among the best.
package engine

import (
	"errors"

	"golang.org/x/exp/rand"

	"chess-bot/board"
)

// ErrNoLegalMoves is returned when there is no move to choose from.
var ErrNoLegalMoves = errors.New("engine: no legal moves")

// Engine is not safe for concurrent use; its random source is unlocked.
type Engine struct {
	rng             Source
	weights         Weights
	strictMateFirst bool
}

// New returns an engine with DefaultWeights drawing ties from rng.
func New(rng Source) *Engine {
	return &Engine{rng: rng, weights: DefaultWeights()}
}

// NewSeeded returns an engine backed by a PCG source with the given seed.
func NewSeeded(seed uint64) *Engine {
	return New(rand.New(rand.NewSource(seed)))
}

func (e *Engine) Weights() Weights      { return e.weights }
func (e *Engine) SetWeights(w Weights)  { e.weights = w }
func (e *Engine) SetRand(rng Source)    { e.rng = rng }
func (e *Engine) StrictMateFirst() bool { return e.strictMateFirst }

// SetStrictMateFirst makes the shortcut look for a mate among all moves
// before accepting a capture. By default the first move that either mates or
// captures wins, in generator order.
func (e *Engine) SetStrictMateFirst(on bool) { e.strictMateFirst = on }

// ScoredMove pairs a legal move with its heuristic score.
type ScoredMove struct {
	Move  board.Move
	Score int
}

// ScoreList is aligned with the move order it was built from.
type ScoreList []ScoredMove

func (l ScoreList) Scores() []int {
	out := make([]int, len(l))
	for i, sm := range l {
		out[i] = sm.Score
	}
	return out
}

// Max returns the highest score. l must not be empty.
func (l ScoreList) Max() int {
	max := l[0].Score
	for _, sm := range l[1:] {
		if sm.Score > max {
			max = sm.Score
		}
	}
	return max
}

// Think decides among all legal moves of pos.
func (e *Engine) Think(pos *board.Position) (board.Move, error) {
	return e.Decide(pos, pos.LegalMoves())
}

// Decide picks one of moves, which must be the legal moves of pos in
// generator order. pos is left exactly as it was.
func (e *Engine) Decide(pos *board.Position, moves []board.Move) (board.Move, error) {
	if len(moves) == 0 {
		return board.NullMove, ErrNoLegalMoves
	}
	if m, ok := e.shortcut(pos, moves); ok {
		return m, nil
	}
	list := e.Evaluate(pos, moves)
	return list[SelectIndex(e.rng, list.Scores(), list.Max())].Move, nil
}

// Evaluate scores every move with one piece-value table.
func (e *Engine) Evaluate(pos *board.Position, moves []board.Move) ScoreList {
	white := pos.WhiteToMove()
	values := NewPieceValues(pos, white, e.weights)
	list := make(ScoreList, len(moves))
	for i, m := range moves {
		list[i] = ScoredMove{Move: m, Score: ScoreMove(pos, m, white, values, e.weights)}
	}
	return list
}

// shortcut returns the first move that mates or captures.
func (e *Engine) shortcut(pos *board.Position, moves []board.Move) (board.Move, bool) {
	if e.strictMateFirst {
		for _, m := range moves {
			if mates(pos, m) {
				return m, true
			}
		}
		for _, m := range moves {
			if m.IsCapture() {
				return m, true
			}
		}
		return board.NullMove, false
	}
	for _, m := range moves {
		if mates(pos, m) || m.IsCapture() {
			return m, true
		}
	}
	return board.NullMove, false
}

func mates(pos *board.Position, m board.Move) bool {
	var mate bool
	pos.Simulate(m, func() { mate = pos.InCheckmate() })
	return mate
}
