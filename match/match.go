// Package match plays complete games between two players and records them.
package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chess-bot/board"
	"chess-bot/player"
)

// DefaultMaxPlies adjudicates endless games as draws.
const DefaultMaxPlies = 500

var (
	ErrIllegalChoice = errors.New("match: player chose an illegal move")
	ErrBoardMutated  = errors.New("match: player left the board modified")
)

type Result string

const (
	WhiteWins  Result = "1-0"
	BlackWins  Result = "0-1"
	Draw       Result = "1/2-1/2"
	Unfinished Result = "*"
)

type Termination string

const (
	Checkmate            Termination = "checkmate"
	Stalemate            Termination = "stalemate"
	FiftyMoveRule        Termination = "fifty-move rule"
	ThreefoldRepetition  Termination = "threefold repetition"
	InsufficientMaterial Termination = "insufficient material"
	PlyLimit             Termination = "ply limit"
	Aborted              Termination = "aborted"
)

// Game is the record of one played game.
type Game struct {
	Event       string      `json:"event"`
	Round       int         `json:"round"`
	White       string      `json:"white"`
	Black       string      `json:"black"`
	StartFEN    string      `json:"start_fen"`
	StartPly    int         `json:"start_ply"`
	Moves       []string    `json:"moves"`
	SAN         []string    `json:"san"`
	FinalFEN    string      `json:"final_fen"`
	Result      Result      `json:"result"`
	Termination Termination `json:"termination"`
	Started     time.Time   `json:"started"`
	Finished    time.Time   `json:"finished"`
}

// Winner returns the name of the winning player, or "" for a draw or an
// unfinished game.
func (g *Game) Winner() string {
	switch g.Result {
	case WhiteWins:
		return g.White
	case BlackWins:
		return g.Black
	}
	return ""
}

type Options struct {
	Event    string
	Round    int
	StartFEN string // empty means the standard start position
	MaxPlies int    // zero means DefaultMaxPlies

	// Logf, when set, receives one line per ply.
	Logf func(format string, args ...any)
}

// Play runs one game to completion. The context is checked between moves; on
// cancellation the partial game is returned with its error.
func Play(ctx context.Context, white, black player.Player, opts Options) (*Game, error) {
	fen := opts.StartFEN
	if fen == "" {
		fen = board.Startpos
	}
	pos, err := board.FromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("match: start position: %w", err)
	}
	maxPlies := opts.MaxPlies
	if maxPlies <= 0 {
		maxPlies = DefaultMaxPlies
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	g := &Game{
		Event:    opts.Event,
		Round:    opts.Round,
		White:    white.Name(),
		Black:    black.Name(),
		StartFEN: pos.FEN(),
		StartPly: pos.PlyCount(),
		Result:   Unfinished,
		Started:  time.Now(),
	}
	finish := func(r Result, t Termination) {
		g.Result, g.Termination = r, t
		g.FinalFEN = pos.FEN()
		g.Finished = time.Now()
	}

	for {
		if err := ctx.Err(); err != nil {
			finish(Unfinished, Aborted)
			return g, err
		}

		moves := pos.LegalMoves()
		if r, t, over := adjudicate(pos, moves); over {
			finish(r, t)
			return g, nil
		}
		if len(g.Moves) >= maxPlies {
			finish(Draw, PlyLimit)
			return g, nil
		}

		mover := white
		if !pos.WhiteToMove() {
			mover = black
		}
		hash := pos.Hash()
		m, err := mover.Choose(pos, moves)
		if err != nil {
			finish(Unfinished, Aborted)
			return g, fmt.Errorf("match: %s: %w", mover.Name(), err)
		}
		if pos.Hash() != hash {
			finish(Unfinished, Aborted)
			return g, fmt.Errorf("%w: %s", ErrBoardMutated, mover.Name())
		}
		if !contains(moves, m) {
			finish(Unfinished, Aborted)
			return g, fmt.Errorf("%w: %s played %v", ErrIllegalChoice, mover.Name(), m)
		}

		san := pos.SAN(m)
		g.Moves = append(g.Moves, m.String())
		g.SAN = append(g.SAN, san)
		pos.Apply(m)
		logf("%s ply %d: %s %s", mover.Name(), len(g.Moves), m, san)
	}
}

// adjudicate reports whether the game is over in pos.
func adjudicate(pos *board.Position, moves []board.Move) (Result, Termination, bool) {
	if len(moves) == 0 {
		if !pos.InCheck() {
			return Draw, Stalemate, true
		}
		if pos.WhiteToMove() {
			return BlackWins, Checkmate, true
		}
		return WhiteWins, Checkmate, true
	}
	switch {
	case pos.IsFiftyMoveDraw():
		return Draw, FiftyMoveRule, true
	case pos.IsThreefold():
		return Draw, ThreefoldRepetition, true
	case pos.IsInsufficientMaterial():
		return Draw, InsufficientMaterial, true
	}
	return Unfinished, "", false
}

func contains(moves []board.Move, m board.Move) bool {
	for _, legal := range moves {
		if legal == m {
			return true
		}
	}
	return false
}
