package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// ErrIllegalMove is returned when move text names no legal move.
var ErrIllegalMove = errors.New("illegal move")

const (
	flagCastle uint8 = 1 << iota
	flagEnPassant
)

// Move is an immutable legal move decorated with the piece information of the
// position it was generated from.
type Move struct {
	raw       dragontoothmg.Move
	piece     PieceType
	captured  PieceType
	promotion PieceType
	flags     uint8
}

// NullMove is the zero Move; it is never returned by move generation.
var NullMove Move

func (m Move) From() Square { return Square(m.raw.From()) }
func (m Move) To() Square   { return Square(m.raw.To()) }

// Piece is the kind of the moving piece.
func (m Move) Piece() PieceType { return m.piece }

// Captured is the kind of the captured piece, Pawn for en passant and None
// for quiet moves.
func (m Move) Captured() PieceType { return m.captured }

// Promotion is the promoted-to kind, None if the move is not a promotion.
func (m Move) Promotion() PieceType { return m.promotion }

func (m Move) IsCapture() bool   { return m.captured != None }
func (m Move) IsPromotion() bool { return m.promotion != None }
func (m Move) IsCastle() bool    { return m.flags&flagCastle != 0 }
func (m Move) IsEnPassant() bool { return m.flags&flagEnPassant != 0 }

// Raw exposes the underlying dragontoothmg encoding.
func (m Move) Raw() dragontoothmg.Move { return m.raw }

// String returns the move in UCI long algebraic notation (e2e4, e7e8q).
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += strings.ToLower(string(pieceLetters[m.promotion]))
	}
	return s
}

func (p *Position) decorate(raw dragontoothmg.Move) Move {
	from, to := Square(raw.From()), Square(raw.To())
	piece, _ := p.PieceAt(from)
	captured, _ := p.PieceAt(to)
	m := Move{
		raw:       raw,
		piece:     piece,
		captured:  captured,
		promotion: PieceType(raw.Promote()),
	}
	switch piece {
	case King:
		if d := from.File() - to.File(); d == 2 || d == -2 {
			m.flags |= flagCastle
		}
	case Pawn:
		if from.File() != to.File() && captured == None {
			m.flags |= flagEnPassant
			m.captured = Pawn
		}
	}
	return m
}

// LegalMoves enumerates the legal moves of the side to move in generator
// order.
func (p *Position) LegalMoves() []Move {
	raw := p.b.GenerateLegalMoves()
	moves := make([]Move, len(raw))
	for i, r := range raw {
		moves[i] = p.decorate(r)
	}
	return moves
}

// LegalCaptures is LegalMoves filtered to capturing moves, en passant
// included.
func (p *Position) LegalCaptures() []Move {
	raw := p.b.GenerateLegalMoves()
	moves := make([]Move, 0, len(raw))
	for _, r := range raw {
		if m := p.decorate(r); m.IsCapture() {
			moves = append(moves, m)
		}
	}
	return moves
}

// ParseMove resolves UCI text against the legal moves of the position.
func (p *Position) ParseMove(text string) (Move, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, m := range p.LegalMoves() {
		if m.String() == text {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("board: %w: %q in %s", ErrIllegalMove, text, p.FEN())
}
