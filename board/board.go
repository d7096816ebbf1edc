// Package board adapts github.com/dylhunn/dragontoothmg to the operations the
// move-selection engine needs: legal move enumeration, square and piece
// queries, attack detection, paired apply/undo and game-status predicates.
package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// Startpos is the FEN of the standard initial position.
const Startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// PieceType is a colorless piece kind. The ordering matches dragontoothmg so
// the two convert with a plain type conversion.
type PieceType uint8

const (
	None   PieceType = 0
	Pawn   PieceType = 1
	Knight PieceType = 2
	Bishop PieceType = 3
	Rook   PieceType = 4
	Queen  PieceType = 5
	King   PieceType = 6
)

var pieceLetters = [7]byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Square is a board index, 0 = a1 ... 63 = h8.
type Square uint8

func (sq Square) Rank() int { return int(sq) / 8 }
func (sq Square) File() int { return int(sq) % 8 }

func (sq Square) String() string {
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// SquareAt builds a square from zero-based file and rank.
func SquareAt(file, rank int) Square { return Square(rank*8 + file) }

// ErrInvalidFEN is wrapped by every FromFEN parse failure.
var ErrInvalidFEN = errors.New("invalid fen")

// Position is the mutable game state. It is not safe for concurrent use:
// apply/undo calls must nest strictly (LIFO).
type Position struct {
	b dragontoothmg.Board

	// Hashes of every position reached since the position was created, the
	// current one last. Used for repetition draws.
	history []uint64
}

// New returns the initial position.
func New() *Position {
	p, err := FromFEN(Startpos)
	if err != nil {
		panic(err)
	}
	return p
}

// FromFEN parses a FEN string. The halfmove and fullmove fields may be
// omitted and default to "0 1".
func FromFEN(fen string) (p *Position, err error) {
	fields := strings.Fields(fen)
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	}
	if len(fields) != 6 {
		return nil, fmt.Errorf("board: %w: expected 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	if err := validatePlacement(fields[0]); err != nil {
		return nil, fmt.Errorf("board: %w: %v", ErrInvalidFEN, err)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return nil, fmt.Errorf("board: %w: bad side to move %q", ErrInvalidFEN, fields[1])
	}
	if err := validateState(fields[2:]); err != nil {
		return nil, fmt.Errorf("board: %w: %v", ErrInvalidFEN, err)
	}

	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("board: %w: %v", ErrInvalidFEN, r)
		}
	}()
	p = &Position{b: dragontoothmg.ParseFen(strings.Join(fields, " "))}
	if p.b.White.Kings == 0 || p.b.Black.Kings == 0 {
		return nil, fmt.Errorf("board: %w: position has no king after parsing", ErrInvalidFEN)
	}
	p.history = append(p.history, p.b.Hash())
	return p, nil
}

// MustFromFEN is FromFEN for fixtures; it panics on invalid input.
func MustFromFEN(fen string) *Position {
	p, err := FromFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// validateState checks the castling, en passant, halfmove and fullmove
// fields.
func validateState(fields []string) error {
	castling, ep, half, full := fields[0], fields[1], fields[2], fields[3]
	if castling != "-" {
		for _, c := range castling {
			if !strings.ContainsRune("KQkq", c) || strings.Count(castling, string(c)) > 1 {
				return fmt.Errorf("bad castling rights %q", castling)
			}
		}
	}
	if ep != "-" && (len(ep) != 2 || ep[0] < 'a' || ep[0] > 'h' || (ep[1] != '3' && ep[1] != '6')) {
		return fmt.Errorf("bad en passant square %q", ep)
	}
	if _, err := strconv.ParseUint(half, 10, 8); err != nil {
		return fmt.Errorf("bad halfmove clock %q", half)
	}
	if _, err := strconv.ParseUint(full, 10, 16); err != nil {
		return fmt.Errorf("bad fullmove number %q", full)
	}
	return nil
}

func validatePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	kings := map[rune]int{}
	for i, rank := range ranks {
		width := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				width += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				width++
				if c == 'k' || c == 'K' {
					kings[c]++
				}
			default:
				return fmt.Errorf("bad piece %q on rank %d", c, 8-i)
			}
		}
		if width != 8 {
			return fmt.Errorf("rank %d has %d files", 8-i, width)
		}
	}
	if kings['K'] != 1 || kings['k'] != 1 {
		return errors.New("each side needs exactly one king")
	}
	return nil
}

// FEN serializes the position.
func (p *Position) FEN() string { return p.b.ToFen() }

// Hash returns the Zobrist key of the position.
func (p *Position) Hash() uint64 { return p.b.Hash() }

// WhiteToMove reports whether white is the side to move.
func (p *Position) WhiteToMove() bool { return p.b.Wtomove }

// HalfmoveClock is the number of plies since the last capture or pawn move.
func (p *Position) HalfmoveClock() int { return int(p.b.Halfmoveclock) }

// PlyCount is the number of half-moves played since the start of the game,
// derived from the fullmove number and the side to move.
func (p *Position) PlyCount() int {
	full := int(p.b.Fullmoveno)
	if full < 1 {
		full = 1
	}
	ply := 2 * (full - 1)
	if !p.b.Wtomove {
		ply++
	}
	return ply
}

// Clone returns an independent copy of the position.
func (p *Position) Clone() *Position {
	c := &Position{b: p.b}
	c.history = append([]uint64(nil), p.history...)
	return c
}

func (p *Position) side(white bool) *dragontoothmg.Bitboards {
	if white {
		return &p.b.White
	}
	return &p.b.Black
}

// PieceAt returns the piece kind on sq and its color. An empty square
// reports None.
func (p *Position) PieceAt(sq Square) (PieceType, bool) {
	mask := uint64(1) << sq
	switch {
	case p.b.White.All&mask != 0:
		return pieceTypeAt(mask, &p.b.White), true
	case p.b.Black.All&mask != 0:
		return pieceTypeAt(mask, &p.b.Black), false
	}
	return None, false
}

func pieceTypeAt(mask uint64, bb *dragontoothmg.Bitboards) PieceType {
	switch {
	case bb.Pawns&mask != 0:
		return Pawn
	case bb.Knights&mask != 0:
		return Knight
	case bb.Bishops&mask != 0:
		return Bishop
	case bb.Rooks&mask != 0:
		return Rook
	case bb.Queens&mask != 0:
		return Queen
	case bb.Kings&mask != 0:
		return King
	}
	return None
}

// Count returns how many pieces of the given kind the side owns.
func (p *Position) Count(kind PieceType, white bool) int {
	return bits.OnesCount64(pieceBitboard(p.side(white), kind))
}

func pieceBitboard(bb *dragontoothmg.Bitboards, kind PieceType) uint64 {
	switch kind {
	case Pawn:
		return bb.Pawns
	case Knight:
		return bb.Knights
	case Bishop:
		return bb.Bishops
	case Rook:
		return bb.Rooks
	case Queen:
		return bb.Queens
	case King:
		return bb.Kings
	}
	return 0
}

// Squares lists the squares occupied by the side's pieces, a1 first.
func (p *Position) Squares(white bool) []Square {
	occ := p.side(white).All
	out := make([]Square, 0, bits.OnesCount64(occ))
	for x := occ; x != 0; x &= x - 1 {
		out = append(out, Square(bits.TrailingZeros64(x)))
	}
	return out
}

// KingSquare returns the square of the side's king.
func (p *Position) KingSquare(white bool) Square {
	return Square(bits.TrailingZeros64(p.side(white).Kings))
}
