package board

import "math/bits"

const fiftyMoveLimit = 100

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.b.OurKingInCheck() }

func (p *Position) hasLegalMoves() bool { return len(p.b.GenerateLegalMoves()) > 0 }

// InCheckmate reports whether the side to move is checkmated.
func (p *Position) InCheckmate() bool { return p.InCheck() && !p.hasLegalMoves() }

// InStalemate reports whether the side to move has no legal move and is not
// in check.
func (p *Position) InStalemate() bool { return !p.InCheck() && !p.hasLegalMoves() }

// IsFiftyMoveDraw reports a fifty-move rule draw.
func (p *Position) IsFiftyMoveDraw() bool { return p.HalfmoveClock() >= fiftyMoveLimit }

// repetitions counts earlier occurrences of the current position, looking
// back no further than the last irreversible move.
func (p *Position) repetitions() int {
	n := len(p.history)
	if n <= 1 {
		return 0
	}
	curr := p.history[n-1]
	start := n - 1 - p.HalfmoveClock()
	if start < 0 {
		start = 0
	}
	count := 0
	for i := start; i < n-1; i++ {
		if p.history[i] == curr {
			count++
		}
	}
	return count
}

// IsRepeatedPosition reports whether the current position has occurred
// before in this game.
func (p *Position) IsRepeatedPosition() bool { return p.repetitions() >= 1 }

// IsThreefold reports a threefold repetition.
func (p *Position) IsThreefold() bool { return p.repetitions() >= 2 }

// IsInsufficientMaterial reports a dead position: bare kings, a single minor
// piece, or one bishop each on the same square color.
func (p *Position) IsInsufficientMaterial() bool {
	w, b := &p.b.White, &p.b.Black
	if w.Pawns|b.Pawns|w.Rooks|b.Rooks|w.Queens|b.Queens != 0 {
		return false
	}
	wMinors := bits.OnesCount64(w.Knights | w.Bishops)
	bMinors := bits.OnesCount64(b.Knights | b.Bishops)
	if wMinors+bMinors <= 1 {
		return true
	}
	if wMinors == 1 && bMinors == 1 && w.Bishops != 0 && b.Bishops != 0 {
		const darkSquares uint64 = 0xAA55AA55AA55AA55
		return (w.Bishops&darkSquares != 0) == (b.Bishops&darkSquares != 0)
	}
	return false
}

// IsDraw reports whether the position counts as drawn for scoring purposes:
// stalemate, the fifty-move rule, insufficient material or any repetition.
func (p *Position) IsDraw() bool {
	return p.IsFiftyMoveDraw() || p.IsInsufficientMaterial() || p.InStalemate() || p.IsRepeatedPosition()
}
