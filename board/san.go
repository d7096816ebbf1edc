package board

import "strings"

// SAN renders m in Standard Algebraic Notation. m must be legal in p.
func (p *Position) SAN(m Move) string {
	var sb strings.Builder

	if m.IsCastle() {
		if m.To() > m.From() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		if m.piece != Pawn {
			sb.WriteByte(pieceLetters[m.piece])
			sb.WriteString(p.disambiguation(m))
		}
		if m.IsCapture() {
			if m.piece == Pawn {
				sb.WriteByte(byte('a' + m.From().File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.To().String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(pieceLetters[m.promotion])
		}
	}

	p.Simulate(m, func() {
		if p.InCheckmate() {
			sb.WriteByte('#')
		} else if p.InCheck() {
			sb.WriteByte('+')
		}
	})
	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell m apart from
// other moves of the same piece kind to the same square.
func (p *Position) disambiguation(m Move) string {
	from := m.From()
	sameFile, sameRank, ambiguous := false, false, false
	for _, other := range p.LegalMoves() {
		if other.To() != m.To() || other.From() == from || other.piece != m.piece {
			continue
		}
		ambiguous = true
		if other.From().File() == from.File() {
			sameFile = true
		}
		if other.From().Rank() == from.Rank() {
			sameRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(byte('a' + from.File()))
	case !sameRank:
		return string(byte('1' + from.Rank()))
	}
	return from.String()
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := p.b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := p.b.Apply(m)
		nodes += Perft(p, depth-1)
		unapply()
	}
	return nodes
}

// PerftDivide reports the perft count below each root move.
func PerftDivide(p *Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for _, m := range p.LegalMoves() {
		undo := p.Apply(m)
		out[m.String()] = Perft(p, depth-1)
		undo()
	}
	return out
}
