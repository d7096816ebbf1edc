package engine

import "chess-bot/board"

// ScoreMove rates a single candidate move for the side to move. Higher is
// better. The position is unchanged on return.
func ScoreMove(pos *board.Position, m board.Move, white bool, values PieceValues, w Weights) int {
	ply := pos.PlyCount()

	victim, _ := pos.PieceAt(m.To())
	score := values.Of(victim)

	if m.Piece() == board.King {
		from, to := m.From().Rank(), m.To().Rank()
		if (white && to > from) || (!white && to < from) {
			score -= w.KingAdvance - ply
		}
	}
	if m.IsPromotion() {
		score += values.Of(m.Promotion())
	}
	if m.IsCastle() {
		score += w.CastleBonus
	}
	if m.Piece() == board.Pawn {
		score += w.PawnAdvance + ply
	}

	pos.Simulate(m, func() {
		if pos.InCheckmate() {
			score += w.MateBonus
		}
		if pos.InCheck() {
			if m.IsCapture() {
				score += w.CaptureCheckBonus
			} else {
				score += w.CheckBonus
			}
		}
		if pos.IsDraw() {
			score -= w.DrawPenalty
		}
	})

	// The danger probe does its own apply/undo, so it runs on the restored
	// position.
	return score - DangerDelta(pos, m, white, values, w)
}
