package engine

import "chess-bot/board"

// ActiveSquares lists the squares occupied by the given side.
func ActiveSquares(pos *board.Position, white bool) []board.Square {
	return pos.Squares(white)
}

// ExposureBefore measures how exposed the side to move is right now: the
// value of its most valuable attacked piece plus ThreatWeight per attacked
// square.
func ExposureBefore(pos *board.Position, squares []board.Square, values PieceValues, w Weights) int {
	worst, attacked := 0, 0
	for _, sq := range squares {
		if !pos.IsAttackedByOpponent(sq) {
			continue
		}
		kind, _ := pos.PieceAt(sq)
		if v := values.Of(kind); v > worst {
			worst = v
		}
		attacked++
	}
	return worst + w.ThreatWeight*attacked
}

// ExposureAfter measures the exposure of the side that just moved, from the
// opponent's legal captures in the current position: the most valuable
// capturable piece plus ThreatWeight per capture.
func ExposureAfter(pos *board.Position, values PieceValues, w Weights) int {
	worst, captures := 0, 0
	for _, m := range pos.LegalCaptures() {
		if v := values.Of(m.Captured()); v > worst {
			worst = v
		}
		captures++
	}
	return worst + w.ThreatWeight*captures
}

// DangerDelta is the change in the mover's exposure caused by m. Positive
// means m leaves more material hanging than before. The position is
// unchanged on return.
func DangerDelta(pos *board.Position, m board.Move, white bool, values PieceValues, w Weights) int {
	before := ExposureBefore(pos, ActiveSquares(pos, white), values, w)
	var after int
	pos.Simulate(m, func() {
		after = ExposureAfter(pos, values, w)
	})
	return after - before
}
