package engine

import "chess-bot/board"

const fullPawnCount = 8

// PieceValues maps a piece kind to its value for one decision. It is built
// once per decision and passed by value, so every scoring call of that
// decision sees the same table.
type PieceValues [7]int

// NewPieceValues builds the table for the given side. Pawns grow more
// valuable as the side loses them.
func NewPieceValues(pos *board.Position, white bool, w Weights) PieceValues {
	missing := fullPawnCount - pos.Count(board.Pawn, white)
	if missing < 0 {
		missing = 0
	}
	return PieceValues{
		board.None:   0,
		board.Pawn:   w.PawnBase + w.PawnPerMissing*missing,
		board.Knight: w.KnightValue,
		board.Bishop: w.BishopValue,
		board.Rook:   w.RookValue,
		board.Queen:  w.QueenValue,
		board.King:   w.KingValue,
	}
}

// Of returns the value of kind.
func (v PieceValues) Of(kind board.PieceType) int { return v[kind] }
