package board

import "github.com/dylhunn/dragontoothmg"

// Precomputed attack masks for the leapers; sliders go through dragontoothmg.
var knightMasks [64]uint64
var kingMasks [64]uint64

// pawnAttacks[c][sq] holds the squares a pawn of color c (0 white, 1 black)
// standing on sq attacks.
var pawnAttacks [2][64]uint64

func init() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		file, rank := sq%8, sq/8
		knightMasks[sq] = offsetMask(file, rank, knightOffsets[:])
		kingMasks[sq] = offsetMask(file, rank, kingOffsets[:])
		pawnAttacks[0][sq] = offsetMask(file, rank, [][2]int{{1, -1}, {1, 1}})
		pawnAttacks[1][sq] = offsetMask(file, rank, [][2]int{{-1, -1}, {-1, 1}})
	}
}

// offsetMask collects the on-board squares at (rank, file) offsets.
func offsetMask(file, rank int, offsets [][2]int) uint64 {
	var mask uint64
	for _, off := range offsets {
		r, f := rank+off[0], file+off[1]
		if r >= 0 && r < 8 && f >= 0 && f < 8 {
			mask |= uint64(1) << (r*8 + f)
		}
	}
	return mask
}

// IsSquareAttacked reports whether any piece of the given color attacks sq.
func (p *Position) IsSquareAttacked(sq Square, byWhite bool) bool {
	return p.attackers(sq, byWhite) != 0
}

// IsAttackedByOpponent reports whether the opponent of the side to move
// attacks sq.
func (p *Position) IsAttackedByOpponent(sq Square) bool {
	return p.IsSquareAttacked(sq, !p.b.Wtomove)
}

// attackers returns the bitboard of the given side's pieces attacking sq.
func (p *Position) attackers(sq Square, byWhite bool) uint64 {
	by := p.side(byWhite)
	occ := p.b.White.All | p.b.Black.All

	// A white pawn attacks sq from exactly the squares a black pawn on sq
	// would attack, and vice versa.
	victim := 0
	if byWhite {
		victim = 1
	}
	hits := pawnAttacks[victim][sq] & by.Pawns
	hits |= knightMasks[sq] & by.Knights
	hits |= kingMasks[sq] & by.Kings
	hits |= dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ) & (by.Bishops | by.Queens)
	hits |= dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ) & (by.Rooks | by.Queens)
	return hits
}
