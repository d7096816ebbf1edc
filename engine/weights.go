package engine

import (
	"encoding/json"
	"os"
)

// Weights holds the constants of the move heuristic. DefaultWeights is the
// tuned set; a JSON file may override any subset of fields.
type Weights struct {
	PawnBase       int `json:"pawn_base"`
	PawnPerMissing int `json:"pawn_per_missing"`
	KnightValue    int `json:"knight_value"`
	BishopValue    int `json:"bishop_value"`
	RookValue      int `json:"rook_value"`
	QueenValue     int `json:"queen_value"`
	KingValue      int `json:"king_value"`

	// The king-advance penalty is KingAdvance minus the ply count, so it
	// turns into a bonus late in the game.
	KingAdvance int `json:"king_advance"`
	CastleBonus int `json:"castle_bonus"`
	PawnAdvance int `json:"pawn_advance"`

	MateBonus         int `json:"mate_bonus"`
	CheckBonus        int `json:"check_bonus"`
	CaptureCheckBonus int `json:"capture_check_bonus"`
	DrawPenalty       int `json:"draw_penalty"`

	// Exposure adds ThreatWeight per attacked piece (before) or per available
	// capture (after).
	ThreatWeight int `json:"threat_weight"`
}

func DefaultWeights() Weights {
	return Weights{
		PawnBase:       150,
		PawnPerMissing: 25,
		KnightValue:    300,
		BishopValue:    400,
		RookValue:      500,
		QueenValue:     900,
		KingValue:      1000,

		KingAdvance: 100,
		CastleBonus: 200,
		PawnAdvance: 50,

		MateBonus:         99999,
		CheckBonus:        400,
		CaptureCheckBonus: 200,
		DrawPenalty:       200,

		ThreatWeight: 50,
	}
}

// LoadWeights reads a JSON weights file on top of DefaultWeights, so fields
// missing from the file keep their default.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, err
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return w, err
	}
	return w, nil
}

// SaveWeights writes w as indented JSON, replacing path atomically.
func SaveWeights(path string, w Weights) error {
	b, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
