package model

import "encoding/json"

// Suit is one of the four playing-card suits
type Suit string

const (
	SuitSpades   Suit = "spades"
	SuitHearts   Suit = "hearts"
	SuitClubs    Suit = "clubs"
	SuitDiamonds Suit = "diamonds"
)

// MayhemRound marks a round where a score multiplier applies
type MayhemRound struct {
	Round      int `json:"round"`
	Multiplier int `json:"multiplier"`
}

// DefaultMayhemMultiplier is the fixed multiplier applied on mayhem rounds
const DefaultMayhemMultiplier = 2

// UnmarshalJSON accepts both the current object encoding and the historical
// bare-number encoding, which is upgraded with the default multiplier.
func (m *MayhemRound) UnmarshalJSON(data []byte) error {
	var round int
	if err := json.Unmarshal(data, &round); err == nil {
		m.Round = round
		m.Multiplier = DefaultMayhemMultiplier
		return nil
	}

	type plain MayhemRound
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = MayhemRound(p)
	if m.Multiplier == 0 {
		m.Multiplier = DefaultMayhemMultiplier
	}
	return nil
}

// JokerRound marks a round associated with a randomly chosen playing card
type JokerRound struct {
	Round  int    `json:"round"`
	Suit   Suit   `json:"suit"`
	Rank   string `json:"rank"`
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
}

// TeamUpRound marks the round where players pair up (even player counts only)
type TeamUpRound struct {
	Round int `json:"round"`
}

// SpecialRounds is the complete special-round assignment for a game,
// fixed at creation time.
type SpecialRounds struct {
	Mayhem []MayhemRound
	Joker  []JokerRound
	TeamUp []TeamUpRound
}

// MayhemRoundNumbers returns the bare round numbers of the mayhem set
func (s SpecialRounds) MayhemRoundNumbers() []int {
	nums := make([]int, len(s.Mayhem))
	for i, m := range s.Mayhem {
		nums[i] = m.Round
	}
	return nums
}
