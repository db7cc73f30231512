package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// Phase represents the coarse progress marker of a game
type Phase string

const (
	PhaseBidding     Phase = "BID"    // Players are placing bids
	PhaseRoundResult Phase = "RESULT" // Round results are being shown
)

// PlayerSummary is the finalized per-player summary, written at finish time
type PlayerSummary struct {
	Name        string `json:"name"`
	CardID      string `json:"cardId,omitempty"`
	Photo       string `json:"photo,omitempty"`
	Score       int    `json:"score"`
	Wins        int    `json:"wins"`
	TotalRounds int    `json:"totalRounds"`
	TotalBids   int    `json:"totalBids"`
	Zeros       int    `json:"zeros"`
}

// LivePlayer is a player's transient in-progress entry inside the live state
type LivePlayer struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Bid         *int   `json:"bid"`
	TempResult  *int   `json:"tempRes"`
	Wins        int    `json:"wins"`
	TotalRounds int    `json:"totalRounds"`
	TotalBids   int    `json:"totalBids"`
	Zeros       int    `json:"zeros"`
	Streak      int    `json:"streak"`
	LastDelta   int    `json:"lastDelta"`
	CardID      string `json:"cardId,omitempty"`
	Photo       string `json:"photo,omitempty"`
}

// HistorySnapshot is one player's contribution within a completed round
type HistorySnapshot struct {
	Name       string `json:"name"`
	CardID     string `json:"cardId,omitempty"`
	Bid        *int   `json:"bid,omitempty"`
	TempResult *int   `json:"tempRes,omitempty"`
	Score      int    `json:"score"`
}

// HistoryEntry is one finalized round appended to the live state log.
// The log only grows; entries are never reordered or removed.
type HistoryEntry struct {
	Round   int               `json:"round"`
	Players []HistorySnapshot `json:"players"`
}

// LiveState is the client-owned mutable progress document for a game.
// The server stores, merges and replays it but never evaluates game rules.
type LiveState struct {
	Players                 []LivePlayer   `json:"players"`
	Round                   int            `json:"round"`
	Phase                   Phase          `json:"phase"`
	OrderIndices            []int          `json:"orderIndices"`
	PendingChaos            bool           `json:"pendingChaos"`
	PendingChaosLastIdx     *int           `json:"pendingChaosLastIdx"`
	CurrentMayhemMultiplier int            `json:"currentMayhemMultiplier"`
	MayhemRounds            []MayhemRound  `json:"mayhemRounds"`
	JokerRounds             []JokerRound   `json:"jokerRounds"`
	TeamUpRounds            []TeamUpRound  `json:"teamUpRounds"`
	TeamPairs               [][]int        `json:"teamPairs"`
	SelectedPlayerCards     []string       `json:"selectedPlayerCards"`
	History                 []HistoryEntry `json:"history"`
}

// GameRecord is one persisted game session.
// Special rounds are assigned once at creation and never change; after
// finalization the record is read-only apart from stats queries.
type GameRecord struct {
	GameID  GameID `json:"gameId"`
	OwnerID UserID `json:"userId"`

	Date   time.Time `json:"date"`
	Rounds int       `json:"rounds,omitempty"`

	// Finalized summary, written only by Finalize
	Players []PlayerSummary `json:"players"`

	// Flat legacy encoding of mayhem rounds (bare round numbers)
	MayhemRounds []int         `json:"mayhemRounds"`
	JokerRounds  []JokerRound  `json:"jokerRounds,omitempty"`
	TeamUpRounds []TeamUpRound `json:"teamUpRounds,omitempty"`

	CurrentRound int   `json:"currentRound"`
	Phase        Phase `json:"phase"`

	LiveState LiveState `json:"gameState"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Finished reports whether the record has been finalized
func (g *GameRecord) Finished() bool {
	return g.Rounds > 0 && g.Phase == PhaseRoundResult
}

// FindSummary returns the finalized summary entry for a card, or nil
func (g *GameRecord) FindSummary(cardID string) *PlayerSummary {
	for i := range g.Players {
		if g.Players[i].CardID == cardID {
			return &g.Players[i]
		}
	}
	return nil
}
