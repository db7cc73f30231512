package stats

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/kunalgolani-work/kachuful-backend/internal/model"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/gamerecord"
	"github.com/kunalgolani-work/kachuful-backend/internal/storage"
)

// RecentGameLimit caps how many recent games a stats report includes
const RecentGameLimit = 10

// suitCycle maps a round number onto a suit: suit of round r is
// suitCycle[(r-1) % 4].
var suitCycle = []string{"Spades", "Hearts", "Clubs", "Diamonds"}

// OverallStats accumulates a card's totals across finished games
type OverallStats struct {
	GamesPlayed  int `json:"gamesPlayed"`
	GamesWon     int `json:"gamesWon"`
	TotalRounds  int `json:"totalRounds"`
	TotalWins    int `json:"totalWins"`
	TotalScore   int `json:"totalScore"`
	HighestScore int `json:"highestScore"`
	WinRate      int `json:"winRate"`
	AvgScore     int `json:"avgScore"`
}

// SuitTally counts a card's performance within one suit's rounds
type SuitTally struct {
	Wins        int `json:"wins"`
	Rounds      int `json:"rounds"`
	TotalPoints int `json:"totalPoints"`
}

// SuitStats is the per-suit breakdown with best/worst markers
type SuitStats struct {
	Stats     map[string]*SuitTally `json:"stats"`
	BestSuit  *string               `json:"bestSuit"`
	WorstSuit *string               `json:"worstSuit"`
	BestRate  float64               `json:"bestRate"`
	WorstRate float64               `json:"worstRate"`
}

// RecentGameStats is the queried card's slice of one recent game
type RecentGameStats struct {
	Score       int `json:"score"`
	Wins        int `json:"wins"`
	TotalRounds int `json:"totalRounds"`
	Rank        int `json:"rank"`
}

// RecentGame is one entry of the recent-games list
type RecentGame struct {
	ID           model.GameID          `json:"id"`
	Date         string                `json:"date"`
	Rounds       int                   `json:"rounds"`
	Players      []model.PlayerSummary `json:"players"`
	MayhemRounds []int                 `json:"mayhemRounds"`
	PlayerStats  RecentGameStats       `json:"playerStats"`
}

// Report is the full derived statistics for one player card
type Report struct {
	PlayerCard  model.PlayerCard `json:"playerCard"`
	Overall     OverallStats     `json:"overallStats"`
	Suits       SuitStats        `json:"suitStats"`
	RecentGames []RecentGame     `json:"recentGames"`
}

// Aggregator recomputes player-card statistics by replaying the stored
// round-by-round history of finished games. No stored aggregate is ever
// trusted as source of truth and nothing is cached between calls.
type Aggregator struct {
	storage storage.Storage
	games   *gamerecord.Controller
	logger  *slog.Logger
}

// New creates a new stats aggregator
func New(store storage.Storage, games *gamerecord.Controller, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		storage: store,
		games:   games,
		logger:  logger,
	}
}

// ComputeStats derives the full report for one of the owner's cards.
// Returns model.ErrCardNotFound when the card does not belong to the owner.
// A card with no finished games yields a zeroed report, not an error.
func (a *Aggregator) ComputeStats(ctx context.Context, ownerID model.UserID, cardID string) (*Report, error) {
	user, err := a.storage.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	card := user.FindCard(cardID)
	if card == nil {
		return nil, model.ErrCardNotFound
	}

	games, err := a.finishedGamesForCard(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		PlayerCard:  *card,
		Overall:     a.overall(games, cardID),
		Suits:       a.suits(games, cardID),
		RecentGames: a.recent(games, cardID),
	}

	a.logger.Info("stats computed",
		slog.String("owner_id", string(ownerID)),
		slog.String("card_id", cardID),
		slog.Int("games", report.Overall.GamesPlayed),
	)

	return report, nil
}

// finishedGamesForCard returns the owner's finalized records that include
// the card, most recent first, already normalized by the record read path.
// ListAll rather than List: the listing cap would silently drop older
// games from every ratio.
func (a *Aggregator) finishedGamesForCard(ctx context.Context, ownerID model.UserID, cardID string) ([]*model.GameRecord, error) {
	records, err := a.games.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	matched := make([]*model.GameRecord, 0, len(records))
	for _, r := range records {
		if r.Phase != model.PhaseRoundResult {
			continue
		}
		if r.FindSummary(cardID) != nil {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (a *Aggregator) overall(games []*model.GameRecord, cardID string) OverallStats {
	var o OverallStats

	for _, g := range games {
		player := g.FindSummary(cardID)
		if player == nil {
			continue
		}

		o.GamesPlayed++
		o.TotalRounds += player.TotalRounds
		o.TotalWins += player.Wins
		o.TotalScore += player.Score
		if player.Score > o.HighestScore {
			o.HighestScore = player.Score
		}

		if rankOf(g.Players, cardID) == 1 {
			o.GamesWon++
		}
	}

	if o.GamesPlayed > 0 {
		o.WinRate = int(math.Round(float64(o.GamesWon) / float64(o.GamesPlayed) * 100))
		o.AvgScore = int(math.Round(float64(o.TotalScore) / float64(o.GamesPlayed)))
	}

	return o
}

func (a *Aggregator) suits(games []*model.GameRecord, cardID string) SuitStats {
	tallies := make(map[string]*SuitTally, len(suitCycle))
	for _, name := range suitCycle {
		tallies[name] = &SuitTally{}
	}

	for _, g := range games {
		if g.FindSummary(cardID) == nil {
			continue
		}

		for _, entry := range g.LiveState.History {
			suit := suitCycle[((entry.Round-1)%4+4)%4]
			tally := tallies[suit]
			tally.Rounds++

			snapshot := findSnapshot(entry.Players, cardID)
			if snapshot != nil && snapshot.TempResult != nil && *snapshot.TempResult > 0 {
				tally.Wins++
				tally.TotalPoints += *snapshot.TempResult
			}
		}
	}

	// Best requires a ratio strictly above 0 and worst strictly below 1;
	// zero-round suits never qualify.
	result := SuitStats{Stats: tallies, WorstRate: 0}
	bestRate, worstRate := 0.0, 1.0
	for _, name := range suitCycle {
		tally := tallies[name]
		if tally.Rounds == 0 {
			continue
		}
		rate := float64(tally.Wins) / float64(tally.Rounds)
		if rate > bestRate {
			bestRate = rate
			n := name
			result.BestSuit = &n
		}
		if rate < worstRate {
			worstRate = rate
			n := name
			result.WorstSuit = &n
		}
	}

	if result.BestSuit != nil {
		result.BestRate = bestRate
	}
	if result.WorstSuit != nil {
		result.WorstRate = worstRate
	}

	return result
}

func (a *Aggregator) recent(games []*model.GameRecord, cardID string) []RecentGame {
	limit := min(len(games), RecentGameLimit)

	recent := make([]RecentGame, 0, limit)
	for _, g := range games[:limit] {
		player := g.FindSummary(cardID)

		entry := RecentGame{
			ID:           g.GameID,
			Date:         g.Date.UTC().Format("2006-01-02T15:04:05.000Z"),
			Rounds:       g.Rounds,
			Players:      g.Players,
			MayhemRounds: g.MayhemRounds,
			PlayerStats: RecentGameStats{
				Rank: rankOf(g.Players, cardID),
			},
		}
		if entry.MayhemRounds == nil {
			entry.MayhemRounds = []int{}
		}
		if player != nil {
			entry.PlayerStats.Score = player.Score
			entry.PlayerStats.Wins = player.Wins
			entry.PlayerStats.TotalRounds = player.TotalRounds
		}
		recent = append(recent, entry)
	}
	return recent
}

// rankOf returns the card's 1-indexed position when the game's players are
// sorted by score descending. The sort is stable, so ties keep the original
// player order.
func rankOf(players []model.PlayerSummary, cardID string) int {
	sorted := make([]model.PlayerSummary, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	for i, p := range sorted {
		if p.CardID == cardID {
			return i + 1
		}
	}
	return 0
}

func findSnapshot(players []model.HistorySnapshot, cardID string) *model.HistorySnapshot {
	for i := range players {
		if players[i].CardID == cardID {
			return &players[i]
		}
	}
	return nil
}
