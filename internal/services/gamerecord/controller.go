package gamerecord

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/kunalgolani-work/kachuful-backend/internal/dependencies/clock"
	"github.com/kunalgolani-work/kachuful-backend/internal/model"
	"github.com/kunalgolani-work/kachuful-backend/internal/services/schedule"
	"github.com/kunalgolani-work/kachuful-backend/internal/storage"
)

// ListLimit caps how many records a list query returns
const ListLimit = 50

// Seat describes one participant at game creation time
type Seat struct {
	Name   string `json:"name"`
	CardID string `json:"cardId,omitempty"`
	Photo  string `json:"photo,omitempty"`
}

// LiveStatePatch is a field-level last-writer-wins patch of the live state.
// A nil field means "not mentioned" and never clears the stored value; in
// particular an omitted players array or history keeps the stored ones.
type LiveStatePatch struct {
	Players                 []model.LivePlayer   `json:"players"`
	Round                   *int                 `json:"round"`
	Phase                   *model.Phase         `json:"phase"`
	OrderIndices            []int                `json:"orderIndices"`
	PendingChaos            *bool                `json:"pendingChaos"`
	PendingChaosLastIdx     *int                 `json:"pendingChaosLastIdx"`
	CurrentMayhemMultiplier *int                 `json:"currentMayhemMultiplier"`
	MayhemRounds            []model.MayhemRound  `json:"mayhemRounds"`
	JokerRounds             []model.JokerRound   `json:"jokerRounds"`
	TeamUpRounds            []model.TeamUpRound  `json:"teamUpRounds"`
	TeamPairs               [][]int              `json:"teamPairs"`
	SelectedPlayerCards     []string             `json:"selectedPlayerCards"`
	History                 []model.HistoryEntry `json:"history"`
}

// StatePatch is an incremental update to a game record
type StatePatch struct {
	LiveState    *LiveStatePatch `json:"gameState"`
	CurrentRound *int            `json:"currentRound"`
	Phase        *model.Phase    `json:"phase"`
}

// Controller owns create/merge/finalize on game records and hides the
// legacy special-round encoding from all readers.
type Controller struct {
	storage   storage.Storage
	scheduler *schedule.Scheduler
	clock     clock.Clock
	logger    *slog.Logger
}

// NewController creates a new game record controller
func NewController(store storage.Storage, scheduler *schedule.Scheduler, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage:   store,
		scheduler: scheduler,
		clock:     clk,
		logger:    logger,
	}
}

// Create initializes and persists a new game record. Special rounds are
// scheduled exactly once here and are immutable afterwards.
func (c *Controller) Create(ctx context.Context, ownerID model.UserID, seats []Seat) (*model.GameRecord, error) {
	if len(seats) == 0 {
		return nil, model.ErrNoPlayers
	}

	special := c.scheduler.Schedule(len(seats))
	now := c.clock.Now()
	gameID := model.GameID(uuid.NewString())

	summaries := make([]model.PlayerSummary, len(seats))
	live := make([]model.LivePlayer, len(seats))
	for i, seat := range seats {
		summaries[i] = model.PlayerSummary{
			Name:   seat.Name,
			CardID: seat.CardID,
			Photo:  seat.Photo,
		}
		live[i] = model.LivePlayer{
			Name:   seat.Name,
			CardID: seat.CardID,
			Photo:  seat.Photo,
		}
	}

	record := &model.GameRecord{
		GameID:       gameID,
		OwnerID:      ownerID,
		Date:         now,
		Players:      summaries,
		MayhemRounds: special.MayhemRoundNumbers(),
		JokerRounds:  special.Joker,
		TeamUpRounds: special.TeamUp,
		CurrentRound: 1,
		Phase:        model.PhaseBidding,
		LiveState: model.LiveState{
			Players:                 live,
			Round:                   1,
			Phase:                   model.PhaseBidding,
			OrderIndices:            []int{},
			PendingChaos:            false,
			PendingChaosLastIdx:     nil,
			CurrentMayhemMultiplier: 1,
			MayhemRounds:            special.Mayhem,
			JokerRounds:             special.Joker,
			TeamUpRounds:            special.TeamUp,
			TeamPairs:               [][]int{},
			SelectedPlayerCards:     []string{},
			History:                 []model.HistoryEntry{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, record); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.String("owner_id", string(ownerID)),
		slog.Int("player_count", len(seats)),
		slog.Int("mayhem_rounds", len(special.Mayhem)),
		slog.Int("joker_rounds", len(special.Joker)),
		slog.Int("team_up_rounds", len(special.TeamUp)),
	)

	return record, nil
}

// Get retrieves a single record for the owner, normalized
func (c *Controller) Get(ctx context.Context, ownerID model.UserID, gameID model.GameID) (*model.GameRecord, error) {
	record, err := c.storage.GetGame(ctx, ownerID, gameID)
	if err != nil {
		return nil, err
	}
	return normalizedCopy(record), nil
}

// List returns the owner's records, most recent first, capped at ListLimit.
// An optional gameID narrows the result to that record.
func (c *Controller) List(ctx context.Context, ownerID model.UserID, gameID model.GameID) ([]*model.GameRecord, error) {
	records, err := c.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if gameID != "" {
		filtered := records[:0]
		for _, r := range records {
			if r.GameID == gameID {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	if len(records) > ListLimit {
		records = records[:ListLimit]
	}
	return records, nil
}

// ListAll returns every record of the owner, most recent first and
// normalized. Stats replay the full history, so there is no cap here.
func (c *Controller) ListAll(ctx context.Context, ownerID model.UserID) ([]*model.GameRecord, error) {
	records, err := c.storage.ListGames(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	out := make([]*model.GameRecord, len(records))
	for i, r := range records {
		out[i] = normalizedCopy(r)
	}
	return out, nil
}

// Active returns the owner's most recently created in-play record, or nil
// when the owner has no record in a live phase.
func (c *Controller) Active(ctx context.Context, ownerID model.UserID) (*model.GameRecord, error) {
	records, err := c.storage.ListGames(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var active *model.GameRecord
	for _, r := range records {
		if r.LiveState.Phase != model.PhaseBidding && r.LiveState.Phase != model.PhaseRoundResult {
			continue
		}
		if active == nil || r.CreatedAt.After(active.CreatedAt) {
			active = r
		}
	}

	if active == nil {
		return nil, nil
	}
	return normalizedCopy(active), nil
}

// MergeState applies an incremental client patch to a record's live state.
// Every live-state field present in the patch replaces the stored value;
// unmentioned fields, especially the special-round sets and history, are
// explicitly preserved. currentRound and phase update only when present,
// and a phase update is mirrored into the live state.
func (c *Controller) MergeState(ctx context.Context, ownerID model.UserID, gameID model.GameID, patch StatePatch) (*model.GameRecord, error) {
	record, err := c.storage.GetGame(ctx, ownerID, gameID)
	if err != nil {
		return nil, err
	}

	if patch.LiveState != nil {
		mergeLiveState(&record.LiveState, patch.LiveState)
	}
	if patch.CurrentRound != nil {
		record.CurrentRound = *patch.CurrentRound
	}
	if patch.Phase != nil {
		record.Phase = *patch.Phase
		record.LiveState.Phase = *patch.Phase
	}
	record.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, record); err != nil {
		return nil, err
	}

	return normalizedCopy(record), nil
}

func mergeLiveState(state *model.LiveState, patch *LiveStatePatch) {
	if patch.Players != nil {
		state.Players = patch.Players
	}
	if patch.Round != nil {
		state.Round = *patch.Round
	}
	if patch.Phase != nil {
		state.Phase = *patch.Phase
	}
	if patch.OrderIndices != nil {
		state.OrderIndices = patch.OrderIndices
	}
	if patch.PendingChaos != nil {
		state.PendingChaos = *patch.PendingChaos
	}
	if patch.PendingChaosLastIdx != nil {
		state.PendingChaosLastIdx = patch.PendingChaosLastIdx
	}
	if patch.CurrentMayhemMultiplier != nil {
		state.CurrentMayhemMultiplier = *patch.CurrentMayhemMultiplier
	}
	if patch.MayhemRounds != nil {
		state.MayhemRounds = patch.MayhemRounds
	}
	if patch.JokerRounds != nil {
		state.JokerRounds = patch.JokerRounds
	}
	if patch.TeamUpRounds != nil {
		state.TeamUpRounds = patch.TeamUpRounds
	}
	if patch.TeamPairs != nil {
		state.TeamPairs = patch.TeamPairs
	}
	if patch.SelectedPlayerCards != nil {
		state.SelectedPlayerCards = patch.SelectedPlayerCards
	}
	if patch.History != nil {
		state.History = patch.History
	}
}

// Finalize copies the live player entries into the record's summary, locks
// the phase at RESULT and appends the game to the owner's finished-game
/// references. Both writes are idempotent: a repeated finalize neither
// duplicates the reference nor changes the summary beyond the new inputs.
func (c *Controller) Finalize(ctx context.Context, ownerID model.UserID, gameID model.GameID, rounds int, mayhem []model.MayhemRound) (*model.GameRecord, error) {
	record, err := c.storage.GetGame(ctx, ownerID, gameID)
	if err != nil {
		return nil, err
	}

	record.Rounds = rounds
	record.MayhemRounds = resolveMayhemNumbers(mayhem, record)

	if len(record.LiveState.MayhemRounds) == 0 {
		rebuilt := make([]model.MayhemRound, len(record.MayhemRounds))
		for i, r := range record.MayhemRounds {
			rebuilt[i] = model.MayhemRound{Round: r, Multiplier: model.DefaultMayhemMultiplier}
		}
		record.LiveState.MayhemRounds = rebuilt
	}

	summaries := make([]model.PlayerSummary, len(record.LiveState.Players))
	for i, p := range record.LiveState.Players {
		summaries[i] = model.PlayerSummary{
			Name:        p.Name,
			CardID:      p.CardID,
			Photo:       p.Photo,
			Score:       p.Score,
			Wins:        p.Wins,
			TotalRounds: p.TotalRounds,
			TotalBids:   p.TotalBids,
			Zeros:       p.Zeros,
		}
	}
	record.Players = summaries

	record.Phase = model.PhaseRoundResult
	record.LiveState.Phase = model.PhaseRoundResult
	record.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, record); err != nil {
		return nil, err
	}

	// Separate write with no atomicity guarantee against the save above;
	// the membership check keeps a replay safe.
	user, err := c.storage.GetUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !user.HasGame(gameID) {
		user.Games = append(user.Games, gameID)
		user.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveUser(ctx, user); err != nil {
			return nil, err
		}
	}

	c.logger.Info("game finalized",
		slog.String("game_id", string(gameID)),
		slog.String("owner_id", string(ownerID)),
		slog.Int("rounds", rounds),
	)

	return record, nil
}

// Delete removes a record outright, for abandoning a session that will
// never be finished. Finished games referenced from the owner keep their
// reference; the stats replay simply no longer finds the record.
func (c *Controller) Delete(ctx context.Context, ownerID model.UserID, gameID model.GameID) error {
	if _, err := c.storage.GetGame(ctx, ownerID, gameID); err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, ownerID, gameID); err != nil {
		return err
	}

	c.logger.Info("game deleted",
		slog.String("game_id", string(gameID)),
		slog.String("owner_id", string(ownerID)),
	)
	return nil
}

// resolveMayhemNumbers reconciles the flat mayhem list at finalize time:
// the request wins when present, then the live state, then whatever the
// record already holds.
func resolveMayhemNumbers(fromRequest []model.MayhemRound, record *model.GameRecord) []int {
	if len(fromRequest) > 0 {
		nums := make([]int, len(fromRequest))
		for i, m := range fromRequest {
			nums[i] = m.Round
		}
		return nums
	}

	if len(record.LiveState.MayhemRounds) > 0 {
		nums := make([]int, len(record.LiveState.MayhemRounds))
		for i, m := range record.LiveState.MayhemRounds {
			nums[i] = m.Round
		}
		return nums
	}

	if record.MayhemRounds == nil {
		return []int{}
	}
	return record.MayhemRounds
}
