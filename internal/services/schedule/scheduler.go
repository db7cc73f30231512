package schedule

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kunalgolani-work/kachuful-backend/internal/dependencies/random"
	"github.com/kunalgolani-work/kachuful-backend/internal/model"
)

// Spacing and horizon constants for special-round placement.
// Rounds 5-8 apart keep the specials from crowding each other.
const (
	minGap        = 5
	maxGap        = 8
	firstRound    = 2
	typicalRounds = 20
	maxHorizon    = 28
)

var suits = []model.Suit{model.SuitSpades, model.SuitHearts, model.SuitClubs, model.SuitDiamonds}

var ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

var suitSymbols = map[model.Suit]string{
	model.SuitSpades:   "♠",
	model.SuitHearts:   "♥",
	model.SuitClubs:    "♣",
	model.SuitDiamonds: "♦",
}

// Scheduler produces the complete special-round assignment for a new game.
// Later categories exclude the rounds of all earlier ones, so the three
// sets are pairwise disjoint by construction.
type Scheduler struct {
	pool   *Pool
	random random.Random
	logger *slog.Logger
}

// New creates a new Scheduler
func New(rnd random.Random, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		pool:   NewPool(rnd),
		random: rnd,
		logger: logger,
	}
}

// Schedule assigns mayhem, joker and team-up rounds for a game with the
// given player count. Team-up rounds only occur for even player counts.
func (s *Scheduler) Schedule(playerCount int) model.SpecialRounds {
	hi := min(typicalRounds, maxHorizon)

	mayhem := s.scheduleMayhem(hi)
	joker := s.scheduleJoker(mayhem, hi)
	teamUp := s.scheduleTeamUp(playerCount, mayhem, joker, hi)

	assignment := model.SpecialRounds{Mayhem: mayhem, Joker: joker, TeamUp: teamUp}

	s.logger.Info("special rounds scheduled",
		slog.Int("player_count", playerCount),
		slog.Int("mayhem", len(mayhem)),
		slog.Int("joker", len(joker)),
		slog.Int("team_up", len(teamUp)),
	)

	return assignment
}

func (s *Scheduler) scheduleMayhem(hi int) []model.MayhemRound {
	count := s.random.IntRange(2, 3)
	rounds := s.pool.Place(count, nil, firstRound, hi, minGap, maxGap)
	if len(rounds) < count {
		s.logger.Warn("mayhem placement degraded",
			slog.Int("wanted", count),
			slog.Int("placed", len(rounds)),
		)
	}

	mayhem := make([]model.MayhemRound, len(rounds))
	for i, r := range rounds {
		mayhem[i] = model.MayhemRound{Round: r, Multiplier: model.DefaultMayhemMultiplier}
	}
	return mayhem
}

func (s *Scheduler) scheduleJoker(mayhem []model.MayhemRound, hi int) []model.JokerRound {
	excluded := make(map[int]bool, len(mayhem))
	for _, m := range mayhem {
		excluded[m.Round] = true
	}

	count := s.random.IntRange(1, 2)
	rounds := s.pool.Place(count, excluded, firstRound, hi, minGap, maxGap)

	joker := make([]model.JokerRound, len(rounds))
	for i, r := range rounds {
		joker[i] = s.jokerCard(r)
	}
	return joker
}

func (s *Scheduler) scheduleTeamUp(playerCount int, mayhem []model.MayhemRound, joker []model.JokerRound, hi int) []model.TeamUpRound {
	if playerCount%2 != 0 {
		return nil
	}

	excluded := make(map[int]bool, len(mayhem)+len(joker))
	for _, m := range mayhem {
		excluded[m.Round] = true
	}
	for _, j := range joker {
		excluded[j.Round] = true
	}

	rounds := s.pool.Place(1, excluded, firstRound, hi, minGap, maxGap)

	teamUp := make([]model.TeamUpRound, len(rounds))
	for i, r := range rounds {
		teamUp[i] = model.TeamUpRound{Round: r}
	}
	return teamUp
}

// jokerCard pairs a round with a uniformly random playing card identity:
// 4 suits x 13 ranks, 52 equally likely outcomes.
func (s *Scheduler) jokerCard(round int) model.JokerRound {
	suit := suits[s.random.Pick(len(suits))]
	rank := ranks[s.random.Pick(len(ranks))]

	return model.JokerRound{
		Round:  round,
		Suit:   suit,
		Rank:   rank,
		Label:  fmt.Sprintf("%s of %s", rank, titleCase(string(suit))),
		Symbol: suitSymbols[suit],
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
