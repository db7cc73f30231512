package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case []Game:
		o.printGameList(v)
	case FinishResult:
		o.printFinishResult(v)
	case []Card:
		o.printCardList(v)
	case StatsReport:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	PlayerCards []Card `json:"playerCards"`
}

// AuthResult combines user and token
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Card response type
type Card struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}

// PlayerSummary response type
type PlayerSummary struct {
	Name   string `json:"name"`
	CardID string `json:"cardId,omitempty"`
	Score  int    `json:"score"`
	Wins   int    `json:"wins"`
}

// LiveState holds just the live fields the CLI renders
type LiveState struct {
	Round int    `json:"round"`
	Phase string `json:"phase"`
}

// Game response type
type Game struct {
	GameID       string          `json:"gameId"`
	Date         string          `json:"date"`
	Rounds       int             `json:"rounds"`
	Players      []PlayerSummary `json:"players"`
	MayhemRounds []int           `json:"mayhemRounds"`
	CurrentRound int             `json:"currentRound"`
	Phase        string          `json:"phase"`
	LiveState    *LiveState      `json:"gameState"`
}

// FinishResult response type
type FinishResult struct {
	Message string `json:"message"`
	Game    Game   `json:"game"`
}

// OverallStats response type
type OverallStats struct {
	GamesPlayed  int `json:"gamesPlayed"`
	GamesWon     int `json:"gamesWon"`
	TotalRounds  int `json:"totalRounds"`
	TotalWins    int `json:"totalWins"`
	HighestScore int `json:"highestScore"`
	WinRate      int `json:"winRate"`
	AvgScore     int `json:"avgScore"`
}

// SuitTally response type
type SuitTally struct {
	Wins        int `json:"wins"`
	Rounds      int `json:"rounds"`
	TotalPoints int `json:"totalPoints"`
}

// SuitStats response type
type SuitStats struct {
	Stats     map[string]SuitTally `json:"stats"`
	BestSuit  *string              `json:"bestSuit"`
	WorstSuit *string              `json:"worstSuit"`
}

// RecentGame response type
type RecentGame struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Rounds int    `json:"rounds"`
	PlayerStats struct {
		Score int `json:"score"`
		Rank  int `json:"rank"`
	} `json:"playerStats"`
}

// StatsReport response type
type StatsReport struct {
	PlayerCard  Card         `json:"playerCard"`
	Overall     OverallStats `json:"overallStats"`
	Suits       SuitStats    `json:"suitStats"`
	RecentGames []RecentGame `json:"recentGames"`
}

// HealthResult response type
type HealthResult struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Logged in as %s (%s)\n", a.User.Username, a.User.ID)
	fmt.Printf("Token saved\n")
}

func (o *Output) printGame(g Game) {
	phase := g.Phase
	round := g.CurrentRound
	if g.LiveState != nil {
		phase = g.LiveState.Phase
		round = g.LiveState.Round
	}
	fmt.Printf("Game:   %s\n", g.GameID)
	fmt.Printf("Date:   %s\n", g.Date)
	fmt.Printf("Phase:  %s (round %d of %d)\n", phase, round, g.Rounds)
	if len(g.MayhemRounds) > 0 {
		fmt.Printf("Mayhem: %v\n", g.MayhemRounds)
	}
	fmt.Println("Players:")
	for _, p := range g.Players {
		fmt.Printf("  %-20s %4d points  %d wins\n", p.Name, p.Score, p.Wins)
	}
}

func (o *Output) printGameList(games []Game) {
	if len(games) == 0 {
		fmt.Println("No games found")
		return
	}
	for _, g := range games {
		fmt.Printf("%s  %s  %s  %d players\n", g.GameID, g.Date, g.Phase, len(g.Players))
	}
}

func (o *Output) printFinishResult(f FinishResult) {
	fmt.Println(f.Message)
	o.printGame(f.Game)
}

func (o *Output) printCardList(cards []Card) {
	if len(cards) == 0 {
		fmt.Println("No player cards")
		return
	}
	for _, c := range cards {
		fmt.Printf("%-12s %s\n", c.ID, c.Name)
	}
}

func (o *Output) printStats(s StatsReport) {
	fmt.Printf("Stats for %s (%s)\n", s.PlayerCard.Name, s.PlayerCard.ID)
	fmt.Printf("  Games:    %d played, %d won (%d%% win rate)\n",
		s.Overall.GamesPlayed, s.Overall.GamesWon, s.Overall.WinRate)
	fmt.Printf("  Rounds:   %d played, %d won\n", s.Overall.TotalRounds, s.Overall.TotalWins)
	fmt.Printf("  Scoring:  %d avg, %d best\n", s.Overall.AvgScore, s.Overall.HighestScore)
	if s.Suits.BestSuit != nil {
		fmt.Printf("  Best suit:  %s\n", *s.Suits.BestSuit)
	}
	if s.Suits.WorstSuit != nil {
		fmt.Printf("  Worst suit: %s\n", *s.Suits.WorstSuit)
	}
	if len(s.RecentGames) > 0 {
		fmt.Println("  Recent games:")
		for _, g := range s.RecentGames {
			fmt.Printf("    %s  %s  rank %d, %d points\n",
				g.Date, g.ID, g.PlayerStats.Rank, g.PlayerStats.Score)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s (%s)\n", h.Status, h.Timestamp)
}
