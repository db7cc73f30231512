package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Game record commands",
	}

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesGetCmd())
	cmd.AddCommand(newGamesActiveCmd())
	cmd.AddCommand(newGamesStartCmd())
	cmd.AddCommand(newGamesFinishCmd())
	cmd.AddCommand(newGamesDeleteCmd())

	return cmd
}

func newGamesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your game records, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get("/api/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <gameId>",
		Short: "Get a single game record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get("/api/games?gameId="+args[0], &result); err != nil {
				return err
			}
			if len(result) == 0 {
				return fmt.Errorf("game %s not found", args[0])
			}

			out := NewOutput(cfg.Output)
			out.Print(result[0])
			return nil
		},
	}
}

func newGamesActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show the most recent in-progress game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *Game

			if err := client.Get("/api/games/active", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if result == nil {
				out.PrintMessage("No active game")
				return nil
			}
			out.Print(*result)
			return nil
		},
	}
}

func newGamesStartCmd() *cobra.Command {
	var players []string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new game session",
		Long: `Start a new game session with the given players.

Each --player value is a display name, optionally followed by a colon
and a player card id, e.g. --player "Alice:card-alice".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(players) == 0 {
				return fmt.Errorf("at least one --player is required")
			}

			seats := make([]map[string]string, 0, len(players))
			for _, p := range players {
				name, cardID, _ := strings.Cut(p, ":")
				if name == "" {
					return fmt.Errorf("invalid --player value %q", p)
				}
				seat := map[string]string{"name": name}
				if cardID != "" {
					seat["cardId"] = cardID
				}
				seats = append(seats, seat)
			}

			req := map[string]any{"players": seats}
			var result Game

			if err := client.Post("/api/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&players, "player", nil, "Player name[:cardId] (repeatable, required)")

	return cmd
}

func newGamesFinishCmd() *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use:   "finish <gameId>",
		Short: "Finalize a game record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if rounds > 0 {
				req["rounds"] = rounds
			}

			var result FinishResult

			if err := client.Post(fmt.Sprintf("/api/games/%s/finish", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 0, "Total rounds played")

	return cmd
}

func newGamesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <gameId>",
		Short: "Delete a game record, abandoning the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/games/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}
