package cli

import (
	"github.com/spf13/cobra"
)

func newCardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Player card commands",
	}

	cmd.AddCommand(newCardsListCmd())
	cmd.AddCommand(newCardsSetCmd())

	return cmd
}

func newCardsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your player cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Card

			if err := client.Get("/api/players/cards", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newCardsSetCmd() *cobra.Command {
	var id, name, photo string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or update a player card",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"id":   id,
				"name": name,
			}
			if photo != "" {
				req["photo"] = photo
			}

			var result []Card

			if err := client.Post("/api/players/cards", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Card id (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&photo, "photo", "", "Photo URL or data URI")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
