package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRemoveCmd(app *App) *cobra.Command {
	var wishlist bool

	cmd := &cobra.Command{
		Use:     "remove <catalog-coin-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a coin from your collection or wishlist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Collection.RemoveRecord(cmd.Context(), args[0], wishlist); err != nil {
				return err
			}
			color.Yellow("Removed %s from %s", args[0], listLabel(wishlist))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "remove from the wishlist")
	return cmd
}

func newMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <catalog-coin-id>",
		Short: "Move a coin from the wishlist into the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Collection.MoveToCollection(cmd.Context(), args[0]); err != nil {
				return err
			}
			color.Green("Moved %s to collection", args[0])
			return nil
		},
	}
	return cmd
}
