package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var wishlist bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the coins in your collection or wishlist",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coins, err := app.Collection.ListRecords(cmd.Context(), wishlist)
			if err != nil {
				return err
			}
			if len(coins) == 0 {
				if wishlist {
					fmt.Println("Your wishlist is empty.")
				} else {
					fmt.Println("Your collection is empty.")
				}
				return nil
			}
			renderCoinsTable(coins)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "show the wishlist")
	return cmd
}
