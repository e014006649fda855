package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		wishlist  bool
		condition string
		grade     string
		price     float64
		date      string
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "add <catalog-coin-id>",
		Short: "Add a coin to your collection or wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := models.UserCoinPatch{}
			if cmd.Flags().Changed("condition") {
				patch.Condition = &condition
			}
			if cmd.Flags().Changed("grade") {
				patch.Grade = &grade
			}
			if cmd.Flags().Changed("price") {
				patch.PurchasePrice = &price
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			purchaseDate, err := parseDateFlag(date)
			if err != nil {
				return err
			}
			patch.PurchaseDate = purchaseDate

			c, err := app.Collection.AddRecord(cmd.Context(), args[0], wishlist, patch)
			if err != nil {
				return err
			}

			if wishlist {
				color.Green("Added %s to wishlist", c.CatalogCoinID)
			} else {
				color.Green("Added %s to collection", c.CatalogCoinID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "add to the wishlist instead of the collection")
	cmd.Flags().StringVar(&condition, "condition", "", "coin condition (e.g. good, fine)")
	cmd.Flags().StringVar(&grade, "grade", "", "grade (e.g. XF, AU-58)")
	cmd.Flags().Float64Var(&price, "price", 0, "purchase price")
	cmd.Flags().StringVar(&date, "date", "", "purchase date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}
