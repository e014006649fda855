package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

func newUpdateCmd(app *App) *cobra.Command {
	var (
		wishlist  bool
		condition string
		grade     string
		price     float64
		date      string
		notes     string
		weight    float64
		diameter  float64
	)

	cmd := &cobra.Command{
		Use:   "update <catalog-coin-id>",
		Short: "Update a coin record",
		Long:  "Update the record for a catalog coin. Only the flags you pass are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := models.UserCoinPatch{}
			changed := false
			if cmd.Flags().Changed("condition") {
				patch.Condition = &condition
				changed = true
			}
			if cmd.Flags().Changed("grade") {
				patch.Grade = &grade
				changed = true
			}
			if cmd.Flags().Changed("price") {
				patch.PurchasePrice = &price
				changed = true
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
				changed = true
			}
			if cmd.Flags().Changed("weight") {
				patch.UserWeight = &weight
				changed = true
			}
			if cmd.Flags().Changed("diameter") {
				patch.UserDiameter = &diameter
				changed = true
			}
			if cmd.Flags().Changed("date") {
				purchaseDate, err := parseDateFlag(date)
				if err != nil {
					return err
				}
				patch.PurchaseDate = purchaseDate
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to update, pass at least one field flag")
			}

			ctx := cmd.Context()
			c, err := app.Repos.UserCoins.GetByCatalogCoinID(ctx, args[0], wishlist)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return fmt.Errorf("coin %s is not in your %s", args[0], listLabel(wishlist))
				}
				return err
			}

			if _, err := app.Collection.UpdateRecord(ctx, c.ID, patch); err != nil {
				return err
			}
			color.Green("Updated %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wishlist, "wishlist", "w", false, "update the wishlist record")
	cmd.Flags().StringVar(&condition, "condition", "", "coin condition")
	cmd.Flags().StringVar(&grade, "grade", "", "grade")
	cmd.Flags().Float64Var(&price, "price", 0, "purchase price")
	cmd.Flags().StringVar(&date, "date", "", "purchase date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().Float64Var(&weight, "weight", 0, "measured weight in grams")
	cmd.Flags().Float64Var(&diameter, "diameter", 0, "measured diameter in mm")
	return cmd
}

func listLabel(wishlist bool) string {
	if wishlist {
		return "wishlist"
	}
	return "collection"
}
