package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := app.Collection.GetStats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Coins owned:     %d\n", stats.OwnedCount)
			fmt.Printf("On wishlist:     %d\n", stats.WishlistCount)
			fmt.Printf("Estimated value: %.2f\n", stats.TotalValue)
			fmt.Printf("Total paid:      %.2f\n", stats.TotalPurchasePrice)

			line := fmt.Sprintf("Profit / loss:   %+.2f (%+.1f%%)", stats.ProfitLoss, stats.ProfitLossPercent)
			switch {
			case stats.ProfitLoss > 0:
				color.Green("%s", line)
			case stats.ProfitLoss < 0:
				color.Red("%s", line)
			default:
				fmt.Println(line)
			}
			return nil
		},
	}
	return cmd
}
