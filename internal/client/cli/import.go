package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/coinkeeper/internal/client/numista"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

func newImportCmd(app *App) *cobra.Command {
	var (
		rulerID string
		pages   int
	)

	cmd := &cobra.Command{
		Use:   "import <query>",
		Short: "Import catalog coins from Numista",
		Long: `Search the Numista catalog and import matching coin types under an
existing ruler of the local catalog. Requires NUMISTA_API_KEY.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.NumistaAPIKey == "" {
				return fmt.Errorf("%w: NUMISTA_API_KEY is not set", common.ErrValidation)
			}
			ctx := cmd.Context()

			imported := 0
			for page := 1; page <= pages; page++ {
				result, err := app.Numista.SearchTypes(ctx, args[0], page, 50)
				if err != nil {
					if errors.Is(err, numista.ErrBudgetExhausted) {
						color.Yellow("Stopped: request budget exhausted after %d coins", imported)
						return nil
					}
					return err
				}

				for _, st := range result.Types {
					typ, err := app.Numista.GetType(ctx, st.ID)
					if err != nil {
						if errors.Is(err, numista.ErrBudgetExhausted) {
							color.Yellow("Stopped: request budget exhausted after %d coins", imported)
							return nil
						}
						return err
					}
					if err := app.Repos.Catalog.UpsertCoin(ctx, typ.ToCatalogCoin(rulerID)); err != nil {
						return err
					}
					imported++
				}

				if page*50 >= result.Count {
					break
				}
			}

			color.Green("Imported %d catalog coins (%d API requests used)",
				imported, app.Numista.RequestsUsed())
			return nil
		},
	}

	cmd.Flags().StringVar(&rulerID, "ruler", "", "local ruler id the coins are filed under")
	cmd.Flags().IntVar(&pages, "pages", 1, "number of result pages to import")
	_ = cmd.MarkFlagRequired("ruler")
	return cmd
}
