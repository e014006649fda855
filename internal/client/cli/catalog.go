package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the coin catalog",
	}

	countries := &cobra.Command{
		Use:   "countries",
		Short: "List catalog countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			countries, err := app.Repos.Catalog.GetCountries(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range countries {
				fmt.Printf("%-12s %s\n", c.ID, c.Name)
			}
			return nil
		},
	}

	periods := &cobra.Command{
		Use:   "periods <country-id>",
		Short: "List periods of a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			periods, err := app.Repos.Catalog.GetPeriodsByCountry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, p := range periods {
				fmt.Printf("%-12s %s (%d-%d)\n", p.ID, p.Name, p.StartYear, p.EndYear)
			}
			return nil
		},
	}

	rulers := &cobra.Command{
		Use:   "rulers <period-id>",
		Short: "List rulers of a period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rulers, err := app.Repos.Catalog.GetRulersByPeriod(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, r := range rulers {
				fmt.Printf("%-12s %s (%d-%d)\n", r.ID, r.Name, r.StartYear, r.EndYear)
			}
			return nil
		},
	}

	coins := &cobra.Command{
		Use:   "coins <ruler-id>",
		Short: "List coins issued under a ruler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coins, err := app.Repos.Catalog.GetCoinsByRuler(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderCatalogTable(coins)
			return nil
		},
	}

	var limit int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by name or catalog number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coins, err := app.Repos.Catalog.SearchCoins(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(coins) == 0 {
				fmt.Println("No matches.")
				return nil
			}
			renderCatalogTable(coins)
			return nil
		},
	}
	search.Flags().IntVar(&limit, "limit", 50, "maximum number of results")

	cmd.AddCommand(countries, periods, rulers, coins, search)
	return cmd
}
