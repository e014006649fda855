package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
)

func renderCoinsTable(coins []*models.UserCoin) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Coin", "Year", "Condition", "Grade", "Paid", "Value", "Added"})

	for i, c := range coins {
		name := c.CatalogCoinID
		year := ""
		if c.CatalogCoin != nil {
			name = c.CatalogCoin.Name
			if c.CatalogCoin.Year != 0 {
				year = fmt.Sprintf("%d", c.CatalogCoin.Year)
			}
		}
		t.AppendRow(table.Row{
			i + 1,
			name,
			year,
			c.Condition,
			c.Grade,
			money(c.PurchasePrice),
			money(c.CurrentValue()),
			c.CreatedAt.Local().Format("2006-01-02"),
		})
	}
	t.Render()
}

func renderCatalogTable(coins []*models.CatalogCoin) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Year", "Metal", "Value"})

	for _, c := range coins {
		value := ""
		if c.EstimatedValueMin != nil && c.EstimatedValueMax != nil {
			value = fmt.Sprintf("%.2f-%.2f", *c.EstimatedValueMin, *c.EstimatedValueMax)
		}
		year := ""
		if c.Year != 0 {
			year = fmt.Sprintf("%d", c.Year)
		}
		t.AppendRow(table.Row{c.ID, c.Name, year, c.Metal, value})
	}
	t.Render()
}

func money(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
}
