package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/coinkeeper/internal/client/config"
)

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "coinkeeper",
		Short: "Manage your coin collection, offline first",
		Long: `Coinkeeper tracks the coins you own and the ones you want.
All changes are stored locally and synchronized with your account
when you are online.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newUpdateCmd(app),
		newRemoveCmd(app),
		newMoveCmd(app),
		newStatsCmd(app),
		newSyncCmd(app),
		newPullCmd(app),
		newClearCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newCatalogCmd(app),
		newImportCmd(app),
	)
	return root
}

// Execute bootstraps the application and runs the command tree.
func Execute() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	app, err := NewApp(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	root := NewRootCmd(app)
	if err := root.ExecuteContext(ctx); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
