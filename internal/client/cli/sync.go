package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push local changes to your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}

			// Transient backend hiccups are retried with backoff; anything
			// else fails immediately.
			backoff := retry.WithMaxRetries(2, retry.NewExponential(time.Second))
			err := retry.Do(cmd.Context(), backoff, func(ctx context.Context) error {
				err := app.Sync.SyncAll(ctx)
				if errors.Is(err, common.ErrRemoteUnavailable) {
					return retry.RetryableError(err)
				}
				return err
			})
			if err != nil {
				return err
			}

			color.Green("Sync complete")
			return nil
		},
	}
	return cmd
}

func newPullCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Load your collection from your account",
		Long: `Merge the remote copy of your collection into the local store.
Records with unpushed local changes are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.RequireLogin(); err != nil {
				return err
			}
			if err := app.Sync.LoadFromRemote(cmd.Context()); err != nil {
				return err
			}

			if at, err := app.Sync.LastSyncedAt(cmd.Context()); err == nil && at != nil {
				fmt.Printf("Last synced: %s\n", at.Local().Format(time.RFC1123))
			}
			color.Green("Pull complete")
			return nil
		},
	}
	return cmd
}

func newClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record locally and remotely",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to wipe the collection without --yes")
			}
			if err := app.Collection.ClearAll(cmd.Context()); err != nil {
				return err
			}
			color.Yellow("Collection cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}
