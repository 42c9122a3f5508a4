package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/aretw0/jot/pkg/render"
)

var (
	listJSON  bool
	listWatch bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _, err := openVault(false)
		if err != nil {
			return err
		}
		defer v.Close()

		out := cmd.OutOrStdout()
		if listJSON {
			notes, err := v.ListNotes(context.Background())
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(notes)
		}

		if !listWatch {
			_, err := render.NewController(v, textView(out)).Refresh(context.Background())
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		events, err := v.Watch(ctx, v.Store().Key())
		if err != nil {
			return fmt.Errorf("cannot watch %s storage: %w", v.Adapter, err)
		}

		view := render.NewView(&render.WriterSurface{W: out, Clear: isTerminal(out)}, render.TextFormatter{
			Styled:     isTerminal(out),
			DeleteHint: "jot delete %d",
		})
		c := render.NewController(v, view)
		if _, err := c.Refresh(ctx); err != nil {
			return err
		}

		src := lifecycle.NewSource(events, v.Store().Key())
		if err := src.Start(ctx); err != nil {
			return err
		}
		for e := range src.Events() {
			slog.Debug("change detected", "event", e.String())
			if _, err := c.Refresh(ctx); err != nil {
				slog.Error("refresh failed", "error", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output the stored list as JSON")
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "Re-render whenever the notes change (fs adapter)")
}
