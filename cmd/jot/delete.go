package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/render"
)

var (
	deleteIndex int
	deleteID    string
)

var deleteCmd = &cobra.Command{
	Use:   "delete [n]",
	Short: "Delete a note",
	Long: `Delete removes the note shown as [n] by 'jot list'.
Use --index to address the creation-order index directly, or --id for a stable note ID.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		byIndex := cmd.Flags().Changed("index")
		selectors := len(args)
		if byIndex {
			selectors++
		}
		if deleteID != "" {
			selectors++
		}
		if selectors != 1 {
			return errors.New("give exactly one of [n], --index or --id")
		}

		v, _, err := openVault(false)
		if err != nil {
			return err
		}
		defer v.Close()

		ctx := context.Background()
		c := render.NewController(v, textView(cmd.OutOrStdout()))

		switch {
		case deleteID != "":
			err = c.DeleteID(ctx, deleteID)
		case byIndex:
			err = c.DeleteAt(ctx, deleteIndex)
		default:
			n, convErr := strconv.Atoi(args[0])
			if convErr != nil {
				return fmt.Errorf("invalid note number %q", args[0])
			}
			err = c.DeleteDisplayed(ctx, n-1)
		}

		switch {
		case errors.Is(err, core.ErrOutOfRange), errors.Is(err, core.ErrNotFound):
			return fmt.Errorf("nothing deleted: %w", err)
		case err != nil:
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Note deleted.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().IntVar(&deleteIndex, "index", 0, "Creation-order index (0 = oldest)")
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "Stable note ID")
}
