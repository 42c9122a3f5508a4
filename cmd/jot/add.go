package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/render"
)

const (
	msgEmptyText = "Please write something before saving!"
	msgSaved     = "Note saved successfully!"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Save a new note",
	Long:  `Add joins its arguments into one note, stamps it with the current time and appends it to the list.`,
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _, err := openVault(true)
		if err != nil {
			return err
		}
		defer v.Close()

		out := cmd.OutOrStdout()
		c := render.NewController(v, textView(out))
		n, err := c.Add(context.Background(), strings.Join(args, " "))
		if errors.Is(err, core.ErrEmptyText) {
			return errors.New(msgEmptyText)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s)\n", msgSaved, n.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
