package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/internal/config"
	"github.com/aretw0/jot/pkg/notify"
)

var notifyCmd = &cobra.Command{
	Use:   "notify <phone>",
	Short: "Send a motivational SMS",
	Long: `Notify sends the configured motivational message through mNotify.
The API key is read from sms.api-key in jot.yaml or from ` + config.EnvSMSAPIKey + `.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot(true)
		if err != nil {
			return err
		}
		cfg, err := config.LoadDir(root)
		if err != nil {
			return err
		}
		if !cfg.SMS.Enabled() {
			return fmt.Errorf("sms is not configured: set sms.api-key or %s", config.EnvSMSAPIKey)
		}

		m, err := notify.NewMNotify(notify.Config{
			APIKey:   cfg.SMS.APIKey,
			Sender:   cfg.SMS.Sender,
			Message:  cfg.SMS.Message,
			Endpoint: cfg.SMS.Endpoint,
			Logger:   slog.Default(),
		})
		if err != nil {
			return err
		}

		_, err = m.Send(context.Background(), args[0])
		switch {
		case errors.Is(err, notify.ErrInvalidPhone):
			return errors.New(notify.MsgInvalid)
		case errors.Is(err, notify.ErrSendFailed):
			return err
		case err != nil:
			slog.Debug("sms transport error", "error", err)
			return errors.New(notify.MsgUnreachable)
		}

		fmt.Fprintln(cmd.OutOrStdout(), notify.MsgSent)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}
