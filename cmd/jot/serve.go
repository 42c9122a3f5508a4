package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/internal/web"
	"github.com/aretw0/jot/pkg/notify"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notes page over HTTP",
	Long: `Serve starts a web page with a note form, the note list and, when an
mNotify API key is configured, a form to send a motivational SMS.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, cfg, err := openVault(true)
		if err != nil {
			return err
		}
		defer v.Close()

		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		var notifier notify.Notifier
		if cfg.SMS.Enabled() {
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
			notifier = m
		} else {
			slog.Info("sms disabled", "reason", "no api key")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := web.New(ctx, web.Config{
			Service:  v,
			Notifier: notifier,
			Logger:   slog.Default(),
		})
		if err != nil {
			return err
		}
		return srv.Run(ctx, cfg.Server.Addr,
			time.Duration(cfg.Server.ReadTimeout)*time.Second,
			time.Duration(cfg.Server.WriteTimeout)*time.Second,
		)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from jot.yaml, else :8080)")
}
