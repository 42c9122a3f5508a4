package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/internal/config"
)

var initConfig bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a jot vault",
	Long:  `Initialize a new vault in the current directory (or --dir) by creating the .jot system directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if vaultDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			vaultDir = wd
		}

		v, _, err := openVault(true)
		if err != nil {
			return err
		}
		defer v.Close()

		if initConfig {
			cfg, err := config.Default()
			if err != nil {
				return err
			}
			cfg.Adapter = v.Adapter
			cfg.Key = v.Store().Key()
			cfg.File = filepath.Join(v.Path, config.FileName)
			if _, err := os.Stat(cfg.File); err == nil {
				return fmt.Errorf("%s already exists", cfg.File)
			}
			if err := cfg.Save(); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized empty jot vault in", v.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initConfig, "config", false, "Also write a jot.yaml with default settings")
}
