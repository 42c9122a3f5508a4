package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/internal/config"
)

// openVault resolves the vault root, loads jot.yaml and opens the vault.
// Flags override file values. With create set, a missing vault is created
// in the working directory.
func openVault(create bool, extra ...jot.Option) (*jot.Vault, *config.Config, error) {
	root, err := resolveRoot(create)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadDir(root)
	if err != nil {
		return nil, nil, err
	}
	if adapter != "" {
		cfg.Adapter = adapter
	}
	if storageKey != "" {
		cfg.Key = storageKey
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	opts := []jot.Option{
		jot.WithAdapter(cfg.Adapter),
		jot.WithKey(cfg.Key),
		jot.WithTimeLayout(cfg.TimeLayout),
		jot.WithLogger(slog.Default()),
		jot.WithMustExist(!create),
	}
	v, err := jot.New(root, append(opts, extra...)...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open vault: %w", err)
	}
	return v, cfg, nil
}

func resolveRoot(create bool) (string, error) {
	if vaultDir != "" {
		return vaultDir, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	root, err := jot.FindVaultRoot(wd)
	if err == nil {
		return root, nil
	}
	if create {
		return wd, nil
	}
	return "", errors.New("not a jot vault (run `jot init` or pass --dir)")
}
