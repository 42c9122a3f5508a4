package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/core"
)

var statusDiagram bool

type vaultStatus struct {
	Version string `json:"version"`
	Adapter string `json:"adapter"`
	Path    string `json:"path,omitempty"`
	Notes   int    `json:"notes"`
	Service any    `json:"service"`
	Storage any    `json:"storage,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show vault and storage state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _, err := openVault(false)
		if err != nil {
			return err
		}
		defer v.Close()

		notes, err := v.ListNotes(context.Background())
		if err != nil {
			return err
		}

		st := vaultStatus{
			Version: jot.Version,
			Adapter: v.Adapter,
			Path:    v.Path,
			Notes:   len(notes),
			Service: v.State(),
		}
		if intro, ok := v.Storage.(introspection.Introspectable); ok {
			st.Storage = intro.State()
		}

		out := cmd.OutOrStdout()
		if statusDiagram {
			config := introspection.DefaultDiagramConfig()
			config.SecondaryID = "vault"
			config.SecondaryLabel = "Vault Topology"
			fmt.Fprintln(out, introspection.TreeDiagram(buildStatusTree(st), config))
			return nil
		}

		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(st)
	},
}

type statusNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []statusNode
}

// buildStatusTree lays the vault out for introspection.TreeDiagram.
// Status values must match classes in introspection.DefaultStyles().
func buildStatusTree(st vaultStatus) statusNode {
	svc, _ := st.Service.(core.ServiceState)
	serviceStatus := "running"
	if svc.ReadOnly {
		serviceStatus = "suspended"
	}

	storage := statusNode{
		Name:   "Storage",
		Status: "running",
		Metadata: map[string]string{
			"type":   svc.StorageType,
			"atomic": fmt.Sprintf("%t", svc.Atomic),
		},
	}
	if fsState, ok := st.Storage.(fs.StorageState); ok {
		watcher := "suspended"
		if fsState.WatcherActive {
			watcher = "running"
		}
		storage.Metadata["path"] = fsState.Path
		storage.Metadata["keys"] = fmt.Sprintf("%d", len(fsState.Keys))
		storage.Children = append(storage.Children, statusNode{
			Name:     "Watcher",
			Status:   watcher,
			Metadata: map[string]string{"type": "goroutine"},
		})
	}

	return statusNode{
		Name:   "Vault",
		Status: "running",
		Metadata: map[string]string{
			"type":    "container",
			"adapter": st.Adapter,
			"path":    st.Path,
		},
		Children: []statusNode{
			{
				Name:   "Service",
				Status: serviceStatus,
				Metadata: map[string]string{
					"type":  "process",
					"key":   svc.Key,
					"notes": fmt.Sprintf("%d", st.Notes),
				},
				Children: []statusNode{storage},
			},
		},
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusDiagram, "diagram", false, "Print a Mermaid diagram instead of JSON")
}
