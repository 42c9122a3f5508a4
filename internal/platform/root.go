package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFile is the optional vault configuration file name.
const ConfigFile = "jot.yaml"

// ErrRootNotFound is returned by FindRoot when no vault marker exists above startDir.
var ErrRootNotFound = errors.New("root not found")

// FindRoot looks upwards from startDir for a vault root.
// Indicators are the .jot directory or a jot.yaml file.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, DefaultSystemDir) || hasFile(dir, ConfigFile) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
