// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prefs persists user preferences (tool path, OCIO config path) as a
// flat YAML file in the user's config directory. A missing file is not an
// error; defaults apply.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

const (
	dirName  = "tx-convert"
	fileName = "prefs.yaml"

	// envOCIO is the conventional OpenColorIO environment variable, used as
	// the fallback when no config path is stored or given.
	envOCIO = "OCIO"
)

// Prefs is the persisted preference record.
type Prefs struct {
	// MaketxPath is the remembered path to the maketx executable.
	MaketxPath string `yaml:"maketx_path,omitempty"`

	// OCIOPath is the remembered OpenColorIO configuration file.
	OCIOPath string `yaml:"ocio_path,omitempty"`
}

// DefaultPath returns the preference file location under the user's config
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", dirName, fileName), nil
}

// Load reads preferences from path. A missing file returns zero preferences
// and no error.
func Load(path string) (Prefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("reading preferences %s: %w", path, err)
	}

	var p Prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("parsing preferences %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating parent directories as needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences %s: %w", path, err)
	}
	return nil
}

// ResolveOCIO picks the OpenColorIO config for a batch: an explicit path
// wins, then the stored preference, then $OCIO. The chosen path must exist.
func ResolveOCIO(explicit string, p Prefs) (string, error) {
	if explicit != "" {
		return checkOCIO(explicit, "given")
	}
	if p.OCIOPath != "" {
		return checkOCIO(p.OCIOPath, "stored")
	}
	if env := strings.TrimSpace(os.Getenv(envOCIO)); env != "" {
		return checkOCIO(env, "$OCIO")
	}
	return "", fmt.Errorf("no OCIO config: set one with --ocio, the config command, or $%s", envOCIO)
}

func checkOCIO(path, origin string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%s OCIO config %s: %w", origin, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s OCIO config %s is a directory", origin, path)
	}
	return path, nil
}
