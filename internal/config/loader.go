package config

import (
	"os"
	"path/filepath"
)

// Loader locates and reads the configuration file.
type Loader struct {
	Version      string // build version, "dev" enables the local rc file
	OverridePath string
}

// NewLoader creates a Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load reads the configuration, returning defaults when no file exists.
func (l *Loader) Load() (*Config, error) {
	path := l.ConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// ConfigPath returns the path of the configuration file that Load would
// read, or empty when none exists.
func (l *Loader) ConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".imagemarkrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	home, _ := os.UserHomeDir()
	for _, name := range []string{"config.rc", "imagemark.rc"} {
		path := filepath.Join(home, ".config", "imagemark", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
