package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// FileName is the launcher's optional config file inside the Zowe home dir.
const FileName = "zowex.json"

// LauncherFile represents the zowex.json file.
type LauncherFile struct {
	Daemon DaemonFile `json:"daemon"`
	Log    LogFile    `json:"log"`
}

// DaemonFile holds daemon connection settings.
type DaemonFile struct {
	Port int    `json:"port,omitempty"`
	Dir  string `json:"dir,omitempty"`
}

// LogFile holds logging settings.
type LogFile struct {
	Level string `json:"level,omitempty"`
}

// LoadLauncherFile reads zowex.json from the given Zowe home directory.
// Returns a zero-value LauncherFile (all defaults) if the file doesn't exist.
func LoadLauncherFile(homeDir string) (*LauncherFile, error) {
	configPath := filepath.Join(homeDir, FileName)

	data, err := os.ReadFile(configPath) //nolint:gosec // G304 - path from the Zowe home directory
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &LauncherFile{}, nil
		}
		return nil, err
	}

	var file LauncherFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	return &file, nil
}
