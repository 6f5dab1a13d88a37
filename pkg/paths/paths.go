package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppDirName names the logreader directory inside each XDG base directory
	AppDirName = "logreader"
	// ConfigFileName is the user config file inside ConfigDir
	ConfigFileName = "config.toml"
	// LogFileName is the log file inside StateDir
	LogFileName = "logreader.log"

	// EnvHome is the fallback for the home directory
	EnvHome = "HOME"
)

// ConfigDir returns the logreader config directory
// It respects XDG_CONFIG_HOME if set, otherwise uses the xdg default
func ConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(expandHome(configHome), AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the logreader state directory
// It respects XDG_STATE_HOME if set, otherwise uses the xdg default
func StateDir() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(expandHome(stateHome), AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ConfigFilePath returns the path of the user config file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFilePath returns the path to the logreader log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	return expandHome(path)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			// Can't expand, return as-is
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
