package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gntenant"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gntenant by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gntenant/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// DumpDir returns the default directory for dump files.
// Returns ~/.local/share/gntenant/dumps by default.
func DumpDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "dumps")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gntenant/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
