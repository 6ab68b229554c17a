// Package config provides configuration management for vexec.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds all the path configurations for vexec.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/vexec)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/vexec)
	DataDir string

	// CacheDir is the directory for cache files (~/.cache/vexec)
	CacheDir string
}

// DefaultPaths returns the default paths following the XDG base directory layout.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		return &Paths{
			ConfigDir: filepath.Join(appData, "vexec"),
			DataDir:   filepath.Join(localAppData, "vexec"),
			CacheDir:  filepath.Join(localAppData, "vexec", "cache"),
		}
	}

	// Unix-like systems use the XDG base directories
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "vexec"),
		DataDir:   filepath.Join(dataHome, "vexec"),
		CacheDir:  filepath.Join(cacheHome, "vexec"),
	}
}

// ConfigFile returns the path to the main configuration file. A conf.toml
// is used when it exists and config.yaml doesn't.
func (p *Paths) ConfigFile() string {
	yamlPath := filepath.Join(p.ConfigDir, "config.yaml")
	tomlPath := filepath.Join(p.ConfigDir, "conf.toml")
	if _, err := os.Stat(yamlPath); os.IsNotExist(err) {
		if _, err := os.Stat(tomlPath); err == nil {
			return tomlPath
		}
	}
	return yamlPath
}

// DatabaseFile returns the path to the SQLite history database.
func (p *Paths) DatabaseFile() string {
	return filepath.Join(p.DataDir, "history.db")
}

// EnsureDirectories creates all necessary directories.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.CacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
