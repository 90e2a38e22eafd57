package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "emobridge"

// Dirs holds the locations emobridge reads from and writes to
type Dirs struct {
	DataPath   string
	ModelsPath string
	LogsPath   string
	ConfigPath string
}

// New resolves XDG-compliant paths
func New() (*Dirs, error) {
	dataPath, dataErr := getDataRoot()
	configPath, configErr := getConfigPath()
	if dataErr != nil {
		return nil, fmt.Errorf("failed to determine data directory: %w", dataErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return &Dirs{
		DataPath:   dataPath,
		ModelsPath: filepath.Join(dataPath, "models"),
		LogsPath:   filepath.Join(dataPath, "logs"),
		ConfigPath: configPath,
	}, nil
}

// getDataRoot follows the XDG Base Directory specification on Unix and uses AppData on Windows
func getDataRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName), nil
	}

	return filepath.Join(homeDir, ".local", "share", appName), nil
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName+"-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// Resolve makes a configured path absolute. Relative paths are taken
// relative to base; "~/" expands to the home directory.
func Resolve(path, base string) string {
	if path == "" {
		return ""
	}
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// GetModelPath returns the full path for a file in the models directory
func (d *Dirs) GetModelPath(filename string) string {
	return filepath.Join(d.ModelsPath, filename)
}

// EnsureLogs creates the logs directory if it doesn't exist
func (d *Dirs) EnsureLogs() error {
	if err := os.MkdirAll(d.LogsPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", d.LogsPath, err)
	}
	return nil
}
