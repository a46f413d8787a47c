package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigDir is the root for everything timeridle keeps on disk. Setting
// TIMERIDLE_CONFIG_DIR moves it, which tests and CI rely on.
func ConfigDir() (string, error) {
	if dir := os.Getenv("TIMERIDLE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(base, "timeridle"), nil
}

// LogDir holds timeridle.log, written by logging.Setup unless -v sends logs
// to stderr. macOS keeps it under ~/Library/Logs; elsewhere it is
// ConfigDir/logs.
func LogDir() (string, error) {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("log dir: %w", err)
		}
		return filepath.Join(home, "Library", "Logs", "timeridle"), nil
	}
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "logs"), nil
}

// ConfigFilePath is the file written by "timeridle init" and read by every
// other command. A missing file means defaults.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
