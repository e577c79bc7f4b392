package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// An explicit path wins, then SHIPIT_LOG_FILE, then ~/.shipit/logs/shipit.log
func GetLogFilePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if customPath := os.Getenv("SHIPIT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "shipit.log"
	}

	return filepath.Join(homeDir, ".shipit", "logs", "shipit.log")
}
