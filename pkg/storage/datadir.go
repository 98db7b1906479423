package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDir is the directory name for this app under each platform's data root;
// the task document lives at <data root>/appDir/FileName.
const appDir = "task-planner"

// DefaultDataDir returns the OS-appropriate default data directory.
//
//   - macOS:   ~/Library/Application Support/task-planner
//   - Linux:   $XDG_DATA_HOME/task-planner (fallback ~/.local/share/task-planner)
//   - Windows: %LOCALAPPDATA%\task-planner (fallback %APPDATA%\task-planner)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appDir)
	case "windows":
		for _, env := range []string{"LOCALAPPDATA", "APPDATA"} {
			if dir := os.Getenv(env); dir != "" {
				return filepath.Join(dir, appDir)
			}
		}
		return filepath.Join(home, appDir)
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, appDir)
		}
		return filepath.Join(home, ".local", "share", appDir)
	}
}
