package persist

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "relayctl"

// DefaultStateDir returns the default state directory following XDG base directory conventions:
// $XDG_STATE_HOME/relayctl, falling back to ~/.local/state/relayctl.
func DefaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+AppName, "state")
	}
	switch runtime.GOOS {
	case "darwin":
		// macOS has no state dir convention
		return filepath.Join(home, "Library", "Application Support", AppName, "state")
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, AppName, "state")
		}
		return filepath.Join(home, "AppData", "Local", AppName, "state")
	}
	return filepath.Join(home, ".local", "state", AppName)
}
