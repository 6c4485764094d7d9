package config

import (
	"os"
	"path/filepath"
)

// GetDefaultConfigDirectory returns the per-user config directory for app,
// falling back to the working directory when no home can be determined.
func GetDefaultConfigDirectory(app string) string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, app)
	}
	return "."
}
