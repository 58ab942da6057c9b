package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const fallbackVersion = "0.1.0"

// GetVersion returns version from environment variable, VERSION file or build info
func GetVersion() string {
	// CI/CD sets APP_VERSION
	if envVersion := strings.TrimSpace(os.Getenv("APP_VERSION")); envVersion != "" {
		return envVersion
	}

	if v := readVersionFile(); v != "" {
		return v
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}

	return fallbackVersion
}

// readVersionFile looks for a VERSION file in the working directory and its parent
func readVersionFile() string {
	for _, p := range []string{"VERSION", filepath.Join("..", "VERSION")} {
		if content, err := os.ReadFile(p); err == nil {
			if v := strings.TrimSpace(string(content)); v != "" {
				return v
			}
		}
	}
	return ""
}
