package core

import (
	"os"
	"path/filepath"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Getwd tries to find the project root (the closest parent holding a go.mod or a config dir).
// go-test changes the working directory to the package being tested, so the cwd alone is not enough.
// Falls back to the cwd when no root is found (e.g. installed binaries).
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	currDir := wd
	for {
		for _, marker := range []string{"go.mod", "config"} {
			if _, err := os.Stat(filepath.Join(currDir, marker)); err == nil {
				return currDir
			}
		}
		newDir := filepath.Dir(currDir)
		if newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
