package utils

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

const dataFolder = "broadcaster"

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ExpandDefaultPath joins defaultFileName to dataDir unless currentValue is already set.
func ExpandDefaultPath(dataDir string, currentValue string, defaultFileName string) string {
	if currentValue == "" {
		return path.Join(dataDir, defaultFileName)
	}

	return currentValue
}

// ExpandHomeDir replaces a leading ~ with the home directory of the user.
func ExpandHomeDir(dir string) string {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return dir
		}
		return filepath.Join(homeDir, strings.TrimPrefix(dir, "~"))
	}
	return dir
}

func GetDefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()

	if err != nil {
		return "", err
	}

	folder := dataFolder
	if runtime.GOOS != "windows" {
		folder = "." + folder
	}

	return path.Join(homeDir, folder), nil
}
