// ABOUTME: Standard filesystem paths for frametui configuration
// ABOUTME: Resolves ~/.frametui/ for global and .frametui/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".frametui"
	projectDirName = ".frametui"
	configFileName = "config.yaml"
)

// GlobalDir returns the user-global config directory (~/.frametui/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.frametui/ in root).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configFileName)
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), configFileName)
}

// DotEnvFile returns the path of the project .env file.
func DotEnvFile(projectRoot string) string {
	return filepath.Join(projectRoot, ".env")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
