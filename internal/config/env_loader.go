package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvLoader loads environment variables from .env files before NewConfig
// reads them. Real environment variables always win over file values.
type EnvLoader struct {
	baseDir string
	loaded  map[string]string
}

// NewEnvLoader creates an environment loader rooted at baseDir.
func NewEnvLoader(baseDir string) *EnvLoader {
	return &EnvLoader{
		baseDir: baseDir,
		loaded:  make(map[string]string),
	}
}

// LoadEnvFiles loads .env files in priority order; later files win over
// earlier ones, and missing files are skipped silently.
func (l *EnvLoader) LoadEnvFiles(environment string) error {
	envFiles := []string{
		".env.defaults",
		fmt.Sprintf(".env.%s", environment),
		".env.local",
		".env",
	}

	for _, filename := range envFiles {
		path := filepath.Join(l.baseDir, filename)
		if err := l.loadEnvFile(path); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: error loading %s: %v\n", filename, err)
		}
	}

	for key, value := range l.loaded {
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				fmt.Printf("Warning: failed to set environment variable %s: %v\n", key, err)
			}
		}
	}
	return nil
}

// loadEnvFile parses one KEY=VALUE file, ignoring comments and blanks.
func (l *EnvLoader) loadEnvFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		if key != "" {
			l.loaded[key] = value
		}
	}
	return scanner.Err()
}
