package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

const (
	envBackend  = "STUDYHUB_BACKEND"
	envLogLevel = "STUDYHUB_LOG_LEVEL"
)

type Config struct {
	WorkspacePath string
	StateDir      string
	DBPath        string
	Backend       Backend
	LogLevel      string
}

// New resolves configuration for a workspace. Values come from the process
// environment first, then from an optional <workspace>/.env file.
func New(workspacePath string) (Config, error) {
	if workspacePath == "" {
		return Config{}, fmt.Errorf("workspace path is required")
	}
	dotenv, err := readDotenv(filepath.Join(workspacePath, ".env"))
	if err != nil {
		return Config{}, err
	}
	lookup := func(key, fallback string) string {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		if v := strings.TrimSpace(dotenv[key]); v != "" {
			return v
		}
		return fallback
	}

	backend := Backend(strings.ToLower(lookup(envBackend, string(BackendFile))))
	switch backend {
	case BackendFile, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported %s %q", envBackend, backend)
	}

	stateDir := filepath.Join(workspacePath, ".studyhub")
	return Config{
		WorkspacePath: workspacePath,
		StateDir:      stateDir,
		DBPath:        filepath.Join(stateDir, "studyhub.db"),
		Backend:       backend,
		LogLevel:      strings.ToLower(lookup(envLogLevel, "info")),
	}, nil
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}
