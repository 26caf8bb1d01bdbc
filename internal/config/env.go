// Package config provides centralized configuration management.
// Values come from the process environment, optionally seeded from .env files.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Owner is the portfolio owner shown by the interpreter and the TUI.
type Owner struct {
	Name     string
	Role     string
	Email    string
	GitHub   string // handle without the @
	LinkedIn string // profile URL
	RepoURL  string // opened by the repo command
}

// PipetermEnv holds all PIPETERM_* settings.
type PipetermEnv struct {
	// SSHAddr is the listen address for `serve ssh` (PIPETERM_SSH_ADDR)
	SSHAddr string

	// HTTPAddr is the listen address for `serve http` (PIPETERM_HTTP_ADDR)
	HTTPAddr string

	// HostKeyPath is the PEM host key, generated when missing (PIPETERM_HOST_KEY)
	HostKeyPath string

	// LogFile is the rotated application log; empty means stderr (PIPETERM_LOG_FILE)
	LogFile string

	// LogLevel is one of debug, info, warn, error (PIPETERM_LOG_LEVEL)
	LogLevel string

	// SessionTTL is the idle lifetime of HTTP sessions (PIPETERM_SESSION_TTL)
	SessionTTL time.Duration

	// Seed fixes the random source; 0 means time based (PIPETERM_SEED)
	Seed int64

	Owner Owner
}

var (
	env     *PipetermEnv
	envOnce sync.Once
)

// Load applies .env files to the process environment without overriding
// variables that are already set. Missing files are ignored.
func Load(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "stat %s", f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return errors.Wrap(err, "loading env files")
	}
	return nil
}

// Env returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Env() *PipetermEnv {
	envOnce.Do(func() {
		home := Home()
		env = &PipetermEnv{
			SSHAddr:     getEnvDefault("PIPETERM_SSH_ADDR", "127.0.0.1:2222"),
			HTTPAddr:    getEnvDefault("PIPETERM_HTTP_ADDR", "127.0.0.1:8080"),
			HostKeyPath: getEnvDefault("PIPETERM_HOST_KEY", filepath.Join(home, "host_key.pem")),
			LogFile:     getEnvDefault("PIPETERM_LOG_FILE", filepath.Join(home, "pipeterm.log")),
			LogLevel:    getEnvDefault("PIPETERM_LOG_LEVEL", "info"),
			SessionTTL:  getDurationDefault("PIPETERM_SESSION_TTL", 30*time.Minute),
			Seed:        getInt64Default("PIPETERM_SEED", 0),
			Owner: Owner{
				Name:     getEnvDefault("PIPETERM_OWNER_NAME", "Jordan Reyes"),
				Role:     getEnvDefault("PIPETERM_OWNER_ROLE", "DevOps Engineer & Backend Developer"),
				Email:    getEnvDefault("PIPETERM_OWNER_EMAIL", "jordan@pipeterm.dev"),
				GitHub:   getEnvDefault("PIPETERM_GITHUB", "jreyes"),
				LinkedIn: getEnvDefault("PIPETERM_LINKEDIN", "https://www.linkedin.com/in/jreyes/"),
				RepoURL:  getEnvDefault("PIPETERM_REPO_URL", "https://github.com/jreyes/pipeterm"),
			},
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

// Home is the pipeterm state directory (~/.pipeterm).
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".pipeterm")
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return errors.WithStack(os.MkdirAll(filepath.Dir(path), 0700))
}

func getEnvDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDurationDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getInt64Default(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
