package session

import (
	"os"

	"github.com/matheus3301/wppsim/internal/config"
)

const (
	DefaultSessionName = "main"
	// SessionEnv selects the session when no flag is given.
	SessionEnv = "WPPSIM_SESSION"
)

// Resolve picks the session name: the flag, then $WPPSIM_SESSION, then
// default_session from config.toml, then "main".
func Resolve(flagOverride string) string {
	if flagOverride != "" {
		return flagOverride
	}
	if env := os.Getenv(SessionEnv); env != "" {
		return env
	}
	if cfg, err := config.Load(ConfigPath()); err == nil && cfg.DefaultSession != "" {
		return cfg.DefaultSession
	}
	return DefaultSessionName
}
