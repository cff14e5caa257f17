package session

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the base directory, mainly for tests and demos.
const HomeEnv = "WPPSIM_HOME"

// BaseDir returns $WPPSIM_HOME, or ~/.wppsim when unset.
func BaseDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".wppsim")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// Dir returns the session-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "sessions", name)
}

// Layout locates the files of one session under its directory.
type Layout struct {
	Dir string
}

// For returns the layout of the named session.
func For(name string) Layout {
	return Layout{Dir: Dir(name)}
}

// StateDB is the SQLite database holding the state snapshot.
func (l Layout) StateDB() string {
	return filepath.Join(l.Dir, "state.db")
}

// LogDir holds the session logs.
func (l Layout) LogDir() string {
	return filepath.Join(l.Dir, "logs")
}

// LogPath is the structured log file.
func (l Layout) LogPath() string {
	return filepath.Join(l.LogDir(), "wppsim.log")
}

// Ensure creates the session directory tree, private to the user.
func (l Layout) Ensure() error {
	for _, d := range []string{l.Dir, l.LogDir()} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
