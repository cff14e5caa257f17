package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// FileName is the lock file inside a session directory.
const FileName = "LOCK"

// LockHeldError is returned when another process holds the session lock.
type LockHeldError struct {
	Owner string
	PID   int
	Path  string
}

func (e *LockHeldError) Error() string {
	owner := e.Owner
	if owner == "" {
		owner = "another process"
	}
	return fmt.Sprintf("session is in use by %s (PID %d, %s)", owner, e.PID, e.Path)
}

// Lock represents an acquired session lock file. Only one process may
// open a session's state at a time.
type Lock struct {
	file *os.File
	path string
}

// Acquire attempts to acquire an exclusive lock on the session directory.
// owner names the program taking the lock and is reported to later callers.
// Returns LockHeldError if another process already holds it.
func Acquire(sessionDir, owner string) (*Lock, error) {
	lockPath := filepath.Join(sessionDir, FileName)

	if err := os.MkdirAll(sessionDir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		data, _ := os.ReadFile(lockPath)
		_ = f.Close()
		held := parse(string(data))
		held.Path = lockPath
		return nil, held
	}

	if err := f.Truncate(0); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("truncate lock file: %w", err)
	}
	content := fmt.Sprintf("owner=%s\npid=%d\ntime=%s\n", owner, os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if _, err := f.WriteAt([]byte(content), 0); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write lock file: %w", err)
	}

	return &Lock{file: f, path: lockPath}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release releases the lock. Safe to call on nil receiver.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	// Remove before closing so a stale file never outlives the holder.
	_ = os.Remove(l.path)
	err := l.file.Close()
	l.file = nil
	return err
}

func parse(content string) *LockHeldError {
	held := &LockHeldError{}
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "owner":
			held.Owner = value
		case "pid":
			held.PID, _ = strconv.Atoi(value)
		}
	}
	return held
}
