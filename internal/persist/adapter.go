package persist

import (
	"errors"

	"github.com/matheus3301/wppsim/internal/conversation"
	"github.com/matheus3301/wppsim/internal/store"
	"go.uber.org/zap"
)

// StorageKey is the fixed key the state snapshot lives under.
const StorageKey = "whatsapp-web-clone-state"

// KV is a key-value snapshot store. Get returns store.ErrNotFound for a
// missing key.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Adapter loads and saves the conversation state. Every failure is logged
// and absorbed; nothing past this boundary sees a persistence error.
type Adapter struct {
	kv     KV
	key    string
	logger *zap.Logger
}

// NewAdapter creates an adapter storing snapshots under StorageKey.
func NewAdapter(kv KV, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{kv: kv, key: StorageKey, logger: logger}
}

// Load returns the persisted state, sorted, and whether one was found.
func (a *Adapter) Load() (conversation.State, bool) {
	data, err := a.kv.Get(a.key)
	if errors.Is(err, store.ErrNotFound) {
		a.logger.Info("no persisted state", zap.String("key", a.key))
		return conversation.State{}, false
	}
	if err != nil {
		a.logger.Warn("failed to read persisted state", zap.String("key", a.key), zap.Error(err))
		return conversation.State{}, false
	}

	s, err := Decode(data)
	if err != nil {
		a.logger.Warn("discarding persisted state", zap.String("key", a.key), zap.Error(err))
		return conversation.State{}, false
	}
	s.Chats = conversation.SortChats(s.Chats)
	a.logger.Info("persisted state loaded", zap.Int("chats", len(s.Chats)), zap.Int("bytes", len(data)))
	return s, true
}

// Save overwrites the persisted snapshot with s. It reports whether the
// snapshot was written.
func (a *Adapter) Save(s conversation.State) bool {
	data, err := Encode(s)
	if err != nil {
		a.logger.Warn("failed to encode state, save skipped", zap.Error(err))
		return false
	}
	if err := a.kv.Put(a.key, data); err != nil {
		a.logger.Warn("failed to persist state, save skipped", zap.Error(err))
		return false
	}
	return true
}

// Restore returns the persisted state, or the state built by fallback when
// nothing usable is stored.
func (a *Adapter) Restore(fallback func() conversation.State) conversation.State {
	if s, ok := a.Load(); ok {
		return s
	}
	s := fallback()
	s.Chats = conversation.SortChats(s.Chats)
	return s
}
