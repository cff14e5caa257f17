package persist

import (
	"encoding/json"
	"fmt"

	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/conversation"
)

// SnapshotVersion is the version written into every snapshot.
// Version 0 is the unversioned layout of the first releases; it has the
// same shape as version 1 and is still accepted.
const SnapshotVersion = 1

type snapshot struct {
	Version      int         `json:"version"`
	Chats        []chat.Chat `json:"chats"`
	ActiveChatID *string     `json:"activeChatId"`
	Filter       chat.Filter `json:"filter"`
	SearchTerm   string      `json:"searchTerm"`
}

// Encode serialises the full state tree.
func Encode(s conversation.State) ([]byte, error) {
	snap := snapshot{
		Version:    SnapshotVersion,
		Chats:      s.Chats,
		Filter:     s.Filter,
		SearchTerm: s.SearchTerm,
	}
	if snap.Chats == nil {
		snap.Chats = []chat.Chat{}
	}
	if s.ActiveChatID != "" {
		id := s.ActiveChatID
		snap.ActiveChatID = &id
	}
	return json.Marshal(snap)
}

// Decode parses a snapshot. The stored chat order is kept as is; callers
// re-sort before use.
func Decode(data []byte) (conversation.State, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return conversation.State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version < 0 || snap.Version > SnapshotVersion {
		return conversation.State{}, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	s := conversation.State{
		Chats:      snap.Chats,
		Filter:     snap.Filter,
		SearchTerm: snap.SearchTerm,
	}
	if snap.ActiveChatID != nil {
		s.ActiveChatID = *snap.ActiveChatID
	}
	if f, err := chat.ParseFilter(string(s.Filter)); err == nil {
		s.Filter = f
	} else {
		s.Filter = chat.FilterAll
	}
	return s, nil
}
