package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/conversation"
	"go.uber.org/zap"
)

// Scheduler is the part of the delivery engine the message service drives.
type Scheduler interface {
	ScheduleStatus(chatID, messageID string)
	ScheduleReply(c chat.Chat, trigger chat.Message) bool
}

// MessageService sends messages and searches message history.
type MessageService struct {
	store  *conversation.Store
	engine Scheduler
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewMessageService creates a message service. engine simulates delivery and
// replies for every sent message.
func NewMessageService(st *conversation.Store, engine Scheduler, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		store:  st,
		engine: engine,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// SendMessage appends a text message to a chat and starts its simulated
// delivery. Surrounding whitespace is trimmed.
func (s *MessageService) SendMessage(chatID, text string) (chat.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chat.Message{}, ErrEmptyMessage
	}

	msg := chat.Message{
		ID:        s.newID(),
		Direction: chat.Outgoing,
		Type:      chat.TypeText,
		Content:   text,
		Timestamp: s.now(),
		Status:    chat.StatusSent,
	}

	found := false
	st := s.store.DispatchFunc(func(st conversation.State) conversation.Action {
		if st.FindChat(chatID) < 0 {
			return nil
		}
		found = true
		return conversation.SendMessage{ChatID: chatID, Message: msg}
	})
	if !found {
		return chat.Message{}, fmt.Errorf("%w: %s", ErrChatNotFound, chatID)
	}

	s.engine.ScheduleStatus(chatID, msg.ID)
	c, _ := st.Chat(chatID)
	replying := s.engine.ScheduleReply(c, msg)

	s.logger.Info("message sent",
		zap.String("chat_id", chatID),
		zap.String("msg_id", msg.ID),
		zap.Bool("reply_scheduled", replying))
	return msg, nil
}

// SearchMessages returns messages containing query across all chats, newest first.
func (s *MessageService) SearchMessages(query string) []conversation.MessageHit {
	return conversation.SearchMessages(s.store.State(), query)
}
