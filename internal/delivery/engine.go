package delivery

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/wppsim/internal/chat"
	"github.com/matheus3301/wppsim/internal/conversation"
	"go.uber.org/zap"
)

// Default simulation timings.
const (
	DefaultDeliveredAfter = 1000 * time.Millisecond
	DefaultReadAfter      = 2000 * time.Millisecond
	DefaultReplyMin       = 4000 * time.Millisecond
	DefaultReplyMax       = 8000 * time.Millisecond
)

// Dispatcher is the part of the conversation store the engine writes to.
type Dispatcher interface {
	Dispatch(a conversation.Action) conversation.State
	DispatchFunc(build func(conversation.State) conversation.Action) conversation.State
}

// Options configures an Engine. Zero fields take defaults.
type Options struct {
	DeliveredAfter time.Duration
	ReadAfter      time.Duration
	ReplyMin       time.Duration
	ReplyMax       time.Duration

	Scheduler Scheduler
	Rand      Rand
	Now       func() time.Time
	NewID     func() string
}

func (o Options) withDefaults() Options {
	if o.DeliveredAfter <= 0 {
		o.DeliveredAfter = DefaultDeliveredAfter
	}
	if o.ReadAfter <= 0 {
		o.ReadAfter = DefaultReadAfter
	}
	if o.ReplyMin <= 0 {
		o.ReplyMin = DefaultReplyMin
	}
	if o.ReplyMax <= 0 {
		o.ReplyMax = DefaultReplyMax
	}
	if o.Scheduler == nil {
		o.Scheduler = WallClock()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x77707073696d))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.New().String() }
	}
	return o
}

type entry struct {
	timer Timer
}

// Engine simulates the remote side of a conversation: it advances the status
// of sent messages and answers one-to-one chats, by dispatching delayed
// actions into the store.
type Engine struct {
	store  Dispatcher
	opts   Options
	logger *zap.Logger

	mu       sync.Mutex
	status   map[string][]*entry // by message id
	replies  map[string]*entry   // by chat id
	closed   bool
	inflight sync.WaitGroup
}

// NewEngine creates an engine dispatching into store.
func NewEngine(store Dispatcher, opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:   store,
		opts:    opts.withDefaults(),
		logger:  logger,
		status:  make(map[string][]*entry),
		replies: make(map[string]*entry),
	}
}

// ScheduleStatus marks messageID delivered and later read.
func (e *Engine) ScheduleStatus(chatID, messageID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	steps := []struct {
		after  time.Duration
		status chat.Status
	}{
		{e.opts.DeliveredAfter, chat.StatusDelivered},
		{e.opts.ReadAfter, chat.StatusRead},
	}
	for _, step := range steps {
		en := &entry{}
		en.timer = e.opts.Scheduler.AfterFunc(step.after, func() {
			if !e.claim(func() bool { return e.removeStatus(messageID, en) }) {
				return
			}
			defer e.inflight.Done()
			e.store.Dispatch(conversation.UpdateMessageStatus{
				ChatID:    chatID,
				MessageID: messageID,
				Status:    step.status,
			})
			e.logger.Debug("message status advanced",
				zap.String("chat_id", chatID),
				zap.String("msg_id", messageID),
				zap.String("status", string(step.status)))
		})
		e.status[messageID] = append(e.status[messageID], en)
	}
}

// ScheduleReply arranges a simulated answer to trigger in c. Group chats
// never get one. A reply already pending for the chat is replaced.
// It reports whether a reply was scheduled.
func (e *Engine) ScheduleReply(c chat.Chat, trigger chat.Message) bool {
	if c.IsGroup {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}

	if prev, ok := e.replies[c.ID]; ok {
		prev.timer.Stop()
		delete(e.replies, c.ID)
	}

	delay := e.replyDelay()
	text := ChooseReply(c, trigger.Content, e.opts.Rand)
	chatID := c.ID

	en := &entry{}
	en.timer = e.opts.Scheduler.AfterFunc(delay, func() {
		if !e.claim(func() bool { return e.removeReply(chatID, en) }) {
			return
		}
		defer e.inflight.Done()

		reply := chat.Message{
			ID:        e.opts.NewID(),
			Direction: chat.Incoming,
			Type:      chat.TypeText,
			Content:   text,
			Timestamp: e.opts.Now().Add(time.Second),
			Status:    chat.StatusDelivered,
		}
		e.store.DispatchFunc(func(s conversation.State) conversation.Action {
			return conversation.ReceiveMessage{
				ChatID:   chatID,
				Message:  reply,
				IsActive: s.ActiveChatID == chatID,
			}
		})
		e.logger.Debug("auto-reply delivered", zap.String("chat_id", chatID), zap.String("msg_id", reply.ID))
	})
	e.replies[chatID] = en

	e.logger.Debug("auto-reply scheduled", zap.String("chat_id", chatID), zap.Duration("delay", delay))
	return true
}

// replyDelay draws a delay uniformly from [ReplyMin, ReplyMax). Callers hold e.mu.
func (e *Engine) replyDelay() time.Duration {
	span := e.opts.ReplyMax - e.opts.ReplyMin
	if span <= 0 {
		return e.opts.ReplyMin
	}
	return e.opts.ReplyMin + time.Duration(e.opts.Rand.Float64()*float64(span))
}

// claim runs remove under the registry lock and, when the timer was still
// registered and the engine is open, counts the callback as in flight.
func (e *Engine) claim(remove func() bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !remove() {
		return false
	}
	e.inflight.Add(1)
	return true
}

func (e *Engine) removeStatus(messageID string, en *entry) bool {
	list := e.status[messageID]
	for i, cand := range list {
		if cand != en {
			continue
		}
		list = append(list[:i:i], list[i+1:]...)
		if len(list) == 0 {
			delete(e.status, messageID)
		} else {
			e.status[messageID] = list
		}
		return true
	}
	return false
}

func (e *Engine) removeReply(chatID string, en *entry) bool {
	if e.replies[chatID] != en {
		return false
	}
	delete(e.replies, chatID)
	return true
}

// CancelMessage cancels the pending status timers of one message.
func (e *Engine) CancelMessage(messageID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, en := range e.status[messageID] {
		en.timer.Stop()
	}
	delete(e.status, messageID)
}

// CancelChat cancels the pending reply of one chat.
func (e *Engine) CancelChat(chatID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if en, ok := e.replies[chatID]; ok {
		en.timer.Stop()
		delete(e.replies, chatID)
	}
}

// Pending returns the number of timers that have not fired or been cancelled.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.replies)
	for _, list := range e.status {
		n += len(list)
	}
	return n
}

// Shutdown cancels every pending timer and waits for callbacks already
// running to finish. No dispatch happens after Shutdown returns.
// It must not be called from a timer callback.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	cancelled := 0
	for id, list := range e.status {
		for _, en := range list {
			if en.timer.Stop() {
				cancelled++
			}
		}
		delete(e.status, id)
	}
	for id, en := range e.replies {
		if en.timer.Stop() {
			cancelled++
		}
		delete(e.replies, id)
	}
	e.mu.Unlock()

	e.inflight.Wait()
	e.logger.Info("delivery engine stopped", zap.Int("cancelled_timers", cancelled))
}
