// Package chat simulates a conversation with an agent.
//
// Every message the user sends is answered once, after a fixed delay, with
// the agent introducing itself. There is no inference and no retry: a reply
// that has been scheduled always arrives, and nothing else ever does.
package chat

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
)

// UserSender is the sender name of messages typed by the user.
const UserSender = "You"

// DefaultDelay is how long an agent takes to answer.
const DefaultDelay = time.Second

// Message is one chat line.
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	Sender    string    `json:"sender" yaml:"sender"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewMessage stamps a message with a fresh id.
func NewMessage(sender, content string, ts time.Time) Message {
	return Message{ID: uuid.NewString(), Sender: sender, Content: content, Timestamp: ts}
}

// Reply is the canned answer of agent.
func Reply(agent *genealogy.Node) string {
	return fmt.Sprintf("I am %s, a generation %d AI agent with traits: %s",
		agent.Name, agent.Generation, genealogy.TraitList(agent.Traits))
}

// Session is a conversation with one agent. It is safe for concurrent use;
// replies are appended from timer goroutines.
type Session struct {
	agent   *genealogy.Node
	delay   time.Duration
	now     func() time.Time
	onReply func(Message)

	mu       sync.Mutex
	messages []Message
	pending  sync.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithDelay sets the reply delay. Negative values are treated as zero.
func WithDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = max(d, 0) }
}

// WithClock sets the time source for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// OnReply registers fn to observe every agent reply. fn runs on the timer
// goroutine after the reply was appended.
func OnReply(fn func(Message)) Option {
	return func(s *Session) { s.onReply = fn }
}

// NewSession starts an empty conversation with agent.
func NewSession(agent *genealogy.Node, opts ...Option) (*Session, error) {
	if agent == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chat needs an agent")
	}
	s := &Session{agent: agent, delay: DefaultDelay, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Agent returns the agent being talked to.
func (s *Session) Agent() *genealogy.Node { return s.agent }

// Send appends the user's message and schedules exactly one reply.
// Blank input is ignored and reports false.
func (s *Session) Send(text string) (Message, bool) {
	if strings.TrimSpace(text) == "" {
		return Message{}, false
	}

	msg := NewMessage(UserSender, text, s.now())
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	s.pending.Add(1)
	time.AfterFunc(s.delay, s.reply)
	return msg, true
}

func (s *Session) reply() {
	defer s.pending.Done()

	msg := NewMessage(s.agent.Name, Reply(s.agent), s.now())
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	if s.onReply != nil {
		s.onReply(msg)
	}
}

// Messages returns a copy of the conversation so far.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Wait blocks until every scheduled reply has been delivered.
func (s *Session) Wait() {
	s.pending.Wait()
}
