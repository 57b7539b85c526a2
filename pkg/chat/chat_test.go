package chat

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/goleak"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func morpheus(t *testing.T) *genealogy.Node {
	t.Helper()
	n, ok := genealogy.Find(genealogy.Sample(), 4)
	if !ok {
		t.Fatal("sample has no node 4")
	}
	return n
}

func TestReply(t *testing.T) {
	got := Reply(morpheus(t))
	want := "I am Morpheus, a generation 3 AI agent with traits: " + genealogy.TraitList(morpheus(t).Traits)
	if got != want {
		t.Errorf("Reply() = %q, want %q", got, want)
	}
}

func TestSendSchedulesOneReply(t *testing.T) {
	fixed := time.Date(2024, 12, 28, 9, 0, 0, 0, time.UTC)
	var (
		mu      sync.Mutex
		replies []Message
	)
	s, err := NewSession(morpheus(t),
		WithDelay(10*time.Millisecond),
		WithClock(func() time.Time { return fixed }),
		OnReply(func(m Message) {
			mu.Lock()
			replies = append(replies, m)
			mu.Unlock()
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	sent, ok := s.Send("hello")
	if !ok {
		t.Fatal("Send() rejected a non-blank message")
	}
	if sent.Sender != UserSender || sent.Content != "hello" || !sent.Timestamp.Equal(fixed) {
		t.Errorf("sent = %+v", sent)
	}
	if _, err := uuid.Parse(sent.ID); err != nil {
		t.Errorf("message id %q is not a uuid: %v", sent.ID, err)
	}

	s.Wait()

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(Messages()) = %d, want 2", len(msgs))
	}
	if msgs[1].Sender != "Morpheus" || msgs[1].Content != Reply(s.Agent()) {
		t.Errorf("reply = %+v", msgs[1])
	}
	if msgs[0].ID == msgs[1].ID {
		t.Error("messages share an id")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(replies) != 1 || replies[0].ID != msgs[1].ID {
		t.Errorf("OnReply saw %d replies", len(replies))
	}
}

func TestSendIgnoresBlank(t *testing.T) {
	s, _ := NewSession(morpheus(t), WithDelay(0))
	for _, in := range []string{"", "   ", "\t\n"} {
		if _, ok := s.Send(in); ok {
			t.Errorf("Send(%q) accepted blank input", in)
		}
	}
	s.Wait()
	if n := len(s.Messages()); n != 0 {
		t.Errorf("len(Messages()) = %d, want 0", n)
	}
}

func TestReplyPerMessage(t *testing.T) {
	s, _ := NewSession(morpheus(t), WithDelay(time.Millisecond))
	for range 3 {
		s.Send("ping")
	}
	s.Wait()

	agent := 0
	for _, m := range s.Messages() {
		if m.Sender == "Morpheus" {
			agent++
		}
	}
	if agent != 3 {
		t.Errorf("agent replies = %d, want 3", agent)
	}
}

func TestReplyNotBeforeDelay(t *testing.T) {
	s, _ := NewSession(morpheus(t), WithDelay(50*time.Millisecond))
	s.Send("hi")
	if n := len(s.Messages()); n != 1 {
		t.Errorf("reply arrived before the delay: %d messages", n)
	}
	s.Wait()
}

func TestNewSessionNilAgent(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewSession(nil) = %v, want INVALID_INPUT", err)
	}
}
