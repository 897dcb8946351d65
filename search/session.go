package search

import (
	"strings"
	"sync"
	"time"
)

// View is the state of a search box: what the user has typed so far and
// the query that is actually applied to the catalog.
type View struct {
	SessionID string `json:"sessionId"`
	Input     string `json:"input"`
	Query     string `json:"query"`
	Category  string `json:"category"`
	Pending   bool   `json:"pending"`
	Version   uint64 `json:"version"`
}

// Session is one client's search box. Text input is debounced; category
// changes apply immediately.
type Session struct {
	ID string

	mu          sync.Mutex
	input       string
	query       string
	category    string
	version     uint64
	lastActive  time.Time
	closed      bool
	subscribers map[chan View]struct{}

	debouncer *Debouncer
}

func newSession(id string, delay time.Duration, category string, now time.Time) *Session {
	s := &Session{
		ID:          id,
		category:    strings.TrimSpace(category),
		lastActive:  now,
		subscribers: make(map[chan View]struct{}),
	}
	s.debouncer = NewDebouncer(delay, s.settle)
	return s
}

// Type records a keystroke. The query follows once typing pauses.
func (s *Session) Type(text string) View {
	s.mu.Lock()
	s.input = text
	s.lastActive = time.Now()
	s.debouncer.Push(text)
	s.mu.Unlock()

	return s.View()
}

// SetCategory changes the category filter right away.
func (s *Session) SetCategory(category string) View {
	s.mu.Lock()
	s.category = strings.TrimSpace(category)
	s.lastActive = time.Now()
	s.version++
	view := s.viewLocked()
	s.broadcastLocked(view)
	s.mu.Unlock()
	return view
}

// Flush applies the pending input without waiting.
func (s *Session) Flush() View {
	s.debouncer.Flush()
	return s.View()
}

func (s *Session) settle(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.query = text
	s.version++
	s.broadcastLocked(s.viewLocked())
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	return View{
		SessionID: s.ID,
		Input:     s.input,
		Query:     s.query,
		Category:  s.category,
		Pending:   s.debouncer.Pending(),
		Version:   s.version,
	}
}

// Subscribe returns a channel receiving the view after every applied
// change. Slow readers only see the latest view. The channel is closed by
// cancel or when the session closes.
func (s *Session) Subscribe() (<-chan View, func()) {
	ch := make(chan View, 1)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subscribers[ch]; ok {
				delete(s.subscribers, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Subscribers reports how many streams are attached.
func (s *Session) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

func (s *Session) broadcastLocked(view View) {
	for ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- view:
		default:
		}
	}
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive.Before(cutoff)
}

func (s *Session) close() {
	s.debouncer.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}
