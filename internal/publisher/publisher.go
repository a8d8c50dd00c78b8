// Package publisher is the in-process pub/sub core: it owns the set of live
// SSE sessions, matches published events against per-session filters, fans
// out to bounded per-session queues and reaps sessions whose queues have
// stalled.
package publisher

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/timada-org/pikav/internal/topic"
)

const (
	// DefaultQueueCapacity bounds the per-session frame queue. A session
	// that falls this many frames behind is dropped by the reaper.
	DefaultQueueCapacity = 100

	// DefaultReapInterval is how often stale sessions are probed and
	// collected.
	DefaultReapInterval = 10 * time.Second
)

// ErrSessionNotFound is returned by Subscribe and Unsubscribe when the client
// id does not name a live session.
var ErrSessionNotFound = errors.New("session not found")

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(p *Publisher) { p.log = log }
}

// WithQueueCapacity overrides the per-session queue capacity.
func WithQueueCapacity(n int) Option {
	return func(p *Publisher) { p.queueCap = n }
}

// WithReapInterval overrides the stale reaper tick.
func WithReapInterval(d time.Duration) Option {
	return func(p *Publisher) { p.reapInterval = d }
}

// Publisher is the session registry and dispatcher. sessions maps session id
// to session; users is the derived back-reference from user id to the ids of
// that user's sessions. Each map has its own read/write lock; when both are
// taken, sessions comes first.
type Publisher struct {
	log          *slog.Logger
	queueCap     int
	reapInterval time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session

	userMu sync.RWMutex
	users  map[string]map[string]struct{}

	reaperStop chan struct{}
	reaperDone chan struct{}
}

// New creates a Publisher. The stale reaper is not running until
// StartReaper is called.
func New(opts ...Option) *Publisher {
	p := &Publisher{
		log:          slog.Default(),
		queueCap:     DefaultQueueCapacity,
		reapInterval: DefaultReapInterval,
		sessions:     make(map[string]*Session),
		users:        make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CreateSession registers a new session and returns the receive side of its
// frame queue. The first frame is the $SYS/session Created bootstrap event
// carrying the fresh session id.
func (p *Publisher) CreateSession() (<-chan []byte, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	queue := make(chan []byte, p.queueCap)
	sess := NewSession(queue)

	sent, err := sess.sendEvent(Event{
		Topic: SysSessionTopic,
		Name:  SysSessionCreated,
		Data:  id,
	})
	if err != nil {
		return nil, err
	}
	if !sent {
		// Cannot happen with a fresh queue, but a session that rejects
		// its bootstrap frame must not be registered.
		return nil, errors.New("bootstrap frame rejected")
	}

	p.mu.Lock()
	p.sessions[id] = sess
	p.mu.Unlock()

	sessionsGauge.Inc()
	p.log.Debug("session created", "session_id", id)

	return queue, nil
}

// Subscribe binds the session named by clientID to userID and adds filter to
// its filter list. The first subscribe fixes the session identity; a
// subscribe under a different user clears the previous filters and moves the
// session between user entries.
func (p *Publisher) Subscribe(filter topic.Filter, userID, clientID string) error {
	p.mu.RLock()
	sess, ok := p.sessions[clientID]
	p.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	if rebound, prev := sess.TryBindUser(userID); rebound {
		p.removeUserSession(prev, clientID)
	}

	if !sess.AddFilter(filter) {
		return nil
	}

	p.userMu.Lock()
	set, ok := p.users[userID]
	if !ok {
		set = make(map[string]struct{})
		p.users[userID] = set
	}
	set[clientID] = struct{}{}
	p.userMu.Unlock()

	return nil
}

// Unsubscribe removes filter from the session's filter list. When the list
// becomes empty the session is also removed from the user index.
func (p *Publisher) Unsubscribe(filter topic.Filter, userID, clientID string) error {
	p.mu.RLock()
	sess, ok := p.sessions[clientID]
	p.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	if !sess.RemoveFilter(filter) {
		return nil
	}

	p.removeUserSession(userID, clientID)
	return nil
}

// Publish fans each message out to every session of its target user whose
// filters match. Delivery failures never halt iteration; per-session frame
// order follows argument order.
func (p *Publisher) Publish(messages []Message) {
	p.mu.RLock()
	p.userMu.RLock()
	defer p.userMu.RUnlock()
	defer p.mu.RUnlock()

	for i := range messages {
		m := &messages[i]

		ids, ok := p.users[m.UserID]
		if !ok {
			continue
		}

		for id := range ids {
			sess, ok := p.sessions[id]
			if !ok {
				continue
			}
			if err := sess.Deliver(m.Event); err != nil {
				p.log.Warn("failed to deliver event",
					"topic", m.Event.Topic,
					"session_id", id,
					"error", err)
			}
		}
	}
}

// StartReaper launches the background goroutine that probes sessions every
// reap interval and removes the stale ones. Call Stop to shut it down.
func (p *Publisher) StartReaper() {
	p.reaperStop = make(chan struct{})
	p.reaperDone = make(chan struct{})
	go p.reapLoop()
	p.log.Info("stale session reaper started", "interval", p.reapInterval)
}

// Stop shuts down the reaper goroutine.
func (p *Publisher) Stop() {
	if p.reaperStop != nil {
		close(p.reaperStop)
		<-p.reaperDone
		p.reaperStop = nil
		p.reaperDone = nil
	}
}

func (p *Publisher) reapLoop() {
	defer close(p.reaperDone)

	ticker := time.NewTicker(p.reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.reaperStop:
			return
		case <-ticker.C:
			p.reapStale()
		}
	}
}

// reapStale probes all sessions under a read lease, then removes the stale
// ones under a write lease. The probe itself keeps healthy sessions alive:
// it enqueues a ping frame.
func (p *Publisher) reapStale() {
	type staleSession struct {
		id     string
		userID string
	}

	var stale []staleSession
	p.mu.RLock()
	for id, sess := range p.sessions {
		if sess.IsStale() {
			stale = append(stale, staleSession{id: id, userID: sess.UserID()})
		}
	}
	p.mu.RUnlock()

	if len(stale) == 0 {
		return
	}

	p.mu.Lock()
	for _, s := range stale {
		delete(p.sessions, s.id)
	}
	p.mu.Unlock()

	for _, s := range stale {
		if s.userID != "" {
			p.removeUserSession(s.userID, s.id)
		}
		p.log.Info("reaped stale session", "session_id", s.id, "user_id", s.userID)
	}

	sessionsGauge.Sub(float64(len(stale)))
	sessionsReaped.Add(float64(len(stale)))
}

// removeUserSession drops clientID from userID's session set, pruning the set
// when it becomes empty.
func (p *Publisher) removeUserSession(userID, clientID string) {
	p.userMu.Lock()
	defer p.userMu.Unlock()

	set, ok := p.users[userID]
	if !ok {
		return
	}
	delete(set, clientID)
	if len(set) == 0 {
		delete(p.users, userID)
	}
}
