package publisher

import (
	"encoding/json"
	"sync"

	"github.com/timada-org/pikav/internal/topic"
)

// pingFrame is sent by the stale probe. It rides the normal frame stream and
// is ignored by clients.
var pingFrame = []byte("data: ping\n\n")

// Session is one connected SSE subscriber: a bounded outbound queue of
// serialized frames, an identity bound on first subscribe, and the list of
// subscribed filters.
//
// The user id and the filter list are guarded independently so delivery never
// contends with the publisher's top-level maps.
type Session struct {
	queue chan []byte

	userMu sync.RWMutex
	userID string

	filterMu sync.RWMutex
	filters  []topic.Filter
}

// NewSession wraps queue into a session with no user id and no filters.
func NewSession(queue chan []byte) *Session {
	return &Session{queue: queue}
}

// UserID returns the bound user id, or "" when the session is unbound.
func (s *Session) UserID() string {
	s.userMu.RLock()
	defer s.userMu.RUnlock()
	return s.userID
}

// TryBindUser binds the session to userID. Binding an unbound session or
// re-binding to the same user returns rebound=false. Binding to a different
// user overwrites the identity, clears the filter list and returns
// rebound=true with the previous user id, so the caller can fix up its
// user index.
func (s *Session) TryBindUser(userID string) (rebound bool, prev string) {
	s.userMu.Lock()
	defer s.userMu.Unlock()

	if s.userID == "" || s.userID == userID {
		s.userID = userID
		return false, ""
	}

	prev = s.userID
	s.userID = userID

	s.filterMu.Lock()
	s.filters = nil
	s.filterMu.Unlock()

	return true, prev
}

// AddFilter appends f to the filter list. It returns false when f is already
// present, leaving the list untouched.
func (s *Session) AddFilter(f topic.Filter) bool {
	s.filterMu.Lock()
	defer s.filterMu.Unlock()

	for _, existing := range s.filters {
		if existing.String() == f.String() {
			return false
		}
	}
	s.filters = append(s.filters, f)
	return true
}

// RemoveFilter removes f from the filter list if present and reports whether
// the list is empty afterwards.
func (s *Session) RemoveFilter(f topic.Filter) bool {
	s.filterMu.Lock()
	defer s.filterMu.Unlock()

	for i, existing := range s.filters {
		if existing.String() == f.String() {
			s.filters = append(s.filters[:i], s.filters[i+1:]...)
			break
		}
	}
	return len(s.filters) == 0
}

// Filters returns a snapshot of the subscribed filters.
func (s *Session) Filters() []topic.Filter {
	s.filterMu.RLock()
	defer s.filterMu.RUnlock()
	return append([]topic.Filter(nil), s.filters...)
}

// IsStale probes the queue with a non-blocking ping. It reports true when the
// ping cannot be enqueued, i.e. the consumer has stalled or is gone. For
// healthy sessions the probe doubles as a keepalive.
func (s *Session) IsStale() bool {
	return !s.trySend(pingFrame)
}

// Deliver matches ev against the session's filters and, when at least one
// matches, enqueues a single SSE frame listing the matching filters. The
// event is serialized once. A full queue drops the frame silently; the reaper
// collects the session on its next tick. Only serialization can fail.
func (s *Session) Deliver(ev Event) error {
	name, err := topic.NewName(ev.Topic)
	if err != nil {
		return err
	}

	s.filterMu.RLock()
	var matched []string
	for _, f := range s.filters {
		if f.Match(name) {
			matched = append(matched, f.String())
		}
	}
	s.filterMu.RUnlock()

	if len(matched) == 0 {
		return nil
	}

	ev.Filters = matched
	_, err = s.sendEvent(ev)
	return err
}

// sendEvent serializes ev and enqueues it as an SSE message frame, skipping
// the filter match. It reports whether the frame was accepted by the queue.
// Used for bootstrap and server-internal events.
func (s *Session) sendEvent(ev Event) (bool, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return false, err
	}

	frame := make([]byte, 0, len("event: message\ndata: \n\n")+len(data))
	frame = append(frame, "event: message\ndata: "...)
	frame = append(frame, data...)
	frame = append(frame, "\n\n"...)

	return s.trySend(frame), nil
}

func (s *Session) trySend(frame []byte) bool {
	select {
	case s.queue <- frame:
		framesDelivered.Inc()
		return true
	default:
		framesDropped.Inc()
		return false
	}
}
