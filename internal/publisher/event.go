package publisher

// Topic and name of the bootstrap event sent as the first frame of every
// session. Its data carries the session id the client must echo back in the
// X-Pikav-Client-ID header.
const (
	SysSessionTopic   = "$SYS/session"
	SysSessionCreated = "Created"
)

// Event is a single bus event as it appears inside an SSE frame.
type Event struct {
	Topic    string   `json:"topic"`
	Name     string   `json:"name"`
	Data     any      `json:"data"`
	Metadata any      `json:"metadata,omitempty"`
	Filters  []string `json:"filters,omitempty"`
}

// Message addresses an event to a single user. Every live session of that
// user whose filters match the event topic receives one frame.
type Message struct {
	UserID string
	Event  Event
}
