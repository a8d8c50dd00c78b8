package events

import (
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/timada-org/pikav/internal/publisher"
	"github.com/timada-org/pikav/internal/topic"
)

// startTestNATS starts an embedded NATS server and returns its client URL.
func startTestNATS(t *testing.T) string {
	t.Helper()
	opts := &natsserver.Options{Host: "127.0.0.1", Port: -1}
	srv, err := natsserver.NewServer(opts)
	if err != nil {
		t.Fatalf("starting embedded NATS: %v", err)
	}
	srv.Start()
	t.Cleanup(srv.Shutdown)
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("embedded NATS not ready")
	}
	return srv.ClientURL()
}

func connect(t *testing.T, url string) *nats.Conn {
	t.Helper()
	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("connecting to NATS: %v", err)
	}
	t.Cleanup(nc.Close)
	return nc
}

// newBusSession creates a session subscribed to filter and consumes the
// bootstrap frame.
func newBusSession(t *testing.T, pub *publisher.Publisher, filter string) <-chan []byte {
	t.Helper()
	rx, err := pub.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	raw := <-rx
	var boot struct {
		Data string `json:"data"`
	}
	payload := strings.TrimSuffix(strings.TrimPrefix(string(raw), "event: message\ndata: "), "\n\n")
	if err := json.Unmarshal([]byte(payload), &boot); err != nil {
		t.Fatalf("unmarshaling bootstrap frame: %v", err)
	}
	f, err := topic.NewFilter(filter)
	if err != nil {
		t.Fatalf("NewFilter(%q): %v", filter, err)
	}
	if err := pub.Subscribe(f, "alice", boot.Data); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	return rx
}

func TestSource_DeliversBatch(t *testing.T) {
	url := startTestNATS(t)
	pub := publisher.New()
	rx := newBusSession(t, pub, "todos/#")

	src, err := NewSource(url, "", pub, nil, slog.Default())
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	defer src.Close()

	nc := connect(t, url)
	batch := `[{"user_id":"alice","topic":"todos/1","name":"Created","data":{"id":1}},
	           {"user_id":"alice","topic":"todos/2","name":"Created","data":{"id":2}}]`
	if err := nc.Publish(DefaultSubject, []byte(batch)); err != nil {
		t.Fatalf("publishing: %v", err)
	}
	nc.Flush()

	for _, want := range []string{"todos/1", "todos/2"} {
		select {
		case raw := <-rx:
			if !strings.Contains(string(raw), `"topic":"`+want+`"`) {
				t.Fatalf("frame %q does not carry topic %q", raw, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestSource_CustomSubject(t *testing.T) {
	url := startTestNATS(t)
	pub := publisher.New()
	rx := newBusSession(t, pub, "todos/#")

	src, err := NewSource(url, "acme.events", pub, nil, slog.Default())
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	defer src.Close()

	nc := connect(t, url)
	nc.Publish("acme.events", []byte(`[{"user_id":"alice","topic":"todos/1","name":"Created"}]`))
	nc.Flush()

	select {
	case <-rx:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
	}
}

func TestSource_SkipsInvalidPayloads(t *testing.T) {
	url := startTestNATS(t)
	pub := publisher.New()
	rx := newBusSession(t, pub, "todos/#")

	src, err := NewSource(url, "", pub, nil, slog.Default())
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	defer src.Close()

	nc := connect(t, url)
	// Not JSON at all, then a batch with an invalid topic, then a good one.
	nc.Publish(DefaultSubject, []byte(`not json`))
	nc.Publish(DefaultSubject, []byte(`[{"user_id":"alice","topic":"todos/+","name":"Broken"}]`))
	nc.Publish(DefaultSubject, []byte(`[{"user_id":"alice","topic":"todos/1","name":"Created"}]`))
	nc.Flush()

	select {
	case raw := <-rx:
		if !strings.Contains(string(raw), `"topic":"todos/1"`) {
			t.Fatalf("unexpected frame %q", raw)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
	}

	select {
	case raw := <-rx:
		t.Fatalf("invalid payloads must not produce frames, got %q", raw)
	case <-time.After(50 * time.Millisecond):
	}
}
