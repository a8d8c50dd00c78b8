package api

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"google.golang.org/grpc"

	"github.com/timada-org/pikav/internal/cluster"
	"github.com/timada-org/pikav/internal/publisher"
	"github.com/timada-org/pikav/pb"
)

type event struct {
	Topic   string   `json:"topic"`
	Name    string   `json:"name"`
	Data    any      `json:"data"`
	Filters []string `json:"filters"`
}

func newTestAPI(t *testing.T, peers []*cluster.Peer) (*publisher.Publisher, *httptest.Server) {
	t.Helper()
	pub := publisher.New()
	srv := NewServer(pub, peers, NewStaticAuth(staticKeyfunc), slog.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return pub, ts
}

// readFrame reads one SSE frame, everything up to and including the blank
// line.
func readFrame(t *testing.T, br *bufio.Reader) string {
	t.Helper()
	var sb strings.Builder
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			t.Fatalf("reading frame: %v", err)
		}
		sb.WriteString(line)
		if line == "\n" {
			return sb.String()
		}
	}
}

func decodeEvent(t *testing.T, frame string) event {
	t.Helper()
	if !strings.HasPrefix(frame, "event: message\ndata: ") || !strings.HasSuffix(frame, "\n\n") {
		t.Fatalf("malformed frame: %q", frame)
	}
	payload := strings.TrimSuffix(strings.TrimPrefix(frame, "event: message\ndata: "), "\n\n")
	var ev event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		t.Fatalf("unmarshaling %q: %v", payload, err)
	}
	return ev
}

// openStream connects to GET /events and consumes the bootstrap frame,
// returning the session id and a reader positioned at the next frame.
func openStream(t *testing.T, baseURL string) (string, *bufio.Reader) {
	t.Helper()

	resp, err := http.Get(baseURL + "/events")
	if err != nil {
		t.Fatalf("GET /events: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /events status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q, want text/event-stream", ct)
	}

	br := bufio.NewReader(resp.Body)
	ev := decodeEvent(t, readFrame(t, br))
	if ev.Topic != "$SYS/session" || ev.Name != "Created" {
		t.Fatalf("bootstrap frame = %q %q, want $SYS/session Created", ev.Topic, ev.Name)
	}
	id, ok := ev.Data.(string)
	if !ok || id == "" {
		t.Fatalf("bootstrap data = %#v, want a session id", ev.Data)
	}
	return id, br
}

// readEvent reads the next frame in a goroutine so a silent stream cannot
// hang the test.
func readEvent(t *testing.T, br *bufio.Reader, timeout time.Duration) event {
	t.Helper()
	frames := make(chan string, 1)
	go func() {
		var sb strings.Builder
		for {
			line, err := br.ReadString('\n')
			if err != nil {
				return
			}
			sb.WriteString(line)
			if line == "\n" {
				frames <- sb.String()
				return
			}
		}
	}()
	select {
	case frame := <-frames:
		return decodeEvent(t, frame)
	case <-time.After(timeout):
		t.Fatal("timed out waiting for frame")
		return event{}
	}
}

func doPut(t *testing.T, url, token, clientID string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, url, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if clientID != "" {
		req.Header.Set(clientIDHeader, clientID)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func checkErrorBody(t *testing.T, resp *http.Response, wantCode int) {
	t.Helper()
	if resp.StatusCode != wantCode {
		t.Fatalf("status = %d, want %d", resp.StatusCode, wantCode)
	}
	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if body.Code != wantCode {
		t.Fatalf("body code = %d, want %d", body.Code, wantCode)
	}
	if body.Message == "" {
		t.Fatal("error body has no message")
	}
}

func TestServer_SubscribeAndStream(t *testing.T) {
	pub, ts := newTestAPI(t, nil)
	token := signToken(t, jwt.MapClaims{"sub": "alice"})

	id, br := openStream(t, ts.URL)

	resp := doPut(t, ts.URL+"/subscribe/todos/+", token, id)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("subscribe status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || !body.Success {
		t.Fatalf("subscribe body = success %v err %v, want success true", body.Success, err)
	}

	pub.Publish([]publisher.Message{{
		UserID: "alice",
		Event:  publisher.Event{Topic: "todos/1", Name: "Created", Data: map[string]any{"id": 1}},
	}})

	ev := readEvent(t, br, time.Second)
	if ev.Topic != "todos/1" || ev.Name != "Created" {
		t.Fatalf("got %q %q, want todos/1 Created", ev.Topic, ev.Name)
	}
	if len(ev.Filters) != 1 || ev.Filters[0] != "todos/+" {
		t.Fatalf("filters = %v, want [todos/+]", ev.Filters)
	}
}

func TestServer_SubscribeErrors(t *testing.T) {
	_, ts := newTestAPI(t, nil)
	token := signToken(t, jwt.MapClaims{"sub": "alice"})
	id, _ := openStream(t, ts.URL)

	t.Run("missing token", func(t *testing.T) {
		checkErrorBody(t, doPut(t, ts.URL+"/subscribe/todos/+", "", id), http.StatusUnauthorized)
	})
	t.Run("bad token", func(t *testing.T) {
		resp := doPut(t, ts.URL+"/subscribe/todos/+", "definitely.not.valid", id)
		checkErrorBody(t, resp, http.StatusUnauthorized)
	})
	t.Run("missing client id", func(t *testing.T) {
		checkErrorBody(t, doPut(t, ts.URL+"/subscribe/todos/+", token, ""), http.StatusBadRequest)
	})
	t.Run("invalid filter", func(t *testing.T) {
		checkErrorBody(t, doPut(t, ts.URL+"/subscribe/a/%23/b", token, id), http.StatusBadRequest)
	})
	t.Run("unknown session", func(t *testing.T) {
		checkErrorBody(t, doPut(t, ts.URL+"/subscribe/todos/+", token, "nope"), http.StatusNotFound)
	})
	t.Run("unsubscribe unknown session", func(t *testing.T) {
		checkErrorBody(t, doPut(t, ts.URL+"/unsubscribe/todos/+", token, "nope"), http.StatusNotFound)
	})
}

func TestServer_Unsubscribe(t *testing.T) {
	pub, ts := newTestAPI(t, nil)
	token := signToken(t, jwt.MapClaims{"sub": "alice"})
	id, br := openStream(t, ts.URL)

	doPut(t, ts.URL+"/subscribe/a/b", token, id)
	doPut(t, ts.URL+"/subscribe/c/d", token, id)
	resp := doPut(t, ts.URL+"/unsubscribe/a/b", token, id)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unsubscribe status = %d, want 200", resp.StatusCode)
	}

	// The first publish must be invisible; the second acts as a fence.
	pub.Publish([]publisher.Message{{UserID: "alice", Event: publisher.Event{Topic: "a/b", Name: "Hidden"}}})
	pub.Publish([]publisher.Message{{UserID: "alice", Event: publisher.Event{Topic: "c/d", Name: "Seen"}}})

	ev := readEvent(t, br, time.Second)
	if ev.Topic != "c/d" || ev.Name != "Seen" {
		t.Fatalf("got %q %q, want c/d Seen", ev.Topic, ev.Name)
	}
}

// capturingNode records subscription RPCs so forwarding can be asserted.
type capturingNode struct {
	mu   sync.Mutex
	subs []*pb.SubscribeRequest
	fail bool
}

func (c *capturingNode) setFail(fail bool) {
	c.mu.Lock()
	c.fail = fail
	c.mu.Unlock()
}

func (c *capturingNode) Subscribe(ctx context.Context, req *pb.SubscribeRequest) (*pb.SubscribeReply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return nil, io.ErrUnexpectedEOF
	}
	c.subs = append(c.subs, req)
	return &pb.SubscribeReply{Success: true}, nil
}

func (c *capturingNode) Unsubscribe(ctx context.Context, req *pb.UnsubscribeRequest) (*pb.UnsubscribeReply, error) {
	return &pb.UnsubscribeReply{Success: true}, nil
}

func (c *capturingNode) Publish(ctx context.Context, req *pb.PublishRequest) (*pb.PublishReply, error) {
	return &pb.PublishReply{Success: true}, nil
}

func startCapturingNode(t *testing.T) (*capturingNode, string) {
	t.Helper()
	node := &capturingNode{}
	srv := grpc.NewServer()
	pb.RegisterPikavServer(srv, node)
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)
	return node, lis.Addr().String()
}

func newSameRegionPeer(t *testing.T, addr string) *cluster.Peer {
	t.Helper()
	peer, err := cluster.NewPeer("http://"+addr+"?same_region=true", "", slog.Default())
	if err != nil {
		t.Fatalf("NewPeer: %v", err)
	}
	t.Cleanup(func() { peer.Close() })
	return peer
}

func TestServer_ForwardsToSameRegionPeers(t *testing.T) {
	node, addr := startCapturingNode(t)
	_, ts := newTestAPI(t, []*cluster.Peer{newSameRegionPeer(t, addr)})
	token := signToken(t, jwt.MapClaims{"sub": "alice"})
	id, _ := openStream(t, ts.URL)

	resp := doPut(t, ts.URL+"/subscribe/todos/+", token, id)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("subscribe status = %d, want 200", resp.StatusCode)
	}

	node.mu.Lock()
	defer node.mu.Unlock()
	if len(node.subs) != 1 {
		t.Fatalf("forwarded subscribes = %d, want 1", len(node.subs))
	}
	req := node.subs[0]
	if req.Filter != "todos/+" || req.UserId != "alice" || req.ClientId != id {
		t.Fatalf("forwarded request = %q %q %q, want todos/+ alice %s", req.Filter, req.UserId, req.ClientId, id)
	}
}

func TestServer_ForwardFailureIs500(t *testing.T) {
	node, addr := startCapturingNode(t)
	node.setFail(true)
	_, ts := newTestAPI(t, []*cluster.Peer{newSameRegionPeer(t, addr)})
	token := signToken(t, jwt.MapClaims{"sub": "alice"})
	id, _ := openStream(t, ts.URL)

	checkErrorBody(t, doPut(t, ts.URL+"/subscribe/todos/+", token, id), http.StatusInternalServerError)
}

func TestServer_Health(t *testing.T) {
	_, ts := newTestAPI(t, nil)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestServer_Metrics(t *testing.T) {
	_, ts := newTestAPI(t, nil)
	openStream(t, ts.URL)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if !strings.Contains(string(body), "pikav_sessions") {
		t.Fatal("metrics output is missing pikav_sessions")
	}
}
