package cluster

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"google.golang.org/grpc"

	"github.com/timada-org/pikav/pb"
)

const (
	flushInterval = 300 * time.Millisecond
	maxBatchSize  = 1000
	retryDelay    = time.Second
)

// Peer is a client for one remote pikav node. Published events are queued and
// flushed in batches by a background worker; Subscribe and Unsubscribe are
// synchronous RPCs.
type Peer struct {
	url        string
	namespace  string
	sameRegion bool
	log        *slog.Logger

	conn   *grpc.ClientConn
	client pb.PikavClient

	mu      sync.Mutex
	pending []*pb.Event

	stop chan struct{}
	done chan struct{}
}

// NewPeer connects lazily to the node at rawURL. A `same_region=true` query
// parameter marks the peer as serving the same session population, which makes
// the API forward subscription changes to it. A non-empty namespace prefixes
// every published topic with `namespace/` and asks the remote node to
// propagate the batch to its own peers.
func NewPeer(rawURL, namespace string, log *slog.Logger) (*Peer, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing peer url %q: %w", rawURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("peer url %q has no host", rawURL)
	}

	conn, err := grpc.Dial(u.Host, grpc.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("dialing peer %q: %w", u.Host, err)
	}

	p := &Peer{
		url:        rawURL,
		namespace:  namespace,
		sameRegion: u.Query().Get("same_region") == "true",
		log:        log.With("peer", u.Host),
		conn:       conn,
		client:     pb.NewPikavClient(conn),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go p.flushLoop()

	return p, nil
}

// SameRegion reports whether the peer was declared with same_region=true.
func (p *Peer) SameRegion() bool { return p.sameRegion }

// Publish queues events for the next batch flush. It never blocks on the
// network.
func (p *Peer) Publish(events []*pb.Event) {
	p.mu.Lock()
	p.pending = append(p.pending, events...)
	p.mu.Unlock()
}

// PublishSync sends events in one immediate RPC, bypassing the batch queue.
func (p *Peer) PublishSync(ctx context.Context, events []*pb.Event) error {
	_, err := p.client.Publish(ctx, &pb.PublishRequest{
		Propagate: p.namespace != "",
		Events:    p.prefixed(events),
	})
	return err
}

// Subscribe registers a filter on the remote node.
func (p *Peer) Subscribe(ctx context.Context, req *pb.SubscribeRequest) (*pb.SubscribeReply, error) {
	return p.client.Subscribe(ctx, req)
}

// Unsubscribe removes a filter on the remote node.
func (p *Peer) Unsubscribe(ctx context.Context, req *pb.UnsubscribeRequest) (*pb.UnsubscribeReply, error) {
	return p.client.Unsubscribe(ctx, req)
}

// Close stops the flush worker and closes the connection. Queued events that
// were never flushed are discarded.
func (p *Peer) Close() error {
	close(p.stop)
	<-p.done
	return p.conn.Close()
}

func (p *Peer) flushLoop() {
	defer close(p.done)

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.flush()
		}
	}
}

// flush sends up to maxBatchSize queued events in one Publish RPC. The batch
// stays queued until the RPC succeeds, so a flaky peer loses nothing.
func (p *Peer) flush() {
	p.mu.Lock()
	n := len(p.pending)
	if n == 0 {
		p.mu.Unlock()
		return
	}
	if n > maxBatchSize {
		n = maxBatchSize
	}
	batch := p.prefixed(p.pending[:n])
	p.mu.Unlock()

	_, err := p.client.Publish(context.Background(), &pb.PublishRequest{
		Propagate: p.namespace != "",
		Events:    batch,
	})
	if err != nil {
		p.log.Error("publishing batch", "events", n, "error", err)
		time.Sleep(retryDelay)
		return
	}

	p.mu.Lock()
	p.pending = p.pending[n:]
	p.mu.Unlock()
}

// prefixed copies the events with the namespace prefix applied. Without a
// namespace the events are passed through untouched, so a failed flush
// retries with the originals.
func (p *Peer) prefixed(events []*pb.Event) []*pb.Event {
	if p.namespace == "" {
		out := make([]*pb.Event, len(events))
		copy(out, events)
		return out
	}
	out := make([]*pb.Event, len(events))
	for i, ev := range events {
		prefixed := *ev
		prefixed.Topic = p.namespace + "/" + ev.Topic
		out[i] = &prefixed
	}
	return out
}
