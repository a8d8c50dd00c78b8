package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/timada-org/pikav/internal/cluster"
	"github.com/timada-org/pikav/internal/publisher"
	"github.com/timada-org/pikav/internal/topic"
	"github.com/timada-org/pikav/pb"
)

// clientIDHeader carries the session id a subscriber obtained from its
// bootstrap frame.
const clientIDHeader = "X-Pikav-Client-ID"

// Server is the subscriber-facing HTTP surface: SSE streaming plus
// subscription management.
type Server struct {
	pub   *publisher.Publisher
	peers []*cluster.Peer
	auth  *Auth
	log   *slog.Logger
}

func NewServer(pub *publisher.Publisher, peers []*cluster.Peer, auth *Auth, log *slog.Logger) *Server {
	return &Server{pub: pub, peers: peers, auth: auth, log: log}
}

// Handler returns the http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /subscribe/{filter...}", s.handleSubscribe)
	mux.HandleFunc("PUT /unsubscribe/{filter...}", s.handleUnsubscribe)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	userID, clientID, filter, ok := s.subscriptionRequest(w, r)
	if !ok {
		return
	}

	if err := s.pub.Subscribe(filter, userID, clientID); err != nil {
		if errors.Is(err, publisher.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Peers in the same region serve the same users; they need the filter
	// too so their publishes reach this subscriber's session mirror.
	for _, peer := range s.sameRegionPeers() {
		_, err := peer.Subscribe(r.Context(), &pb.SubscribeRequest{
			Filter:   filter.String(),
			UserId:   userID,
			ClientId: clientID,
		})
		if err != nil {
			s.log.Error("forwarding subscribe", "filter", filter, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, clientID, filter, ok := s.subscriptionRequest(w, r)
	if !ok {
		return
	}

	if err := s.pub.Unsubscribe(filter, userID, clientID); err != nil {
		if errors.Is(err, publisher.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	for _, peer := range s.sameRegionPeers() {
		_, err := peer.Unsubscribe(r.Context(), &pb.UnsubscribeRequest{
			Filter:   filter.String(),
			UserId:   userID,
			ClientId: clientID,
		})
		if err != nil {
			s.log.Error("forwarding unsubscribe", "filter", filter, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// subscriptionRequest extracts and validates the common inputs of the
// subscribe and unsubscribe handlers, writing the error response itself when
// something is off.
func (s *Server) subscriptionRequest(w http.ResponseWriter, r *http.Request) (userID, clientID string, filter topic.Filter, ok bool) {
	userID, err := s.auth.UserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", "", topic.Filter{}, false
	}

	clientID = r.Header.Get(clientIDHeader)
	if clientID == "" {
		writeError(w, http.StatusBadRequest, clientIDHeader+" header is missing")
		return "", "", topic.Filter{}, false
	}

	filter, err = topic.NewFilter(r.PathValue("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", "", topic.Filter{}, false
	}

	return userID, clientID, filter, true
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	rx, err := s.pub.CreateSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering.
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-rx:
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) sameRegionPeers() []*cluster.Peer {
	var peers []*cluster.Peer
	for _, p := range s.peers {
		if p.SameRegion() {
			peers = append(peers, p)
		}
	}
	return peers
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response in the wire shape
// {"code": status, "message": message}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"code": status, "message": message})
}
