package cluster

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/timada-org/pikav/internal/publisher"
	"github.com/timada-org/pikav/internal/topic"
	"github.com/timada-org/pikav/pb"
)

// Server exposes the local publisher to the rest of the cluster.
type Server struct {
	pub   *publisher.Publisher
	peers []*Peer
	log   *slog.Logger
}

func NewServer(pub *publisher.Publisher, peers []*Peer, log *slog.Logger) *Server {
	return &Server{pub: pub, peers: peers, log: log}
}

// Publish delivers the events to local sessions. When propagate is set the
// same events are forwarded once to every peer; peers created without a
// namespace re-publish with propagate off, so a batch crosses the cluster in a
// single hop.
func (s *Server) Publish(ctx context.Context, req *pb.PublishRequest) (*pb.PublishReply, error) {
	messages := make([]publisher.Message, 0, len(req.Events))
	for _, ev := range req.Events {
		if _, err := topic.NewName(ev.Topic); err != nil {
			s.log.Warn("skipping event with invalid topic", "topic", ev.Topic, "error", err)
			continue
		}
		messages = append(messages, publisher.Message{
			UserID: ev.UserId,
			Event: publisher.Event{
				Topic:    ev.Topic,
				Name:     ev.Name,
				Data:     FromValue(ev.Data),
				Metadata: FromValue(ev.Metadata),
			},
		})
	}

	s.pub.Publish(messages)

	if req.Propagate {
		for _, peer := range s.peers {
			peer.Publish(req.Events)
		}
	}

	return &pb.PublishReply{Success: true}, nil
}

// Subscribe adds a filter to a local session. An unknown client id is not an
// error here: subscription changes race with session teardown across nodes,
// and the caller cannot act on the failure anyway.
func (s *Server) Subscribe(ctx context.Context, req *pb.SubscribeRequest) (*pb.SubscribeReply, error) {
	f, err := topic.NewFilter(req.Filter)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid filter %q: %v", req.Filter, err)
	}

	if err := s.pub.Subscribe(f, req.UserId, req.ClientId); err != nil && !errors.Is(err, publisher.ErrSessionNotFound) {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &pb.SubscribeReply{Success: true}, nil
}

// Unsubscribe removes a filter from a local session, with the same unknown
// client id tolerance as Subscribe.
func (s *Server) Unsubscribe(ctx context.Context, req *pb.UnsubscribeRequest) (*pb.UnsubscribeReply, error) {
	f, err := topic.NewFilter(req.Filter)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid filter %q: %v", req.Filter, err)
	}

	if err := s.pub.Unsubscribe(f, req.UserId, req.ClientId); err != nil && !errors.Is(err, publisher.ErrSessionNotFound) {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &pb.UnsubscribeReply{Success: true}, nil
}

// NewGRPCServer creates a gRPC server with standard interceptors, registers
// the Pikav service and reflection, and returns the server ready to serve.
func NewGRPCServer(srv *Server) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor,
			LoggingInterceptor,
		),
	)

	pb.RegisterPikavServer(grpcServer, srv)
	reflection.Register(grpcServer)

	return grpcServer
}
