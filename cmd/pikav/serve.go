package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/timada-org/pikav/internal/api"
	"github.com/timada-org/pikav/internal/cluster"
	"github.com/timada-org/pikav/internal/config"
	"github.com/timada-org/pikav/internal/events"
	"github.com/timada-org/pikav/internal/publisher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a pikav node",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.JwksURL == "" {
			return fmt.Errorf("jwks_url is required")
		}

		pub := publisher.New(publisher.WithLogger(logger))
		pub.StartReaper()

		var peers []*cluster.Peer
		for _, node := range cfg.Nodes {
			peer, err := cluster.NewPeer(node.URL, node.Namespace, logger)
			if err != nil {
				return err
			}
			peers = append(peers, peer)
			logger.Info("cluster peer added", "url", node.URL, "namespace", node.Namespace)
		}

		// Start the cluster gRPC listener.
		grpcServer := cluster.NewGRPCServer(cluster.NewServer(pub, peers, logger))
		lis, err := net.Listen("tcp", cfg.ClusterAddr)
		if err != nil {
			return err
		}
		go func() {
			logger.Info("cluster server listening", "addr", cfg.ClusterAddr)
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("cluster server error", "err", err)
			}
		}()

		// Start the subscriber-facing HTTP server.
		auth, err := api.NewAuth(cfg.JwksURL)
		if err != nil {
			return err
		}
		httpServer := &http.Server{
			Addr:    cfg.Listen,
			Handler: api.NewServer(pub, peers, auth, logger).Handler(),
		}
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.Listen)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start the NATS bridge if configured.
		var source *events.Source
		if cfg.NATSURL != "" {
			source, err = events.NewSource(cfg.NATSURL, cfg.NATSSubject, pub, peers, logger)
			if err != nil {
				return err
			}
			logger.Info("nats bridge enabled", "nats_url", cfg.NATSURL, "subject", cfg.NATSSubject)
		} else {
			logger.Info("nats bridge disabled (nats_url not set)")
		}

		logger.Info("pikav node started",
			"listen", cfg.Listen,
			"cluster_addr", cfg.ClusterAddr,
		)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		if source != nil {
			if err := source.Close(); err != nil {
				logger.Error("error closing nats bridge", "err", err)
			}
		}

		grpcServer.GracefulStop()
		logger.Info("cluster server stopped")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		for _, peer := range peers {
			if err := peer.Close(); err != nil {
				logger.Error("error closing peer", "err", err)
			}
		}

		pub.Stop()
		auth.Close()

		logger.Info("shutdown complete")
		return nil
	},
}
