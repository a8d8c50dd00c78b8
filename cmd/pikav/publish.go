package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/timada-org/pikav/internal/cluster"
	"github.com/timada-org/pikav/pb"
)

var (
	publishAddr      string
	publishUserID    string
	publishTopic     string
	publishName      string
	publishData      string
	publishNamespace string
)

// publishCmd sends a single event through a node, mostly for smoke-testing a
// deployment.
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Send one event to a node",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		var data any
		if publishData != "" {
			if err := json.Unmarshal([]byte(publishData), &data); err != nil {
				return fmt.Errorf("parsing --data: %w", err)
			}
		}

		peer, err := cluster.NewPeer(publishAddr, publishNamespace, logger)
		if err != nil {
			return err
		}
		defer peer.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = peer.PublishSync(ctx, []*pb.Event{{
			UserId: publishUserID,
			Topic:  publishTopic,
			Name:   publishName,
			Data:   cluster.ToValue(data),
		}})
		if err != nil {
			return fmt.Errorf("publishing event: %w", err)
		}

		fmt.Println("event published")
		return nil
	},
}

func init() {
	publishCmd.Flags().StringVar(&publishAddr, "addr", "http://localhost:6751", "cluster address of the target node")
	publishCmd.Flags().StringVar(&publishUserID, "user-id", "", "user the event is addressed to")
	publishCmd.Flags().StringVar(&publishTopic, "topic", "", "topic name")
	publishCmd.Flags().StringVar(&publishName, "name", "", "event name")
	publishCmd.Flags().StringVar(&publishData, "data", "", "event data as JSON")
	publishCmd.Flags().StringVar(&publishNamespace, "namespace", "", "namespace prefix for the topic")

	publishCmd.MarkFlagRequired("user-id")
	publishCmd.MarkFlagRequired("topic")
	publishCmd.MarkFlagRequired("name")
}
