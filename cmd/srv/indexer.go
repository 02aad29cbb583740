package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agrichain-lab/backend/pkg/kafka"
	"github.com/agrichain-lab/backend/pkg/pubsub"
	"github.com/agrichain-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startIndexer(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)
	subscriber := kafka.NewSubscriber(
		"agrichain-indexer",
		strings.Split(cfg.Kafka.Addr, ","),
		[]string{cfg.Kafka.EventTopic},
		func(_ context.Context, pack *pubsub.Pack, t time.Time) {
			s.eventIndexerDomain.Index(s.ctx, pack, t)
		},
	)

	subscriber.Subscribe(s.ctx)
	xcontext.Logger(s.ctx).Infof("Event indexer started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return subscriber.Stop(s.ctx)
}
