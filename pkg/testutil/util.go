package testutil

import (
	"context"
	"time"

	"github.com/agrichain-lab/backend/config"
	"github.com/agrichain-lab/backend/internal/model"
	"github.com/agrichain-lab/backend/migration"
	"github.com/agrichain-lab/backend/pkg/authenticator"
	"github.com/agrichain-lab/backend/pkg/logger"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"github.com/bwmarrin/snowflake"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
		},
		Kafka: config.KafkaConfigs{
			EventTopic: "events",
		},
		Bounty: config.BountyConfigs{
			MinReward:              "50000000000000000000",
			MinDuration:            24 * time.Hour,
			MaxDuration:            365 * 24 * time.Hour,
			PlatformFeeBasisPoints: 250,
		},
		Points: config.PointsConfigs{
			ScanPoints:     10,
			RatePoints:     15,
			SharePoints:    20,
			ReferralPoints: 50,
		},
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(1))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
