package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agrichain-lab/backend/config"
	"github.com/agrichain-lab/backend/internal/domain"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/migration"
	"github.com/agrichain-lab/backend/pkg/authenticator"
	"github.com/agrichain-lab/backend/pkg/kafka"
	"github.com/agrichain-lab/backend/pkg/logger"
	"github.com/agrichain-lab/backend/pkg/pubsub"
	"github.com/agrichain-lab/backend/pkg/router"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"github.com/agrichain-lab/backend/pkg/xredis"

	"github.com/agrichain-lab/backend/internal/model"
	"github.com/bwmarrin/snowflake"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo           repository.UserRepository
	pointAccountRepo   repository.PointAccountRepository
	cropBatchRepo      repository.CropBatchRepository
	cropEngagementRepo repository.CropEngagementRepository
	cropAccountRepo    repository.CropAccountRepository
	bountyRepo         repository.BountyRepository
	submissionRepo     repository.SubmissionRepository
	bountyAccountRepo  repository.BountyAccountRepository
	eventLogRepo       repository.EventLogRepository

	authDomain         domain.AuthDomain
	greenPointsDomain  domain.GreenPointsDomain
	cropNFTDomain      domain.CropNFTDomain
	bountyDomain       domain.BountyDomain
	eventIndexerDomain domain.EventIndexerDomain

	publisher   pubsub.Publisher
	redisClient xredis.Client
	router      *router.Router
	server      *http.Server
}

func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "agrichain"),
			Password: getEnv("MYSQL_PASSWORD", "agrichain"),
			Database: getEnv("MYSQL_DATABASE", "agrichain"),
		},
		ApiServer: config.ServerConfigs{
			Host: getEnv("HOST", "localhost"),
			Port: getEnv("PORT", "8080"),
			Cert: getEnv("SERVER_CERT", ""),
			Key:  getEnv("SERVER_KEY", ""),
		},
		PrometheusServer: config.ServerConfigs{
			Host: getEnv("PROMETHEUS_HOST", ""),
			Port: getEnv("PROMETHEUS_PORT", "9090"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token-secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getDuration("ACCESS_TOKEN_DURATION", "24h"),
			},
		},
		Kafka: config.KafkaConfigs{
			Addr:       getEnv("KAFKA_ADDR", "localhost:9092"),
			EventTopic: getEnv("KAFKA_EVENT_TOPIC", "events"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Bounty: config.BountyConfigs{
			MinReward:              getEnv("BOUNTY_MIN_REWARD", "50000000000000000000"),
			MinDuration:            getDuration("BOUNTY_MIN_DURATION", "24h"),
			MaxDuration:            getDuration("BOUNTY_MAX_DURATION", "8760h"),
			PlatformFeeBasisPoints: getInt64("BOUNTY_PLATFORM_FEE_BASIS_POINTS", "250"),
		},
		Points: config.PointsConfigs{
			ScanPoints:     getUint64("POINTS_PER_SCAN", "10"),
			RatePoints:     getUint64("POINTS_PER_RATE", "15"),
			SharePoints:    getUint64("POINTS_PER_SHARE", "20"),
			ReferralPoints: getUint64("POINTS_PER_REFERRAL", "50"),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	db, err := gorm.Open(mysql.Open(xcontext.Configs(s.ctx).Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadAuthenticators() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration))

	node, err := snowflake.NewNode(getInt64("SNOWFLAKE_NODE_ID", "1"))
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx)
	s.publisher = kafka.NewPublisher("agrichain-backend", strings.Split(cfg.Kafka.Addr, ","))
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.pointAccountRepo = repository.NewPointAccountRepository()
	s.cropBatchRepo = repository.NewCropBatchRepository()
	s.cropEngagementRepo = repository.NewCropEngagementRepository()
	s.cropAccountRepo = repository.NewCropAccountRepository()
	s.bountyRepo = repository.NewBountyRepository()
	s.submissionRepo = repository.NewSubmissionRepository()
	s.bountyAccountRepo = repository.NewBountyAccountRepository()
	s.eventLogRepo = repository.NewEventLogRepository()
}

func (s *srv) loadDomains() {
	greenPoints := domain.NewGreenPointsDomain(s.pointAccountRepo, s.publisher, s.redisClient)
	s.greenPointsDomain = greenPoints

	s.authDomain = domain.NewAuthDomain(
		s.userRepo, s.pointAccountRepo, s.cropAccountRepo, s.bountyAccountRepo,
		greenPoints, s.redisClient)

	s.cropNFTDomain = domain.NewCropNFTDomain(
		s.cropBatchRepo, s.cropEngagementRepo, s.cropAccountRepo, greenPoints, s.publisher)

	s.bountyDomain = domain.NewBountyDomain(
		s.bountyRepo, s.submissionRepo, s.bountyAccountRepo, s.publisher)

	s.eventIndexerDomain = domain.NewEventIndexerDomain(s.eventLogRepo)
}

func (s *srv) startMigrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	return nil
}

func getEnv(key, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return def
}

func getDuration(key, def string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, def))
	if err != nil {
		panic(err)
	}

	return d
}

func getInt64(key, def string) int64 {
	n, err := strconv.ParseInt(getEnv(key, def), 10, 64)
	if err != nil {
		panic(err)
	}

	return n
}

func getUint64(key, def string) uint64 {
	n, err := strconv.ParseUint(getEnv(key, def), 10, 64)
	if err != nil {
		panic(err)
	}

	return n
}
