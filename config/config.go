package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database         DatabaseConfigs
	ApiServer        ServerConfigs
	PrometheusServer ServerConfigs
	Auth             AuthConfigs
	Kafka            KafkaConfigs
	Redis            RedisConfigs
	Bounty           BountyConfigs
	Points           PointsConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

func (s *ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type KafkaConfigs struct {
	Addr       string
	EventTopic string
}

type RedisConfigs struct {
	Addr string
}

type BountyConfigs struct {
	// MinReward is a decimal string of base units (18 decimals).
	MinReward string

	MinDuration time.Duration
	MaxDuration time.Duration

	// PlatformFeeBasisPoints of the reward is charged as the platform fee.
	PlatformFeeBasisPoints int64
}

type PointsConfigs struct {
	ScanPoints     uint64
	RatePoints     uint64
	SharePoints    uint64
	ReferralPoints uint64
}
