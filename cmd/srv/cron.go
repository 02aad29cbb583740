package main

import (
	"github.com/agrichain-lab/backend/internal/domain/cron"

	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadPublisher()
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewExpireBountiesCronJob(s.bountyRepo, s.publisher))
	cronJobManager.Start(s.ctx)

	return nil
}
