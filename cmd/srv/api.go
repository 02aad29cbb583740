package main

import (
	"fmt"
	"net/http"

	"github.com/agrichain-lab/backend/internal/middleware"
	"github.com/agrichain-lab/backend/pkg/prometheus"
	"github.com/agrichain-lab/backend/pkg/router"
	"github.com/agrichain-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadAuthenticators()
	s.loadPublisher()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	go func() {
		promServer := &http.Server{
			Addr:    cfg.PrometheusServer.Address(),
			Handler: prometheus.NewHandler(),
		}

		xcontext.Logger(s.ctx).Infof("Starting prometheus on port %s", cfg.PrometheusServer.Port)
		if err := promServer.ListenAndServe(); err != nil {
			panic(err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on port %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithAuth())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/walletLogin", s.authDomain.WalletLogin)
		router.POST(publicRouter, "/walletVerify", s.authDomain.WalletVerify)
		router.GET(publicRouter, "/getBalance", s.greenPointsDomain.GetBalance)
		router.GET(publicRouter, "/getPointLeaderboard", s.greenPointsDomain.GetLeaderboard)
		router.GET(publicRouter, "/getCropBatch", s.cropNFTDomain.Get)
		router.GET(publicRouter, "/getListCropBatch", s.cropNFTDomain.GetList)
		router.GET(publicRouter, "/getBounty", s.bountyDomain.Get)
		router.GET(publicRouter, "/getListBounty", s.bountyDomain.GetList)
		router.GET(publicRouter, "/getBountyAccount", s.bountyDomain.GetAccount)
	}

	// These following APIs require an authenticated user.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		router.GET(authRouter, "/getMe", s.authDomain.GetMe)

		// GreenPoints API
		router.POST(authRouter, "/awardPoints", s.greenPointsDomain.Award)
		router.POST(authRouter, "/redeemPoints", s.greenPointsDomain.Redeem)

		// CropNFT API
		router.POST(authRouter, "/createCropBatch", s.cropNFTDomain.CreateBatch)
		router.POST(authRouter, "/scanCrop", s.cropNFTDomain.Scan)
		router.POST(authRouter, "/rateCrop", s.cropNFTDomain.Rate)
		router.POST(authRouter, "/shareCrop", s.cropNFTDomain.Share)
		router.POST(authRouter, "/updateCropStage", s.cropNFTDomain.UpdateStage)
		router.POST(authRouter, "/addCropCertification", s.cropNFTDomain.AddCertification)
		router.POST(authRouter, "/updateCropImage", s.cropNFTDomain.UpdateImage)

		// Bounty API
		router.POST(authRouter, "/createBounty", s.bountyDomain.Create)
		router.POST(authRouter, "/submitToBounty", s.bountyDomain.Submit)
		router.POST(authRouter, "/voteOnSubmission", s.bountyDomain.Vote)
		router.POST(authRouter, "/completeBounty", s.bountyDomain.Complete)
		router.POST(authRouter, "/cancelBounty", s.bountyDomain.Cancel)
	}
}
