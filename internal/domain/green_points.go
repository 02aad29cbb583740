package domain

import (
	"context"
	"errors"

	"github.com/agrichain-lab/backend/config"
	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/internal/event"
	"github.com/agrichain-lab/backend/internal/model"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/enum"
	"github.com/agrichain-lab/backend/pkg/errorx"
	"github.com/agrichain-lab/backend/pkg/pubsub"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"github.com/agrichain-lab/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const pointLeaderboardKey = "leaderboard:points"

type GreenPointsDomain interface {
	Award(context.Context, *model.AwardPointsRequest) (*model.AwardPointsResponse, error)
	Redeem(context.Context, *model.RedeemPointsRequest) (*model.RedeemPointsResponse, error)
	GetBalance(context.Context, *model.GetBalanceRequest) (*model.GetBalanceResponse, error)
	GetLeaderboard(context.Context, *model.GetPointLeaderboardRequest) (*model.GetPointLeaderboardResponse, error)
}

// PointsMethod is the capability other modules use to award engagement points
// without reaching into the ledger's storage.
type PointsMethod interface {
	AwardForAction(ctx context.Context, userID string, action entity.PointAction) error
}

type greenPointsDomain struct {
	pointAccountRepo repository.PointAccountRepository
	publisher        pubsub.Publisher
	redisClient      xredis.Client
}

func NewGreenPointsDomain(
	pointAccountRepo repository.PointAccountRepository,
	publisher pubsub.Publisher,
	redisClient xredis.Client,
) *greenPointsDomain {
	return &greenPointsDomain{
		pointAccountRepo: pointAccountRepo,
		publisher:        publisher,
		redisClient:      redisClient,
	}
}

func (d *greenPointsDomain) Award(
	ctx context.Context, req *model.AwardPointsRequest,
) (*model.AwardPointsResponse, error) {
	if req.Amount == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow non-positive amount")
	}

	action, err := enum.ToEnum[entity.PointAction](req.Action)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid point action: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid action")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.pointAccountRepo.IncreaseBalance(ctx, req.UserID, req.Amount, action)
	if err != nil {
		if errors.Is(err, repository.ErrNoEffect) {
			return nil, errorx.New(errorx.NotFound, "Not found point account")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase balance: %v", err)
		return nil, errorx.Unknown
	}

	account, err := d.pointAccountRepo.Get(ctx, req.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point account: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.changeLeaderboard(ctx, req.UserID, int64(req.Amount))
	event.Publish(ctx, d.publisher, event.PointsAwardedEvent{
		UserID: req.UserID,
		Amount: req.Amount,
		Action: req.Action,
	})

	return &model.AwardPointsResponse{Balance: account.Balance}, nil
}

func (d *greenPointsDomain) Redeem(
	ctx context.Context, req *model.RedeemPointsRequest,
) (*model.RedeemPointsResponse, error) {
	if req.Amount == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow non-positive amount")
	}

	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	account, err := d.pointAccountRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found point account")
		}

		xcontext.Logger(ctx).Errorf("Cannot get point account: %v", err)
		return nil, errorx.Unknown
	}

	if account.Balance < req.Amount {
		return nil, errorx.New(errorx.Unavailable, "Insufficient balance")
	}

	// The balance predicate in the repository keeps concurrent debits from
	// racing this check below zero.
	err = d.pointAccountRepo.DecreaseBalance(ctx, userID, req.Amount)
	if err != nil {
		if errors.Is(err, repository.ErrNoEffect) {
			return nil, errorx.New(errorx.Unavailable, "Insufficient balance")
		}

		xcontext.Logger(ctx).Errorf("Cannot decrease balance: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.changeLeaderboard(ctx, userID, -int64(req.Amount))
	event.Publish(ctx, d.publisher, event.PointsRedeemedEvent{
		UserID:     userID,
		Amount:     req.Amount,
		Redemption: req.Redemption,
	})

	return &model.RedeemPointsResponse{Balance: account.Balance - req.Amount}, nil
}

func (d *greenPointsDomain) GetBalance(
	ctx context.Context, req *model.GetBalanceRequest,
) (*model.GetBalanceResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	account, err := d.pointAccountRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// An uninitialized account reads as a zero balance.
			return &model.GetBalanceResponse{UserID: userID}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get point account: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetBalanceResponse(model.ConvertPointAccount(account))
	return &resp, nil
}

func (d *greenPointsDomain) GetLeaderboard(
	ctx context.Context, req *model.GetPointLeaderboardRequest,
) (*model.GetPointLeaderboardResponse, error) {
	if req.Limit == 0 {
		req.Limit = 10
	}

	if d.redisClient == nil {
		return nil, errorx.New(errorx.Unavailable, "Leaderboard is not available")
	}

	ok, err := d.redisClient.Exist(ctx, pointLeaderboardKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// A cold key is seeded from database.
	if !ok {
		if err := d.loadLeaderboardFromDB(ctx); err != nil {
			return nil, err
		}
	}

	results, err := d.redisClient.ZRevRangeWithScores(ctx, pointLeaderboardKey, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	leaderboard := []model.PointLeaderboardEntry{}
	for i, z := range results {
		leaderboard = append(leaderboard, model.PointLeaderboardEntry{
			UserID:  z.Member.(string),
			Balance: uint64(z.Score),
			Rank:    req.Offset + i + 1,
		})
	}

	return &model.GetPointLeaderboardResponse{Leaderboard: leaderboard}, nil
}

func (d *greenPointsDomain) loadLeaderboardFromDB(ctx context.Context) error {
	accounts, err := d.pointAccountRepo.GetTopBalances(ctx, 1000)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load top balances: %v", err)
		return errorx.Unknown
	}

	for _, account := range accounts {
		err := d.redisClient.ZAdd(ctx, pointLeaderboardKey, redis.Z{
			Score:  float64(account.Balance),
			Member: account.UserID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot seed leaderboard: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}

// changeLeaderboard keeps the sorted set in sync while it is warm. A cold key
// is left alone, the next read seeds it from database.
func (d *greenPointsDomain) changeLeaderboard(ctx context.Context, userID string, delta int64) {
	if d.redisClient == nil {
		return
	}

	ok, err := d.redisClient.Exist(ctx, pointLeaderboardKey)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot call exist redis: %v", err)
		return
	}

	if !ok {
		return
	}

	if err := d.redisClient.ZIncrBy(ctx, pointLeaderboardKey, delta, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
	}
}

// AwardForAction is the cross-module entrypoint. Unlike Award, it initializes
// the account on first touch, so a first-time scanner still earns points.
func (d *greenPointsDomain) AwardForAction(
	ctx context.Context, userID string, action entity.PointAction,
) error {
	amount := actionAmount(xcontext.Configs(ctx).Points, action)
	if amount == 0 {
		return nil
	}

	_, err := d.pointAccountRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := d.pointAccountRepo.Create(ctx, &entity.PointAccount{UserID: userID}); err != nil {
			return err
		}
	}

	if err := d.pointAccountRepo.IncreaseBalance(ctx, userID, amount, action); err != nil {
		return err
	}

	d.changeLeaderboard(ctx, userID, int64(amount))
	event.Publish(ctx, d.publisher, event.PointsAwardedEvent{
		UserID: userID,
		Amount: amount,
		Action: string(action),
	})

	return nil
}

func actionAmount(cfg config.PointsConfigs, action entity.PointAction) uint64 {
	switch action {
	case entity.ActionScan:
		return cfg.ScanPoints
	case entity.ActionRate:
		return cfg.RatePoints
	case entity.ActionShare:
		return cfg.SharePoints
	case entity.ActionReferral:
		return cfg.ReferralPoints
	}

	return 0
}
