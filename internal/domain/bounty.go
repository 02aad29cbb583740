package domain

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/internal/event"
	"github.com/agrichain-lab/backend/internal/model"
	"github.com/agrichain-lab/backend/internal/repository"
	"github.com/agrichain-lab/backend/pkg/errorx"
	"github.com/agrichain-lab/backend/pkg/pubsub"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const feeBasisPointsDenominator = 10000

type BountyDomain interface {
	Create(context.Context, *model.CreateBountyRequest) (*model.CreateBountyResponse, error)
	Submit(context.Context, *model.SubmitToBountyRequest) (*model.SubmitToBountyResponse, error)
	Vote(context.Context, *model.VoteOnSubmissionRequest) (*model.VoteOnSubmissionResponse, error)
	Complete(context.Context, *model.CompleteBountyRequest) (*model.CompleteBountyResponse, error)
	Cancel(context.Context, *model.CancelBountyRequest) (*model.CancelBountyResponse, error)
	Get(context.Context, *model.GetBountyRequest) (*model.GetBountyResponse, error)
	GetList(context.Context, *model.GetListBountyRequest) (*model.GetListBountyResponse, error)
	GetAccount(context.Context, *model.GetBountyAccountRequest) (*model.GetBountyAccountResponse, error)
}

type bountyDomain struct {
	bountyRepo        repository.BountyRepository
	submissionRepo    repository.SubmissionRepository
	bountyAccountRepo repository.BountyAccountRepository
	publisher         pubsub.Publisher
}

func NewBountyDomain(
	bountyRepo repository.BountyRepository,
	submissionRepo repository.SubmissionRepository,
	bountyAccountRepo repository.BountyAccountRepository,
	publisher pubsub.Publisher,
) *bountyDomain {
	return &bountyDomain{
		bountyRepo:        bountyRepo,
		submissionRepo:    submissionRepo,
		bountyAccountRepo: bountyAccountRepo,
		publisher:         publisher,
	}
}

func (d *bountyDomain) Create(
	ctx context.Context, req *model.CreateBountyRequest,
) (*model.CreateBountyResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	cfg := xcontext.Configs(ctx).Bounty

	reward, err := entity.NewBigInt(req.Reward)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid reward amount")
	}

	minReward, err := entity.NewBigInt(cfg.MinReward)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid min reward config: %v", err)
		return nil, errorx.Unknown
	}

	if reward.Cmp(&minReward.Int) < 0 {
		return nil, errorx.New(errorx.BadRequest,
			"Reward must be at least %s", minReward.String())
	}

	duration := time.Duration(req.DurationDays) * 24 * time.Hour
	if duration < cfg.MinDuration || duration > cfg.MaxDuration {
		return nil, errorx.New(errorx.BadRequest, "Duration must be between %d and %d days",
			int64(cfg.MinDuration/(24*time.Hour)), int64(cfg.MaxDuration/(24*time.Hour)))
	}

	var fee entity.BigInt
	fee.Mul(&reward.Int, big.NewInt(cfg.PlatformFeeBasisPoints))
	fee.Div(&fee.Int, big.NewInt(feeBasisPointsDenominator))

	creatorID := xcontext.RequestUserID(ctx)

	maxWinners := req.MaxWinners
	if maxWinners <= 0 {
		maxWinners = 1
	}

	bounty := &entity.Bounty{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		CreatorID:     creatorID,
		Title:         req.Title,
		Requirements:  req.Requirements,
		Category:      req.Category,
		Reward:        reward,
		Status:        entity.BountyActive,
		Deadline:      time.Now().Add(duration),
	}

	settings := &entity.BountySettings{
		Tags:                  entity.Array[string](req.Tags),
		MinReputationRequired: req.MinReputationRequired,
		AllowMultipleWinners:  req.AllowMultipleWinners,
		MaxWinners:            maxWinners,
		PlatformFee:           fee,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.bountyRepo.Create(ctx, bounty, settings); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create bounty: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.ensureBountyAccount(ctx, creatorID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot init bounty account: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.bountyAccountRepo.IncreaseCreated(ctx, creatorID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase created counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	event.Publish(ctx, d.publisher, event.BountyCreatedEvent{
		BountyID:  bounty.ID,
		CreatorID: creatorID,
		Reward:    reward.String(),
		Deadline:  bounty.Deadline.Format(model.DefaultTimeLayout),
	})

	return &model.CreateBountyResponse{ID: bounty.ID, PlatformFee: fee.String()}, nil
}

func (d *bountyDomain) Submit(
	ctx context.Context, req *model.SubmitToBountyRequest,
) (*model.SubmitToBountyResponse, error) {
	if req.SubmissionData == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty submission data")
	}

	bounty, err := d.getBounty(ctx, req.BountyID)
	if err != nil {
		return nil, err
	}

	if bounty.Status != entity.BountyActive {
		return nil, errorx.New(errorx.Unavailable, "Bounty is not active")
	}

	// A bounty at or past its deadline is expired even if the sweeper has
	// not visited it yet.
	if !time.Now().Before(bounty.Deadline) {
		if err := d.expire(ctx, bounty); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot expire bounty: %v", err)
			return nil, errorx.Unknown
		}

		return nil, errorx.New(errorx.Unavailable, "Bounty is expired")
	}

	submitterID := xcontext.RequestUserID(ctx)

	settings, err := d.bountyRepo.GetSettings(ctx, req.BountyID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get bounty settings: %v", err)
		return nil, errorx.Unknown
	}

	if settings.MinReputationRequired > 0 {
		account, err := d.bountyAccountRepo.Get(ctx, submitterID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get bounty account: %v", err)
			return nil, errorx.Unknown
		}

		if account == nil || account.Reputation < settings.MinReputationRequired {
			return nil, errorx.New(errorx.PermissionDenied, "Not enough reputation")
		}
	}

	submission := &entity.Submission{
		SnowFlakeBase:  entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		BountyID:       req.BountyID,
		SubmitterID:    submitterID,
		SubmissionData: req.SubmissionData,
		IsActive:       true,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.submissionRepo.Create(ctx, submission); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create submission: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.bountyRepo.IncreaseSubmissionCount(ctx, req.BountyID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase submission count: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.ensureBountyAccount(ctx, submitterID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot init bounty account: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.bountyAccountRepo.IncreaseSubmissionsMade(ctx, submitterID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase submissions counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	event.Publish(ctx, d.publisher, event.SubmissionMadeEvent{
		SubmissionID: submission.ID,
		BountyID:     req.BountyID,
		SubmitterID:  submitterID,
	})

	return &model.SubmitToBountyResponse{ID: submission.ID}, nil
}

func (d *bountyDomain) Vote(
	ctx context.Context, req *model.VoteOnSubmissionRequest,
) (*model.VoteOnSubmissionResponse, error) {
	submission, err := d.getSubmission(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}

	bounty, err := d.getBounty(ctx, submission.BountyID)
	if err != nil {
		return nil, err
	}

	if bounty.Status != entity.BountyActive {
		return nil, errorx.New(errorx.Unavailable, "Bounty is not active")
	}

	delta := int64(1)
	if !req.Support {
		delta = -1
	}

	votes, err := d.submissionRepo.ChangeVotes(ctx, req.SubmissionID, delta)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot change votes: %v", err)
		return nil, errorx.Unknown
	}

	return &model.VoteOnSubmissionResponse{Votes: votes}, nil
}

func (d *bountyDomain) Complete(
	ctx context.Context, req *model.CompleteBountyRequest,
) (*model.CompleteBountyResponse, error) {
	bounty, err := d.getBounty(ctx, req.BountyID)
	if err != nil {
		return nil, err
	}

	if bounty.CreatorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	submission, err := d.getSubmission(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}

	if submission.BountyID != req.BountyID {
		return nil, errorx.New(errorx.BadRequest, "Submission does not belong to this bounty")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.bountyRepo.Complete(ctx, req.BountyID, submission.SubmitterID)
	if err != nil {
		if errors.Is(err, repository.ErrNoEffect) {
			return nil, errorx.New(errorx.Unavailable, "Bounty is not active")
		}

		xcontext.Logger(ctx).Errorf("Cannot complete bounty: %v", err)
		return nil, errorx.Unknown
	}

	err = d.submissionRepo.MarkSelected(ctx, req.SubmissionID, req.Feedback)
	if err != nil {
		if errors.Is(err, repository.ErrNoEffect) {
			return nil, errorx.New(errorx.Unavailable, "Submission already selected")
		}

		xcontext.Logger(ctx).Errorf("Cannot select submission: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.ensureBountyAccount(ctx, submission.SubmitterID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot init bounty account: %v", err)
		return nil, errorx.Unknown
	}

	err = d.bountyAccountRepo.IncreaseWon(ctx, submission.SubmitterID, bounty.Reward)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase won counters: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	event.Publish(ctx, d.publisher, event.BountyCompletedEvent{
		BountyID:     req.BountyID,
		SubmissionID: req.SubmissionID,
		WinnerID:     submission.SubmitterID,
		Reward:       bounty.Reward.String(),
	})

	return &model.CompleteBountyResponse{}, nil
}

func (d *bountyDomain) Cancel(
	ctx context.Context, req *model.CancelBountyRequest,
) (*model.CancelBountyResponse, error) {
	bounty, err := d.getBounty(ctx, req.BountyID)
	if err != nil {
		return nil, err
	}

	if bounty.CreatorID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if bounty.SubmissionCount > 0 {
		return nil, errorx.New(errorx.Unavailable, "Bounty already has submissions")
	}

	if err := d.bountyRepo.Cancel(ctx, req.BountyID); err != nil {
		if errors.Is(err, repository.ErrNoEffect) {
			return nil, errorx.New(errorx.Unavailable, "Bounty is not active")
		}

		xcontext.Logger(ctx).Errorf("Cannot cancel bounty: %v", err)
		return nil, errorx.Unknown
	}

	event.Publish(ctx, d.publisher, event.BountyCancelledEvent{
		BountyID:  req.BountyID,
		CreatorID: bounty.CreatorID,
		Reason:    req.Reason,
	})

	return &model.CancelBountyResponse{}, nil
}

func (d *bountyDomain) Get(
	ctx context.Context, req *model.GetBountyRequest,
) (*model.GetBountyResponse, error) {
	bounty, err := d.getBounty(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	settings, err := d.bountyRepo.GetSettings(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get bounty settings: %v", err)
		return nil, errorx.Unknown
	}

	submissions, err := d.submissionRepo.GetByBountyID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Submission{}
	for i := range submissions {
		result = append(result, model.ConvertSubmission(&submissions[i]))
	}

	return &model.GetBountyResponse{
		Bounty:      model.ConvertBounty(bounty, settings),
		Submissions: result,
	}, nil
}

func (d *bountyDomain) GetList(
	ctx context.Context, req *model.GetListBountyRequest,
) (*model.GetListBountyResponse, error) {
	if req.Limit == 0 {
		req.Limit = 10
	}

	bounties, err := d.bountyRepo.GetList(ctx, repository.GetListBountyFilter{
		Status:   entity.BountyStatus(req.Status),
		Category: req.Category,
		Offset:   req.Offset,
		Limit:    req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get bounties: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Bounty{}
	for i := range bounties {
		result = append(result, model.ConvertBounty(&bounties[i], nil))
	}

	return &model.GetListBountyResponse{Bounties: result}, nil
}

func (d *bountyDomain) GetAccount(
	ctx context.Context, req *model.GetBountyAccountRequest,
) (*model.GetBountyAccountResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	account, err := d.bountyAccountRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetBountyAccountResponse{UserID: userID, TotalEarned: "0"}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get bounty account: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetBountyAccountResponse(model.ConvertBountyAccount(account))
	return &resp, nil
}

func (d *bountyDomain) getBounty(ctx context.Context, id int64) (*entity.Bounty, error) {
	bounty, err := d.bountyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found bounty")
		}

		xcontext.Logger(ctx).Errorf("Cannot get bounty: %v", err)
		return nil, errorx.Unknown
	}

	return bounty, nil
}

func (d *bountyDomain) getSubmission(ctx context.Context, id int64) (*entity.Submission, error) {
	submission, err := d.submissionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	return submission, nil
}

func (d *bountyDomain) expire(ctx context.Context, bounty *entity.Bounty) error {
	err := d.bountyRepo.TransitionStatus(ctx, bounty.ID, entity.BountyActive, entity.BountyExpired)
	if err != nil && !errors.Is(err, repository.ErrNoEffect) {
		return err
	}

	if err == nil {
		event.Publish(ctx, d.publisher, event.BountyExpiredEvent{
			BountyID:  bounty.ID,
			CreatorID: bounty.CreatorID,
		})
	}

	return nil
}

func (d *bountyDomain) ensureBountyAccount(ctx context.Context, userID string) error {
	_, err := d.bountyAccountRepo.Get(ctx, userID)
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var zero entity.BigInt
	zero.SetInt64(0)
	return d.bountyAccountRepo.Create(ctx, &entity.BountyAccount{
		UserID:      userID,
		TotalEarned: zero,
	})
}
