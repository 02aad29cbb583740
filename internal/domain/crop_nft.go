package domain

import (
	"context"
	"errors"
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

const (
	minCropRating = 1
	maxCropRating = 5

	// Rating precision, an average of 4.00 stars is stored as 400.
	ratingPrecision = 100

	// Reputation a farmer earns for every minted batch.
	mintReputation = 1
)

type CropNFTDomain interface {
	CreateBatch(context.Context, *model.CreateCropBatchRequest) (*model.CreateCropBatchResponse, error)
	Scan(context.Context, *model.ScanCropRequest) (*model.ScanCropResponse, error)
	Rate(context.Context, *model.RateCropRequest) (*model.RateCropResponse, error)
	Share(context.Context, *model.ShareCropRequest) (*model.ShareCropResponse, error)
	UpdateStage(context.Context, *model.UpdateCropStageRequest) (*model.UpdateCropStageResponse, error)
	AddCertification(context.Context, *model.AddCropCertificationRequest) (*model.AddCropCertificationResponse, error)
	UpdateImage(context.Context, *model.UpdateCropImageRequest) (*model.UpdateCropImageResponse, error)
	Get(context.Context, *model.GetCropBatchRequest) (*model.GetCropBatchResponse, error)
	GetList(context.Context, *model.GetListCropBatchRequest) (*model.GetListCropBatchResponse, error)
}

type cropNFTDomain struct {
	cropBatchRepo   repository.CropBatchRepository
	engagementRepo  repository.CropEngagementRepository
	cropAccountRepo repository.CropAccountRepository
	pointsMethod    PointsMethod
	publisher       pubsub.Publisher
}

func NewCropNFTDomain(
	cropBatchRepo repository.CropBatchRepository,
	engagementRepo repository.CropEngagementRepository,
	cropAccountRepo repository.CropAccountRepository,
	pointsMethod PointsMethod,
	publisher pubsub.Publisher,
) *cropNFTDomain {
	return &cropNFTDomain{
		cropBatchRepo:   cropBatchRepo,
		engagementRepo:  engagementRepo,
		cropAccountRepo: cropAccountRepo,
		pointsMethod:    pointsMethod,
		publisher:       publisher,
	}
}

func (d *cropNFTDomain) CreateBatch(
	ctx context.Context, req *model.CreateCropBatchRequest,
) (*model.CreateCropBatchResponse, error) {
	if req.CropType == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty crop type")
	}

	var harvestDate time.Time
	if req.HarvestDate != "" {
		var err error
		harvestDate, err = time.Parse(model.DefaultDateLayout, req.HarvestDate)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid harvest date")
		}
	}

	stage := req.Stage
	if stage == "" {
		stage = entity.StagePlanted
	}

	farmerID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	batch := &entity.CropBatch{
		FarmerID:       farmerID,
		CropType:       req.CropType,
		Location:       req.Location,
		IsOrganic:      req.IsOrganic,
		Quantity:       req.Quantity,
		HarvestDate:    harvestDate,
		Stage:          stage,
		Certifications: entity.Array[string]{},
		CropImage:      req.CropImage,
	}

	if err := d.cropBatchRepo.Create(ctx, batch); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create crop batch: %v", err)
		return nil, errorx.Unknown
	}

	err := d.engagementRepo.Create(ctx, &entity.CropEngagement{BatchID: batch.TokenID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create engagement record: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.ensureCropAccount(ctx, farmerID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot init crop account: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.cropAccountRepo.AppendOwnedBatch(ctx, farmerID, batch.TokenID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append owned batch: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.cropAccountRepo.IncreaseReputation(ctx, farmerID, mintReputation); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase reputation: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	event.Publish(ctx, d.publisher, event.CropBatchCreatedEvent{
		TokenID:  batch.TokenID,
		FarmerID: farmerID,
		CropType: batch.CropType,
	})

	return &model.CreateCropBatchResponse{TokenID: batch.TokenID}, nil
}

func (d *cropNFTDomain) Scan(
	ctx context.Context, req *model.ScanCropRequest,
) (*model.ScanCropResponse, error) {
	scannerID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if _, err := d.getBatch(ctx, req.TokenID); err != nil {
		return nil, err
	}

	if err := d.engagementRepo.IncreaseScans(ctx, req.TokenID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase scans: %v", err)
		return nil, errorx.Unknown
	}

	engagement, err := d.engagementRepo.GetByBatchID(ctx, req.TokenID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get engagement record: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.pointsMethod.AwardForAction(ctx, scannerID, entity.ActionScan); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award scan points: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	event.Publish(ctx, d.publisher, event.CropScannedEvent{
		TokenID:    req.TokenID,
		ScannerID:  scannerID,
		TotalScans: engagement.TotalScans,
	})

	return &model.ScanCropResponse{TotalScans: engagement.TotalScans}, nil
}

func (d *cropNFTDomain) Rate(
	ctx context.Context, req *model.RateCropRequest,
) (*model.RateCropResponse, error) {
	if req.Rating < minCropRating || req.Rating > maxCropRating {
		return nil, errorx.New(errorx.BadRequest, "Rating must be between %d and %d",
			minCropRating, maxCropRating)
	}

	raterID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if _, err := d.getBatch(ctx, req.TokenID); err != nil {
		return nil, err
	}

	engagement, err := d.engagementRepo.GetByBatchID(ctx, req.TokenID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get engagement record: %v", err)
		return nil, errorx.Unknown
	}

	// Incremental mean over all ratings received so far.
	newTotal := engagement.TotalRatings + 1
	newAverage := (engagement.AverageRating*engagement.TotalRatings + req.Rating*ratingPrecision) / newTotal

	if err := d.engagementRepo.UpdateRating(ctx, req.TokenID, newTotal, newAverage); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update rating: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.pointsMethod.AwardForAction(ctx, raterID, entity.ActionRate); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award rate points: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	event.Publish(ctx, d.publisher, event.CropRatedEvent{
		TokenID:       req.TokenID,
		RaterID:       raterID,
		Rating:        req.Rating,
		AverageRating: newAverage,
	})

	return &model.RateCropResponse{TotalRatings: newTotal, AverageRating: newAverage}, nil
}

func (d *cropNFTDomain) Share(
	ctx context.Context, req *model.ShareCropRequest,
) (*model.ShareCropResponse, error) {
	sharerID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if _, err := d.getBatch(ctx, req.TokenID); err != nil {
		return nil, err
	}

	if err := d.engagementRepo.IncreaseShares(ctx, req.TokenID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase shares: %v", err)
		return nil, errorx.Unknown
	}

	engagement, err := d.engagementRepo.GetByBatchID(ctx, req.TokenID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get engagement record: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.pointsMethod.AwardForAction(ctx, sharerID, entity.ActionShare); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award share points: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	event.Publish(ctx, d.publisher, event.CropSharedEvent{
		TokenID:      req.TokenID,
		SharerID:     sharerID,
		SocialShares: engagement.SocialShares,
	})

	return &model.ShareCropResponse{SocialShares: engagement.SocialShares}, nil
}

func (d *cropNFTDomain) UpdateStage(
	ctx context.Context, req *model.UpdateCropStageRequest,
) (*model.UpdateCropStageResponse, error) {
	if req.Stage == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty stage")
	}

	if err := d.authorizeFarmer(ctx, req.TokenID); err != nil {
		return nil, err
	}

	if err := d.cropBatchRepo.UpdateStage(ctx, req.TokenID, req.Stage); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update stage: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCropStageResponse{}, nil
}

func (d *cropNFTDomain) AddCertification(
	ctx context.Context, req *model.AddCropCertificationRequest,
) (*model.AddCropCertificationResponse, error) {
	if req.Certification == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty certification")
	}

	batch, err := d.getBatch(ctx, req.TokenID)
	if err != nil {
		return nil, err
	}

	if batch.FarmerID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	certifications := append(batch.Certifications, req.Certification)
	if err := d.cropBatchRepo.UpdateCertifications(ctx, req.TokenID, certifications); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update certifications: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddCropCertificationResponse{}, nil
}

func (d *cropNFTDomain) UpdateImage(
	ctx context.Context, req *model.UpdateCropImageRequest,
) (*model.UpdateCropImageResponse, error) {
	if err := d.authorizeFarmer(ctx, req.TokenID); err != nil {
		return nil, err
	}

	if err := d.cropBatchRepo.UpdateImage(ctx, req.TokenID, req.CropImage); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update image: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCropImageResponse{}, nil
}

func (d *cropNFTDomain) Get(
	ctx context.Context, req *model.GetCropBatchRequest,
) (*model.GetCropBatchResponse, error) {
	batch, err := d.getBatch(ctx, req.TokenID)
	if err != nil {
		return nil, err
	}

	engagement, err := d.engagementRepo.GetByBatchID(ctx, req.TokenID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get engagement record: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetCropBatchResponse(model.ConvertCropBatch(batch, engagement))
	return &resp, nil
}

func (d *cropNFTDomain) GetList(
	ctx context.Context, req *model.GetListCropBatchRequest,
) (*model.GetListCropBatchResponse, error) {
	if req.Limit == 0 {
		req.Limit = 10
	}

	batches, err := d.cropBatchRepo.GetList(ctx, repository.GetListCropBatchFilter{
		FarmerID: req.FarmerID,
		Offset:   req.Offset,
		Limit:    req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get crop batches: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.CropBatch{}
	for i := range batches {
		engagement, err := d.engagementRepo.GetByBatchID(ctx, batches[i].TokenID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get engagement record: %v", err)
			return nil, errorx.Unknown
		}

		result = append(result, model.ConvertCropBatch(&batches[i], engagement))
	}

	return &model.GetListCropBatchResponse{Batches: result}, nil
}

func (d *cropNFTDomain) getBatch(ctx context.Context, tokenID int64) (*entity.CropBatch, error) {
	batch, err := d.cropBatchRepo.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found crop batch")
		}

		xcontext.Logger(ctx).Errorf("Cannot get crop batch: %v", err)
		return nil, errorx.Unknown
	}

	return batch, nil
}

// authorizeFarmer restricts a mutation to the batch owner.
func (d *cropNFTDomain) authorizeFarmer(ctx context.Context, tokenID int64) error {
	batch, err := d.getBatch(ctx, tokenID)
	if err != nil {
		return err
	}

	if batch.FarmerID != xcontext.RequestUserID(ctx) {
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}

func (d *cropNFTDomain) ensureCropAccount(ctx context.Context, userID string) error {
	_, err := d.cropAccountRepo.Get(ctx, userID)
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return d.cropAccountRepo.Create(ctx, &entity.CropAccount{
		UserID:       userID,
		OwnedBatches: entity.Array[int64]{},
	})
}
