package repository

import (
	"context"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GetListCropBatchFilter struct {
	FarmerID string
	Offset   int
	Limit    int
}

type CropBatchRepository interface {
	Create(ctx context.Context, data *entity.CropBatch) error
	GetByID(ctx context.Context, tokenID int64) (*entity.CropBatch, error)
	GetList(ctx context.Context, filter GetListCropBatchFilter) ([]entity.CropBatch, error)
	UpdateStage(ctx context.Context, tokenID int64, stage string) error
	UpdateCertifications(ctx context.Context, tokenID int64, certifications entity.Array[string]) error
	UpdateImage(ctx context.Context, tokenID int64, image string) error
}

type cropBatchRepository struct{}

func NewCropBatchRepository() *cropBatchRepository {
	return &cropBatchRepository{}
}

// Create allocates the token id through the autoincrement primary key, so
// minted ids are unique and monotonically increasing.
func (r *cropBatchRepository) Create(ctx context.Context, data *entity.CropBatch) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *cropBatchRepository) GetByID(ctx context.Context, tokenID int64) (*entity.CropBatch, error) {
	var result entity.CropBatch
	if err := xcontext.DB(ctx).Take(&result, "token_id=?", tokenID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *cropBatchRepository) GetList(
	ctx context.Context, filter GetListCropBatchFilter,
) ([]entity.CropBatch, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.CropBatch{}).
		Order("token_id asc").
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.FarmerID != "" {
		tx = tx.Where("farmer_id=?", filter.FarmerID)
	}

	var result []entity.CropBatch
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *cropBatchRepository) UpdateStage(ctx context.Context, tokenID int64, stage string) error {
	return r.update(ctx, tokenID, map[string]any{"stage": stage})
}

func (r *cropBatchRepository) UpdateCertifications(
	ctx context.Context, tokenID int64, certifications entity.Array[string],
) error {
	return r.update(ctx, tokenID, map[string]any{"certifications": certifications})
}

func (r *cropBatchRepository) UpdateImage(ctx context.Context, tokenID int64, image string) error {
	return r.update(ctx, tokenID, map[string]any{"crop_image": image})
}

func (r *cropBatchRepository) update(ctx context.Context, tokenID int64, values map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.CropBatch{}).
		Where("token_id=?", tokenID).
		Updates(values)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

type CropEngagementRepository interface {
	Create(ctx context.Context, data *entity.CropEngagement) error
	GetByBatchID(ctx context.Context, batchID int64) (*entity.CropEngagement, error)
	IncreaseScans(ctx context.Context, batchID int64) error
	UpdateRating(ctx context.Context, batchID int64, totalRatings, averageRating uint64) error
	IncreaseShares(ctx context.Context, batchID int64) error
}

type cropEngagementRepository struct{}

func NewCropEngagementRepository() *cropEngagementRepository {
	return &cropEngagementRepository{}
}

func (r *cropEngagementRepository) Create(ctx context.Context, data *entity.CropEngagement) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *cropEngagementRepository) GetByBatchID(
	ctx context.Context, batchID int64,
) (*entity.CropEngagement, error) {
	var result entity.CropEngagement
	err := xcontext.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&result, "batch_id=?", batchID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *cropEngagementRepository) IncreaseScans(ctx context.Context, batchID int64) error {
	return r.update(ctx, batchID, map[string]any{
		"total_scans": gorm.Expr("total_scans+1"),
	})
}

func (r *cropEngagementRepository) UpdateRating(
	ctx context.Context, batchID int64, totalRatings, averageRating uint64,
) error {
	return r.update(ctx, batchID, map[string]any{
		"total_ratings":  totalRatings,
		"average_rating": averageRating,
	})
}

func (r *cropEngagementRepository) IncreaseShares(ctx context.Context, batchID int64) error {
	return r.update(ctx, batchID, map[string]any{
		"social_shares": gorm.Expr("social_shares+1"),
	})
}

func (r *cropEngagementRepository) update(ctx context.Context, batchID int64, values map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.CropEngagement{}).
		Where("batch_id=?", batchID).
		Updates(values)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
