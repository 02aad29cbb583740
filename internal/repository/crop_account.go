package repository

import (
	"context"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CropAccountRepository interface {
	Create(ctx context.Context, data *entity.CropAccount) error
	Get(ctx context.Context, userID string) (*entity.CropAccount, error)
	AppendOwnedBatch(ctx context.Context, userID string, tokenID int64) error
	IncreaseReputation(ctx context.Context, userID string, amount uint64) error
}

type cropAccountRepository struct{}

func NewCropAccountRepository() *cropAccountRepository {
	return &cropAccountRepository{}
}

func (r *cropAccountRepository) Create(ctx context.Context, data *entity.CropAccount) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *cropAccountRepository) Get(ctx context.Context, userID string) (*entity.CropAccount, error) {
	var result entity.CropAccount
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *cropAccountRepository) AppendOwnedBatch(ctx context.Context, userID string, tokenID int64) error {
	account, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}

	owned := append(account.OwnedBatches, tokenID)
	return xcontext.DB(ctx).
		Model(&entity.CropAccount{}).
		Where("user_id=?", userID).
		Update("owned_batches", owned).Error
}

func (r *cropAccountRepository) IncreaseReputation(ctx context.Context, userID string, amount uint64) error {
	return xcontext.DB(ctx).
		Model(&entity.CropAccount{}).
		Where("user_id=?", userID).
		Update("reputation", gorm.Expr("reputation+?", amount)).Error
}
