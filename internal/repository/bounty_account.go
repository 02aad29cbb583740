package repository

import (
	"context"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BountyAccountRepository interface {
	Create(ctx context.Context, data *entity.BountyAccount) error
	Get(ctx context.Context, userID string) (*entity.BountyAccount, error)
	IncreaseCreated(ctx context.Context, userID string) error
	IncreaseSubmissionsMade(ctx context.Context, userID string) error
	IncreaseWon(ctx context.Context, userID string, earned entity.BigInt) error
}

type bountyAccountRepository struct{}

func NewBountyAccountRepository() *bountyAccountRepository {
	return &bountyAccountRepository{}
}

func (r *bountyAccountRepository) Create(ctx context.Context, data *entity.BountyAccount) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *bountyAccountRepository) Get(ctx context.Context, userID string) (*entity.BountyAccount, error) {
	var result entity.BountyAccount
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *bountyAccountRepository) IncreaseCreated(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.BountyAccount{}).
		Where("user_id=?", userID).
		Update("bounties_created", gorm.Expr("bounties_created+1")).Error
}

func (r *bountyAccountRepository) IncreaseSubmissionsMade(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.BountyAccount{}).
		Where("user_id=?", userID).
		Update("submissions_made", gorm.Expr("submissions_made+1")).Error
}

// IncreaseWon adds the reward to total earned and raises reputation, which
// gates submissions to bounties requiring a track record. The big-integer
// column cannot be incremented in SQL, so it goes through a read-modify-write
// inside the caller's transaction.
func (r *bountyAccountRepository) IncreaseWon(
	ctx context.Context, userID string, earned entity.BigInt,
) error {
	account, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}

	var total entity.BigInt
	total.Add(&account.TotalEarned.Int, &earned.Int)

	return xcontext.DB(ctx).
		Model(&entity.BountyAccount{}).
		Where("user_id=?", userID).
		Updates(map[string]any{
			"bounties_won": gorm.Expr("bounties_won+1"),
			"reputation":   gorm.Expr("reputation+1"),
			"total_earned": total,
		}).Error
}
