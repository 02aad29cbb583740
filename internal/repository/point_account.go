package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// ErrNoEffect is returned when a guarded update matched no row, for example a
// debit whose balance predicate did not hold.
var ErrNoEffect = errors.New("no row was affected")

type PointAccountRepository interface {
	Create(ctx context.Context, data *entity.PointAccount) error
	Get(ctx context.Context, userID string) (*entity.PointAccount, error)
	IncreaseBalance(ctx context.Context, userID string, amount uint64, action entity.PointAction) error
	DecreaseBalance(ctx context.Context, userID string, amount uint64) error
	GetTopBalances(ctx context.Context, limit int) ([]entity.PointAccount, error)
}

type pointAccountRepository struct{}

func NewPointAccountRepository() *pointAccountRepository {
	return &pointAccountRepository{}
}

func (r *pointAccountRepository) Create(ctx context.Context, data *entity.PointAccount) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *pointAccountRepository) Get(ctx context.Context, userID string) (*entity.PointAccount, error) {
	var result entity.PointAccount
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func actionCounterColumn(action entity.PointAction) (string, error) {
	switch action {
	case entity.ActionScan:
		return "total_scans", nil
	case entity.ActionRate:
		return "total_ratings", nil
	case entity.ActionShare:
		return "total_shares", nil
	case entity.ActionReferral:
		return "total_referrals", nil
	}

	return "", fmt.Errorf("unknown point action %s", action)
}

func (r *pointAccountRepository) IncreaseBalance(
	ctx context.Context, userID string, amount uint64, action entity.PointAction,
) error {
	counter, err := actionCounterColumn(action)
	if err != nil {
		return err
	}

	tx := xcontext.DB(ctx).
		Model(&entity.PointAccount{}).
		Where("user_id=?", userID).
		Updates(map[string]any{
			"balance": gorm.Expr("balance+?", amount),
			counter:   gorm.Expr(counter+"+1"),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNoEffect
	}

	return nil
}

// DecreaseBalance debits the account. The balance predicate keeps the balance
// from ever going negative.
func (r *pointAccountRepository) DecreaseBalance(
	ctx context.Context, userID string, amount uint64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.PointAccount{}).
		Where("user_id=? AND balance>=?", userID, amount).
		Update("balance", gorm.Expr("balance-?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNoEffect
	}

	return nil
}

func (r *pointAccountRepository) GetTopBalances(ctx context.Context, limit int) ([]entity.PointAccount, error) {
	var result []entity.PointAccount
	err := xcontext.DB(ctx).
		Order("balance desc").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
