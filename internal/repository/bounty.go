package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListBountyFilter struct {
	Status   entity.BountyStatus
	Category string
	Offset   int
	Limit    int
}

type BountyRepository interface {
	Create(ctx context.Context, bounty *entity.Bounty, settings *entity.BountySettings) error
	GetByID(ctx context.Context, id int64) (*entity.Bounty, error)
	GetSettings(ctx context.Context, bountyID int64) (*entity.BountySettings, error)
	GetList(ctx context.Context, filter GetListBountyFilter) ([]entity.Bounty, error)
	GetActiveBefore(ctx context.Context, deadline time.Time) ([]entity.Bounty, error)
	IncreaseSubmissionCount(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64, winnerID string) error
	Cancel(ctx context.Context, id int64) error
	TransitionStatus(ctx context.Context, id int64, from, to entity.BountyStatus) error
}

type bountyRepository struct{}

func NewBountyRepository() *bountyRepository {
	return &bountyRepository{}
}

func (r *bountyRepository) Create(
	ctx context.Context, bounty *entity.Bounty, settings *entity.BountySettings,
) error {
	if err := xcontext.DB(ctx).Create(bounty).Error; err != nil {
		return err
	}

	settings.BountyID = bounty.ID
	return xcontext.DB(ctx).Create(settings).Error
}

func (r *bountyRepository) GetByID(ctx context.Context, id int64) (*entity.Bounty, error) {
	var result entity.Bounty
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *bountyRepository) GetSettings(ctx context.Context, bountyID int64) (*entity.BountySettings, error) {
	var result entity.BountySettings
	if err := xcontext.DB(ctx).Take(&result, "bounty_id=?", bountyID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *bountyRepository) GetList(
	ctx context.Context, filter GetListBountyFilter,
) ([]entity.Bounty, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Bounty{}).
		Order("created_at desc").
		Offset(filter.Offset).
		Limit(filter.Limit)

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	var result []entity.Bounty
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *bountyRepository) GetActiveBefore(
	ctx context.Context, deadline time.Time,
) ([]entity.Bounty, error) {
	var result []entity.Bounty
	err := xcontext.DB(ctx).
		Where("status=? AND deadline<=?", entity.BountyActive, deadline).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *bountyRepository) IncreaseSubmissionCount(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Bounty{}).
		Where("id=?", id).
		Update("submission_count", gorm.Expr("submission_count+1"))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Complete moves an active bounty to completed with its winner. The status
// predicate makes terminal states unreachable twice.
func (r *bountyRepository) Complete(ctx context.Context, id int64, winnerID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Bounty{}).
		Where("id=? AND status=?", id, entity.BountyActive).
		Updates(map[string]any{
			"status":             entity.BountyCompleted,
			"winner_id":          sql.NullString{String: winnerID, Valid: true},
			"reward_distributed": true,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNoEffect
	}

	return nil
}

// Cancel moves an active bounty to cancelled. The submission_count predicate
// keeps a bounty with submissions from being cancelled under a concurrent
// submit.
func (r *bountyRepository) Cancel(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Bounty{}).
		Where("id=? AND status=? AND submission_count=0", id, entity.BountyActive).
		Update("status", entity.BountyCancelled)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNoEffect
	}

	return nil
}

func (r *bountyRepository) TransitionStatus(
	ctx context.Context, id int64, from, to entity.BountyStatus,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Bounty{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNoEffect
	}

	return nil
}
