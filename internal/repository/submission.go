package repository

import (
	"context"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, data *entity.Submission) error
	GetByID(ctx context.Context, id int64) (*entity.Submission, error)
	GetByBountyID(ctx context.Context, bountyID int64) ([]entity.Submission, error)
	Count(ctx context.Context, bountyID int64) (int64, error)
	MarkSelected(ctx context.Context, id int64, feedback string) error
	ChangeVotes(ctx context.Context, id int64, delta int64) (int64, error)
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, data *entity.Submission) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id int64) (*entity.Submission, error) {
	var result entity.Submission
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *submissionRepository) GetByBountyID(
	ctx context.Context, bountyID int64,
) ([]entity.Submission, error) {
	var result []entity.Submission
	err := xcontext.DB(ctx).
		Where("bounty_id=?", bountyID).
		Order("created_at asc").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *submissionRepository) Count(ctx context.Context, bountyID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("bounty_id=?", bountyID).
		Count(&count).Error

	return count, err
}

// MarkSelected only succeeds for a not-yet-selected submission, keeping at
// most one winner per bounty together with the bounty status predicate.
func (r *submissionRepository) MarkSelected(ctx context.Context, id int64, feedback string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("id=? AND selected=?", id, false).
		Updates(map[string]any{
			"selected": true,
			"feedback": feedback,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNoEffect
	}

	return nil
}

// ChangeVotes applies the delta with a zero floor and returns the new count.
func (r *submissionRepository) ChangeVotes(ctx context.Context, id int64, delta int64) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("id=?", id)

	if delta < 0 {
		tx = tx.Where("votes>0")
	}

	if err := tx.Update("votes", gorm.Expr("votes+?", delta)).Error; err != nil {
		return 0, err
	}

	submission, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	return submission.Votes, nil
}
