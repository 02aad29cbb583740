package repository

import (
	"context"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/pkg/xcontext"
)

type GetListEventLogFilter struct {
	Op     string
	Actor  string
	Offset int
	Limit  int
}

type EventLogRepository interface {
	Create(ctx context.Context, data *entity.EventLog) error
	GetList(ctx context.Context, filter GetListEventLogFilter) ([]entity.EventLog, error)
}

type eventLogRepository struct{}

func NewEventLogRepository() *eventLogRepository {
	return &eventLogRepository{}
}

func (r *eventLogRepository) Create(ctx context.Context, data *entity.EventLog) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *eventLogRepository) GetList(
	ctx context.Context, filter GetListEventLogFilter,
) ([]entity.EventLog, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.EventLog{}).
		Order("id desc").
		Offset(filter.Offset)

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	if filter.Op != "" {
		tx = tx.Where("op=?", filter.Op)
	}

	if filter.Actor != "" {
		tx = tx.Where("actor=?", filter.Actor)
	}

	var result []entity.EventLog
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
