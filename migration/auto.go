package migration

import (
	"context"

	"github.com/agrichain-lab/backend/internal/entity"
	"github.com/agrichain-lab/backend/pkg/xcontext"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.PointAccount{},
		&entity.CropAccount{},
		&entity.CropBatch{},
		&entity.CropEngagement{},
		&entity.Bounty{},
		&entity.BountySettings{},
		&entity.Submission{},
		&entity.BountyAccount{},
		&entity.EventLog{},
	)
}
