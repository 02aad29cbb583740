package entity

import (
	"time"

	"gorm.io/gorm"
)

// Well-known crop stage labels. The stage is free text and its progression is
// not enforced, any authorized update is accepted.
const (
	StagePlanted   = "planted"
	StageGrowing   = "growing"
	StageFlowering = "flowering"
	StageFruiting  = "fruiting"
	StageHarvested = "harvested"
)

// CropBatch is a token-like record of a tracked agricultural lot. The token id
// is allocated by the database and is monotonically increasing; it never
// changes after mint.
type CropBatch struct {
	TokenID   int64 `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	FarmerID string `gorm:"index"`
	Farmer   User   `gorm:"foreignKey:FarmerID"`

	CropType  string
	Location  string
	IsOrganic bool
	Quantity  uint64

	HarvestDate time.Time
	Stage       string

	Certifications Array[string]
	CropImage      string
}

// CropEngagement aggregates interaction counters of one batch. AverageRating
// is the running mean of all ratings with precision 100, bounded to [0, 500].
type CropEngagement struct {
	UpdatedAt time.Time

	BatchID int64     `gorm:"primaryKey"`
	Batch   CropBatch `gorm:"foreignKey:BatchID"`

	TotalScans    uint64
	TotalRatings  uint64
	AverageRating uint64
	SocialShares  uint64
}

// CropAccount is the crop-registry extension record of a user.
type CropAccount struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	OwnedBatches Array[int64]
	Reputation   uint64
}
