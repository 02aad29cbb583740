package entity

import (
	"time"

	"github.com/agrichain-lab/backend/pkg/enum"
	"gorm.io/gorm"
)

type PointAction string

var (
	ActionScan     = enum.New(PointAction("scan"))
	ActionRate     = enum.New(PointAction("rate"))
	ActionShare    = enum.New(PointAction("share"))
	ActionReferral = enum.New(PointAction("referral"))
)

// PointAccount is the green-points extension record of a user. The balance is
// a fungible point amount and must never be driven negative.
type PointAccount struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Balance uint64

	TotalScans     uint64
	TotalRatings   uint64
	TotalShares    uint64
	TotalReferrals uint64
}
