package entity

import (
	"database/sql"
	"time"

	"github.com/agrichain-lab/backend/pkg/enum"
	"gorm.io/gorm"
)

type BountyStatus string

var (
	BountyActive    = enum.New(BountyStatus("active"))
	BountyCompleted = enum.New(BountyStatus("completed"))
	BountyCancelled = enum.New(BountyStatus("cancelled"))
	BountyExpired   = enum.New(BountyStatus("expired"))
)

// Bounty is a funded, time-boxed challenge. The status only moves from active
// to one of the terminal states, never back.
type Bounty struct {
	SnowFlakeBase

	CreatorID string `gorm:"index"`
	Creator   User   `gorm:"foreignKey:CreatorID"`

	Title        string
	Requirements string
	Category     string

	Reward BigInt
	Status BountyStatus `gorm:"index"`

	Deadline        time.Time
	SubmissionCount uint64

	// WinnerID is set when the bounty completes.
	WinnerID sql.NullString

	RewardDistributed bool
}

type BountySettings struct {
	UpdatedAt time.Time

	BountyID int64  `gorm:"primaryKey"`
	Bounty   Bounty `gorm:"foreignKey:BountyID"`

	Tags                  Array[string]
	MinReputationRequired uint64
	AllowMultipleWinners  bool
	MaxWinners            int

	// PlatformFee is derived from the reward at creation time.
	PlatformFee BigInt
}

// Submission belongs to exactly one bounty. At most one submission per bounty
// may be selected.
type Submission struct {
	SnowFlakeBase

	BountyID int64  `gorm:"index"`
	Bounty   Bounty `gorm:"foreignKey:BountyID"`

	SubmitterID string `gorm:"index"`
	Submitter   User   `gorm:"foreignKey:SubmitterID"`

	SubmissionData string
	Selected       bool
	Votes          int64
	Feedback       string
	IsActive       bool
}

// BountyAccount is the bounty-market extension record of a user.
type BountyAccount struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Reputation      uint64
	BountiesCreated uint64
	BountiesWon     uint64
	SubmissionsMade uint64

	TotalEarned BigInt
	IsVerified  bool
}
