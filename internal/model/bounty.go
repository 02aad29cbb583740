package model

type Bounty struct {
	ID        int64  `json:"id"`
	CreatorID string `json:"creator_id"`

	Title        string `json:"title"`
	Requirements string `json:"requirements"`
	Category     string `json:"category"`

	Reward string `json:"reward"`
	Status string `json:"status"`

	CreatedAt       string `json:"created_at"`
	Deadline        string `json:"deadline"`
	SubmissionCount uint64 `json:"submission_count"`

	WinnerID          string `json:"winner_id,omitempty"`
	RewardDistributed bool   `json:"reward_distributed"`

	PlatformFee string `json:"platform_fee,omitempty"`
}

type Submission struct {
	ID             int64  `json:"id"`
	BountyID       int64  `json:"bounty_id"`
	SubmitterID    string `json:"submitter_id"`
	SubmissionData string `json:"submission_data"`
	CreatedAt      string `json:"created_at"`
	Selected       bool   `json:"selected"`
	Votes          int64  `json:"votes"`
	Feedback       string `json:"feedback"`
	IsActive       bool   `json:"is_active"`
}

type BountyAccount struct {
	UserID          string `json:"user_id"`
	Reputation      uint64 `json:"reputation"`
	BountiesCreated uint64 `json:"bounties_created"`
	BountiesWon     uint64 `json:"bounties_won"`
	SubmissionsMade uint64 `json:"submissions_made"`
	TotalEarned     string `json:"total_earned"`
	IsVerified      bool   `json:"is_verified"`
}

type CreateBountyRequest struct {
	Title        string `json:"title"`
	Requirements string `json:"requirements"`
	Category     string `json:"category"`

	// Reward is a decimal string of base units (18 decimals).
	Reward string `json:"reward"`

	DurationDays uint64 `json:"duration_days"`

	Tags                  []string `json:"tags"`
	MinReputationRequired uint64   `json:"min_reputation_required"`
	AllowMultipleWinners  bool     `json:"allow_multiple_winners"`
	MaxWinners            int      `json:"max_winners"`
}

type CreateBountyResponse struct {
	ID          int64  `json:"id"`
	PlatformFee string `json:"platform_fee"`
}

type SubmitToBountyRequest struct {
	BountyID       int64  `json:"bounty_id"`
	SubmissionData string `json:"submission_data"`
}

type SubmitToBountyResponse struct {
	ID int64 `json:"id"`
}

type VoteOnSubmissionRequest struct {
	SubmissionID int64 `json:"submission_id"`
	Support      bool  `json:"support"`
}

type VoteOnSubmissionResponse struct {
	Votes int64 `json:"votes"`
}

type CompleteBountyRequest struct {
	BountyID     int64  `json:"bounty_id"`
	SubmissionID int64  `json:"submission_id"`
	Feedback     string `json:"feedback"`
}

type CompleteBountyResponse struct{}

type CancelBountyRequest struct {
	BountyID int64  `json:"bounty_id"`
	Reason   string `json:"reason"`
}

type CancelBountyResponse struct{}

type GetBountyRequest struct {
	ID int64 `form:"id" json:"id"`
}

type GetBountyResponse struct {
	Bounty      Bounty       `json:"bounty"`
	Submissions []Submission `json:"submissions"`
}

type GetListBountyRequest struct {
	Status   string `form:"status" json:"status"`
	Category string `form:"category" json:"category"`
	Offset   int    `form:"offset" json:"offset"`
	Limit    int    `form:"limit" json:"limit"`
}

type GetListBountyResponse struct {
	Bounties []Bounty `json:"bounties"`
}

type GetBountyAccountRequest struct {
	UserID string `form:"user_id" json:"user_id"`
}

type GetBountyAccountResponse BountyAccount
