package model

type PointAccount struct {
	UserID  string `json:"user_id"`
	Balance uint64 `json:"balance"`

	TotalScans     uint64 `json:"total_scans"`
	TotalRatings   uint64 `json:"total_ratings"`
	TotalShares    uint64 `json:"total_shares"`
	TotalReferrals uint64 `json:"total_referrals"`
}

type AwardPointsRequest struct {
	UserID string `json:"user_id"`
	Amount uint64 `json:"amount"`
	Action string `json:"action"`
}

type AwardPointsResponse struct {
	Balance uint64 `json:"balance"`
}

type RedeemPointsRequest struct {
	Amount     uint64 `json:"amount"`
	Redemption string `json:"redemption"`
}

type RedeemPointsResponse struct {
	Balance uint64 `json:"balance"`
}

type GetBalanceRequest struct {
	UserID string `form:"user_id" json:"user_id"`
}

type GetBalanceResponse PointAccount

type GetPointLeaderboardRequest struct {
	Offset int `form:"offset" json:"offset"`
	Limit  int `form:"limit" json:"limit"`
}

type PointLeaderboardEntry struct {
	UserID  string `json:"user_id"`
	Balance uint64 `json:"balance"`
	Rank    int    `json:"rank"`
}

type GetPointLeaderboardResponse struct {
	Leaderboard []PointLeaderboardEntry `json:"leaderboard"`
}
