package event

type PointsAwardedEvent struct {
	UserID string `json:"user_id"`
	Amount uint64 `json:"amount"`
	Action string `json:"action"`
}

func (e PointsAwardedEvent) Op() string    { return "pointsAwarded" }
func (e PointsAwardedEvent) Actor() string { return e.UserID }

type PointsRedeemedEvent struct {
	UserID     string `json:"user_id"`
	Amount     uint64 `json:"amount"`
	Redemption string `json:"redemption"`
}

func (e PointsRedeemedEvent) Op() string    { return "pointsRedeemed" }
func (e PointsRedeemedEvent) Actor() string { return e.UserID }
