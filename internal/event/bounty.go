package event

type BountyCreatedEvent struct {
	BountyID  int64  `json:"bounty_id"`
	CreatorID string `json:"creator_id"`
	Reward    string `json:"reward"`
	Deadline  string `json:"deadline"`
}

func (e BountyCreatedEvent) Op() string    { return "bountyCreated" }
func (e BountyCreatedEvent) Actor() string { return e.CreatorID }

type SubmissionMadeEvent struct {
	SubmissionID int64  `json:"submission_id"`
	BountyID     int64  `json:"bounty_id"`
	SubmitterID  string `json:"submitter_id"`
}

func (e SubmissionMadeEvent) Op() string    { return "submissionMade" }
func (e SubmissionMadeEvent) Actor() string { return e.SubmitterID }

type BountyCompletedEvent struct {
	BountyID     int64  `json:"bounty_id"`
	SubmissionID int64  `json:"submission_id"`
	WinnerID     string `json:"winner_id"`
	Reward       string `json:"reward"`
}

func (e BountyCompletedEvent) Op() string    { return "bountyCompleted" }
func (e BountyCompletedEvent) Actor() string { return e.WinnerID }

type BountyCancelledEvent struct {
	BountyID  int64  `json:"bounty_id"`
	CreatorID string `json:"creator_id"`
	Reason    string `json:"reason"`
}

func (e BountyCancelledEvent) Op() string    { return "bountyCancelled" }
func (e BountyCancelledEvent) Actor() string { return e.CreatorID }

type BountyExpiredEvent struct {
	BountyID  int64  `json:"bounty_id"`
	CreatorID string `json:"creator_id"`
}

func (e BountyExpiredEvent) Op() string    { return "bountyExpired" }
func (e BountyExpiredEvent) Actor() string { return e.CreatorID }
