package event

type CropBatchCreatedEvent struct {
	TokenID  int64  `json:"token_id"`
	FarmerID string `json:"farmer_id"`
	CropType string `json:"crop_type"`
}

func (e CropBatchCreatedEvent) Op() string    { return "cropBatchCreated" }
func (e CropBatchCreatedEvent) Actor() string { return e.FarmerID }

type CropScannedEvent struct {
	TokenID    int64  `json:"token_id"`
	ScannerID  string `json:"scanner_id"`
	TotalScans uint64 `json:"total_scans"`
}

func (e CropScannedEvent) Op() string    { return "cropScanned" }
func (e CropScannedEvent) Actor() string { return e.ScannerID }

type CropRatedEvent struct {
	TokenID       int64  `json:"token_id"`
	RaterID       string `json:"rater_id"`
	Rating        uint64 `json:"rating"`
	AverageRating uint64 `json:"average_rating"`
}

func (e CropRatedEvent) Op() string    { return "cropRated" }
func (e CropRatedEvent) Actor() string { return e.RaterID }

type CropSharedEvent struct {
	TokenID      int64  `json:"token_id"`
	SharerID     string `json:"sharer_id"`
	SocialShares uint64 `json:"social_shares"`
}

func (e CropSharedEvent) Op() string    { return "cropShared" }
func (e CropSharedEvent) Actor() string { return e.SharerID }
