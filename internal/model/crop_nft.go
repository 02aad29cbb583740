package model

type CropBatch struct {
	TokenID   int64  `json:"token_id"`
	FarmerID  string `json:"farmer_id"`
	CropType  string `json:"crop_type"`
	Location  string `json:"location"`
	IsOrganic bool   `json:"is_organic"`
	Quantity  uint64 `json:"quantity"`

	CreatedAt   string `json:"created_at"`
	HarvestDate string `json:"harvest_date"`
	Stage       string `json:"stage"`

	Certifications []string `json:"certifications"`
	CropImage      string   `json:"crop_image"`

	Engagement CropEngagement `json:"engagement"`
}

type CropEngagement struct {
	TotalScans    uint64 `json:"total_scans"`
	TotalRatings  uint64 `json:"total_ratings"`
	AverageRating uint64 `json:"average_rating"`
	SocialShares  uint64 `json:"social_shares"`
}

type CreateCropBatchRequest struct {
	CropType    string `json:"crop_type"`
	Location    string `json:"location"`
	IsOrganic   bool   `json:"is_organic"`
	Quantity    uint64 `json:"quantity"`
	HarvestDate string `json:"harvest_date"`
	CropImage   string `json:"crop_image"`
	Stage       string `json:"stage"`
}

type CreateCropBatchResponse struct {
	TokenID int64 `json:"token_id"`
}

type ScanCropRequest struct {
	TokenID int64 `json:"token_id"`
}

type ScanCropResponse struct {
	TotalScans uint64 `json:"total_scans"`
}

type RateCropRequest struct {
	TokenID int64  `json:"token_id"`
	Rating  uint64 `json:"rating"`
}

type RateCropResponse struct {
	TotalRatings  uint64 `json:"total_ratings"`
	AverageRating uint64 `json:"average_rating"`
}

type ShareCropRequest struct {
	TokenID int64 `json:"token_id"`
}

type ShareCropResponse struct {
	SocialShares uint64 `json:"social_shares"`
}

type UpdateCropStageRequest struct {
	TokenID int64  `json:"token_id"`
	Stage   string `json:"stage"`
}

type UpdateCropStageResponse struct{}

type AddCropCertificationRequest struct {
	TokenID       int64  `json:"token_id"`
	Certification string `json:"certification"`
}

type AddCropCertificationResponse struct{}

type UpdateCropImageRequest struct {
	TokenID   int64  `json:"token_id"`
	CropImage string `json:"crop_image"`
}

type UpdateCropImageResponse struct{}

type GetCropBatchRequest struct {
	TokenID int64 `form:"token_id" json:"token_id"`
}

type GetCropBatchResponse CropBatch

type GetListCropBatchRequest struct {
	FarmerID string `form:"farmer_id" json:"farmer_id"`
	Offset   int    `form:"offset" json:"offset"`
	Limit    int    `form:"limit" json:"limit"`
}

type GetListCropBatchResponse struct {
	Batches []CropBatch `json:"batches"`
}
