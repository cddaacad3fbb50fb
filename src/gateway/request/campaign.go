package request

// CreateCampaign is the body of POST /v1/campaigns.
// Goal is a human decimal string, never a float.
type CreateCampaign struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Goal         string `json:"goal" binding:"required"`
	DurationDays int64  `json:"duration_days" binding:"required,gt=0"`
}

// FundCampaign is the body of POST /v1/campaigns/:id/fund
type FundCampaign struct {
	Amount string `json:"amount" binding:"required"`
}
