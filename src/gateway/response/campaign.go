package response

// Campaign is the list/detail view of a mirrored record, amounts are
// base-unit decimal strings
type Campaign struct {
	ID            string  `json:"id"`
	ChainID       *uint64 `json:"chain_id,omitempty"`
	Creator       string  `json:"creator"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Goal          string  `json:"goal"`
	Pledged       string  `json:"pledged"`
	Deadline      int64   `json:"deadline"`
	Status        string  `json:"status"`
	Progress      int     `json:"progress"`
	DaysRemaining int64   `json:"days_remaining"`
	IsActive      bool    `json:"is_active"`
}

type Contribution struct {
	Donor  string `json:"donor"`
	Amount string `json:"amount"`
}

// Eligibility is derived for the caller address passed in the request
type Eligibility struct {
	CanClaim   bool `json:"can_claim"`
	CanCallOff bool `json:"can_call_off"`
}

type CampaignDetail struct {
	Campaign
	Contributions []Contribution `json:"contributions"`
	Eligibility   *Eligibility   `json:"eligibility,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
}

type CampaignList struct {
	Campaigns []Campaign `json:"campaigns"`
}

type CampaignCount struct {
	Count uint64 `json:"count"`
}
