package report

import "go.uber.org/atomic"

type MirrorErrors struct {
	CreateFlowFailures  atomic.Uint64 `json:"create_flow_failures"`
	FundFlowFailures    atomic.Uint64 `json:"fund_flow_failures"`
	ClaimFlowFailures   atomic.Uint64 `json:"claim_flow_failures"`
	CallOffFlowFailures atomic.Uint64 `json:"call_off_flow_failures"`
	StorePatchFailures  atomic.Uint64 `json:"store_patch_failures"`
	ChainReadFailures   atomic.Uint64 `json:"chain_read_failures"`
	SweeperFailures     atomic.Uint64 `json:"sweeper_failures"`
	PublishFailures     atomic.Uint64 `json:"publish_failures"`
}

type MirrorState struct {
	CampaignsCreated   atomic.Int64 `json:"campaigns_created"`
	UnlinkedCampaigns  atomic.Int64 `json:"unlinked_campaigns"`
	FundingsConfirmed  atomic.Int64 `json:"fundings_confirmed"`
	ClaimsConfirmed    atomic.Int64 `json:"claims_confirmed"`
	CallOffsConfirmed  atomic.Int64 `json:"call_offs_confirmed"`
	SweeperRowsHealed  atomic.Int64 `json:"sweeper_rows_healed"`
	LastSweepTimestamp atomic.Int64 `json:"last_sweep_timestamp"`
}

type MirrorReport struct {
	State  MirrorState  `json:"state"`
	Errors MirrorErrors `json:"errors"`
}
