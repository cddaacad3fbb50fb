package contract

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ABI of the deployed crowdfunding contract. The contract itself is an
// external collaborator, only its callable surface and events are known here.
const CrowdfundABI = `[
	{"type":"function","name":"campaignCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"campaigns","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"creator","type":"address"},{"name":"title","type":"string"},{"name":"description","type":"string"},{"name":"goal","type":"uint256"},{"name":"pledged","type":"uint256"},{"name":"deadline","type":"uint256"},{"name":"claimed","type":"bool"},{"name":"calledOff","type":"bool"}]},
	{"type":"function","name":"createCampaign","stateMutability":"nonpayable","inputs":[{"name":"title","type":"string"},{"name":"description","type":"string"},{"name":"goal","type":"uint256"},{"name":"durationInDays","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"fundCampaign","stateMutability":"payable","inputs":[{"name":"campaignId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"claimFunds","stateMutability":"nonpayable","inputs":[{"name":"campaignId","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"callOffCampaign","stateMutability":"nonpayable","inputs":[{"name":"campaignId","type":"uint256"}],"outputs":[]},
	{"type":"event","name":"CampaignCreated","anonymous":false,"inputs":[{"name":"campaignId","type":"uint256","indexed":true},{"name":"creator","type":"address","indexed":true},{"name":"goal","type":"uint256","indexed":false},{"name":"deadline","type":"uint256","indexed":false}]},
	{"type":"event","name":"CampaignFunded","anonymous":false,"inputs":[{"name":"campaignId","type":"uint256","indexed":true},{"name":"donor","type":"address","indexed":true},{"name":"amount","type":"uint256","indexed":false}]}
]`

const (
	EventCampaignCreated = "CampaignCreated"
	EventCampaignFunded  = "CampaignFunded"
)

var (
	parsedAbi  abi.ABI
	parseErr   error
	parseOnce  sync.Once
)

// DefaultAbi returns the parsed embedded ABI
func DefaultAbi() (*abi.ABI, error) {
	parseOnce.Do(func() {
		parsedAbi, parseErr = abi.JSON(strings.NewReader(CrowdfundABI))
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return &parsedAbi, nil
}
