// Package campaign holds the derived-state rules every view of a campaign
// must reproduce identically. All functions are pure and synchronous.
package campaign

import (
	"math/big"

	"github.com/fundflare/mirror/src/utils/model"
)

const secondsPerDay = 86400

var oneHundred = big.NewInt(100)

// ProgressPercentage computes pledged/goal as an integer percentage, capped
// at 100. Big-integer arithmetic throughout, currency amounts would lose
// precision as floats. A zero goal yields 0, not a division error.
func ProgressPercentage(pledged, goal *big.Int) int {
	if goal == nil || goal.Sign() == 0 || pledged == nil {
		return 0
	}

	p := new(big.Int).Mul(pledged, oneHundred)
	p.Quo(p, goal)

	if p.Cmp(oneHundred) > 0 {
		return 100
	}
	return int(p.Int64())
}

// DaysRemaining returns whole days until the deadline, never negative
func DaysRemaining(deadline, now int64) int64 {
	if deadline <= now {
		return 0
	}
	return (deadline - now) / secondsPerDay
}

// CanClaim reports whether the caller may claim the campaign's funds:
// the caller is the creator, the campaign is still open and the goal is met.
func CanClaim(c *model.Campaign, callerAddress string) bool {
	return c.IsCreator(callerAddress) &&
		c.Status == model.CampaignStatusOpen &&
		c.PledgedInt().Cmp(c.GoalInt()) >= 0
}

// CanCallOff reports whether the caller may call the campaign off:
// the caller is the creator, the campaign is still open and the goal is not met.
func CanCallOff(c *model.Campaign, callerAddress string) bool {
	return c.IsCreator(callerAddress) &&
		c.Status == model.CampaignStatusOpen &&
		c.PledgedInt().Cmp(c.GoalInt()) < 0
}

func IsActive(c *model.Campaign) bool {
	return c.Status == model.CampaignStatusOpen
}
