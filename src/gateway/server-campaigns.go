package gateway

import (
	"net/http"
	"time"

	"github.com/fundflare/mirror/src/gateway/response"
	"github.com/fundflare/mirror/src/utils/campaign"
	"github.com/fundflare/mirror/src/utils/model"

	"github.com/gin-gonic/gin"
)

func toView(c *model.Campaign) response.Campaign {
	return response.Campaign{
		ID:            c.ID,
		ChainID:       c.ChainID,
		Creator:       c.Creator,
		Title:         c.Title,
		Description:   c.Description,
		Goal:          c.Goal,
		Pledged:       c.Pledged,
		Deadline:      c.Deadline,
		Status:        string(c.Status),
		Progress:      campaign.ProgressPercentage(c.PledgedInt(), c.GoalInt()),
		DaysRemaining: campaign.DaysRemaining(c.Deadline, time.Now().Unix()),
		IsActive:      campaign.IsActive(c),
	}
}

// onListCampaigns serves the list view. Reads fail open, an unreachable
// store yields an empty list, never an error.
func (self *Server) onListCampaigns(c *gin.Context) {
	if cached, ok := self.listCache.Get(listCacheKey); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	campaigns := self.store.ListCampaigns(c.Request.Context())

	out := response.CampaignList{Campaigns: make([]response.Campaign, 0, len(campaigns))}
	for _, record := range campaigns {
		out.Campaigns = append(out.Campaigns, toView(record))
	}

	self.listCache.SetDefault(listCacheKey, out)
	c.JSON(http.StatusOK, out)
}

func (self *Server) onCampaignCount(c *gin.Context) {
	count, err := self.chain.CampaignCount(c.Request.Context())
	if err != nil {
		self.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, response.CampaignCount{Count: count})
}

// onGetCampaign serves the detail view: the record, per-donor contribution
// totals read from chain logs and, when the caller address is given,
// the derived eligibility flags
func (self *Server) onGetCampaign(c *gin.Context) {
	record, err := self.store.GetCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		self.abort(c, err)
		return
	}

	out := response.CampaignDetail{
		Campaign:      toView(record),
		Contributions: []response.Contribution{},
	}

	if record.ChainID != nil {
		contributions, err := self.chain.ListFundingEvents(c.Request.Context(), *record.ChainID)
		if err != nil {
			// The record itself is still served
			self.Log.WithError(err).WithField("record_id", record.ID).Warn("Could not list funding events")
			self.monitor.GetReport().Mirror.Errors.ChainReadFailures.Inc()
			out.Warnings = append(out.Warnings, "contributions unavailable")
		}
		for _, contribution := range contributions {
			out.Contributions = append(out.Contributions, response.Contribution{
				Donor:  contribution.Donor,
				Amount: contribution.Amount.String(),
			})
		}
	}

	if caller := c.Query("caller"); caller != "" {
		out.Eligibility = &response.Eligibility{
			CanClaim:   campaign.CanClaim(record, caller),
			CanCallOff: campaign.CanCallOff(record, caller),
		}
	}

	c.JSON(http.StatusOK, out)
}
