package gateway

import (
	"net/http"

	"github.com/fundflare/mirror/src/gateway/request"
	"github.com/fundflare/mirror/src/gateway/response"
	"github.com/fundflare/mirror/src/reconcile"
	"github.com/fundflare/mirror/src/utils/binder"
	. "github.com/fundflare/mirror/src/utils/logger"

	"github.com/gin-gonic/gin"
)

func (self *Server) onCreateCampaign(c *gin.Context) {
	var in = new(request.CreateCampaign)
	err := c.ShouldBindWith(in, binder.JSON)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Error("Failed to parse request")
		return
	}

	outcome, err := self.flows.Create(c.Request.Context(), reconcile.CreateParams{
		Title:        in.Title,
		Description:  in.Description,
		Goal:         in.Goal,
		DurationDays: in.DurationDays,
	})
	if err != nil {
		self.abort(c, err)
		return
	}

	self.FlushListCache()
	c.JSON(http.StatusCreated, self.toFlowResult(outcome))
}

func (self *Server) onFundCampaign(c *gin.Context) {
	var in = new(request.FundCampaign)
	err := c.ShouldBindWith(in, binder.JSON)
	if err != nil {
		LOGE(c, err, http.StatusBadRequest).Error("Failed to parse request")
		return
	}

	outcome, err := self.flows.Fund(c.Request.Context(), c.Param("id"), in.Amount)
	if err != nil {
		self.abort(c, err)
		return
	}

	self.FlushListCache()
	c.JSON(http.StatusOK, self.toFlowResult(outcome))
}

func (self *Server) onClaimFunds(c *gin.Context) {
	outcome, err := self.flows.Claim(c.Request.Context(), c.Param("id"))
	if err != nil {
		self.abort(c, err)
		return
	}

	self.FlushListCache()
	c.JSON(http.StatusOK, self.toFlowResult(outcome))
}

func (self *Server) onCallOffCampaign(c *gin.Context) {
	outcome, err := self.flows.CallOff(c.Request.Context(), c.Param("id"))
	if err != nil {
		self.abort(c, err)
		return
	}

	self.FlushListCache()
	c.JSON(http.StatusOK, self.toFlowResult(outcome))
}

func (self *Server) toFlowResult(outcome *reconcile.Outcome) (out response.FlowResult) {
	out.TxHash = outcome.TxHash
	out.Warnings = outcome.Warnings
	if outcome.Campaign != nil {
		view := toView(outcome.Campaign)
		out.Campaign = &view
	}
	return
}
