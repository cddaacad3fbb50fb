package gateway

import (
	"errors"
	"net/http"

	"github.com/fundflare/mirror/src/chain"
	"github.com/fundflare/mirror/src/gateway/response"
	"github.com/fundflare/mirror/src/reconcile"
	"github.com/fundflare/mirror/src/store"

	"github.com/gin-gonic/gin"
)

// mapError translates taxonomy errors into stable machine-readable codes.
// Unrecognized errors become an opaque 500.
func mapError(err error) (status int, body response.Error) {
	switch {
	case errors.Is(err, reconcile.ErrValidation):
		status, body.Code = http.StatusBadRequest, "validation_failed"
	case errors.Is(err, chain.ErrInvalidAmount):
		status, body.Code = http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, store.ErrNotFound):
		status, body.Code = http.StatusNotFound, "not_found"
	case errors.Is(err, reconcile.ErrMissingChainLink):
		status, body.Code = http.StatusConflict, "missing_chain_link"
	case errors.Is(err, reconcile.ErrNotEligible):
		status, body.Code = http.StatusForbidden, "not_eligible"
	case errors.Is(err, chain.ErrUserRejected):
		status, body.Code = http.StatusBadRequest, "user_rejected"
	case errors.Is(err, chain.ErrWalletUnavailable):
		status, body.Code = http.StatusServiceUnavailable, "wallet_unavailable"
	case errors.Is(err, chain.ErrContractUnavailable):
		status, body.Code = http.StatusServiceUnavailable, "contract_unavailable"
	case errors.Is(err, chain.ErrReverted):
		status, body.Code = http.StatusUnprocessableEntity, "transaction_reverted"
	case errors.Is(err, chain.ErrDropped):
		status, body.Code = http.StatusBadGateway, "transaction_dropped"
	case errors.Is(err, chain.ErrConfirmationTimeout):
		status, body.Code = http.StatusGatewayTimeout, "confirmation_timeout"
	case errors.Is(err, chain.ErrRead):
		status, body.Code = http.StatusBadGateway, "chain_read_failed"
	case errors.Is(err, chain.ErrSubmission):
		status, body.Code = http.StatusBadGateway, "submission_failed"
	default:
		return http.StatusInternalServerError, response.Error{Code: "internal", Message: "internal error"}
	}
	body.Message = err.Error()
	return
}

func (self *Server) abort(c *gin.Context, err error) {
	status, body := mapError(err)
	self.Log.WithError(err).WithField("path", c.Request.URL.Path).WithField("code", body.Code).Debug("Request failed")
	c.AbortWithStatusJSON(status, body)
}
