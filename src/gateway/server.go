// Package gateway serves the REST surface of the mirror: campaign listing
// with derived state and the four transaction flows.
package gateway

import (
	"context"
	"net/http"

	"github.com/fundflare/mirror/src/chain"
	"github.com/fundflare/mirror/src/reconcile"
	"github.com/fundflare/mirror/src/utils/config"
	"github.com/fundflare/mirror/src/utils/model"
	"github.com/fundflare/mirror/src/utils/monitoring"
	"github.com/fundflare/mirror/src/utils/task"

	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
)

const listCacheKey = "campaigns"

// Flows runs the reconciliation flows behind the mutating endpoints
type Flows interface {
	Create(ctx context.Context, params reconcile.CreateParams) (*reconcile.Outcome, error)
	Fund(ctx context.Context, recordID string, amount string) (*reconcile.Outcome, error)
	Claim(ctx context.Context, recordID string) (*reconcile.Outcome, error)
	CallOff(ctx context.Context, recordID string) (*reconcile.Outcome, error)
}

// CampaignStore serves the read endpoints
type CampaignStore interface {
	ListCampaigns(ctx context.Context) []*model.Campaign
	GetCampaign(ctx context.Context, recordID string) (*model.Campaign, error)
}

// ChainReader serves the chain-backed read endpoints
type ChainReader interface {
	CampaignCount(ctx context.Context) (uint64, error)
	ListFundingEvents(ctx context.Context, chainID uint64) ([]chain.Contribution, error)
}

// REST API server of the campaign mirror
type Server struct {
	*task.Task

	flows Flows
	store CampaignStore
	chain ChainReader

	monitor monitoring.Monitor

	// Short-TTL cache of the campaign list view, flushed on every
	// successful flow and on campaign updates from sibling instances
	listCache *cache.Cache

	httpServer *http.Server
	Router     *gin.Engine
}

func NewServer(config *config.Config, flows Flows, store CampaignStore, chain ChainReader) (self *Server) {
	self = new(Server)
	self.flows = flows
	self.store = store
	self.chain = chain
	self.listCache = cache.New(config.Gateway.ListCacheTTL, config.Gateway.ListCacheCleanupInterval)

	self.Task = task.NewTask(config, "gateway-server").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	if !config.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}
	self.Router = gin.New()
	self.Router.Use(gin.Recovery())

	self.httpServer = &http.Server{
		Addr:        config.Gateway.ServerListenAddress,
		Handler:     self.Router,
		ReadTimeout: config.Gateway.ServerRequestTimeout,
	}

	v1 := self.Router.Group("v1")
	{
		v1.GET("campaigns", self.onListCampaigns)
		v1.GET("campaigns/count", self.onCampaignCount)
		v1.GET("campaigns/:id", self.onGetCampaign)
		v1.POST("campaigns", self.onCreateCampaign)
		v1.POST("campaigns/:id/fund", self.onFundCampaign)
		v1.POST("campaigns/:id/claim", self.onClaimFunds)
		v1.POST("campaigns/:id/calloff", self.onCallOffCampaign)
	}

	return
}

func (self *Server) WithMonitor(monitor monitoring.Monitor) *Server {
	self.monitor = monitor
	return self
}

func (self *Server) run() (err error) {
	self.Log.WithField("addr", self.httpServer.Addr).Info("Starting gateway server")
	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.Log.WithError(err).Error("Failed to start gateway server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown gateway server")
		return
	}
}

// FlushListCache drops the cached list view, called after local flows and
// by the invalidator on updates published by sibling instances
func (self *Server) FlushListCache() {
	self.listCache.Delete(listCacheKey)
}
