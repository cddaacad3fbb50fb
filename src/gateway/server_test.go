package gateway

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/fundflare/mirror/src/chain"
	"github.com/fundflare/mirror/src/gateway/response"
	"github.com/fundflare/mirror/src/reconcile"
	"github.com/fundflare/mirror/src/store"
	"github.com/fundflare/mirror/src/utils/config"
	"github.com/fundflare/mirror/src/utils/model"
	monitor_mirror "github.com/fundflare/mirror/src/utils/monitoring/mirror"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"testing"
)

const creator = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

type ServerTestSuite struct {
	suite.Suite

	flows *fakeFlows
	store *fakeStore
	chain *fakeChain

	server *Server
}

func (s *ServerTestSuite) SetupTest() {
	s.flows = new(fakeFlows)
	s.store = newFakeStore()
	s.chain = new(fakeChain)

	s.server = NewServer(config.Default(), s.flows, s.store, s.chain).
		WithMonitor(monitor_mirror.NewMonitor())
}

func (s *ServerTestSuite) request(method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.server.Router.ServeHTTP(w, req)
	return w
}

// ---- fakes ----

type fakeFlows struct {
	outcome *reconcile.Outcome
	err     error

	lastCreate reconcile.CreateParams
	lastAmount string
	lastRecord string
}

func (self *fakeFlows) result() (*reconcile.Outcome, error) {
	if self.err != nil {
		return nil, self.err
	}
	if self.outcome != nil {
		return self.outcome, nil
	}
	return &reconcile.Outcome{TxHash: "0xabc"}, nil
}

func (self *fakeFlows) Create(ctx context.Context, params reconcile.CreateParams) (*reconcile.Outcome, error) {
	self.lastCreate = params
	return self.result()
}

func (self *fakeFlows) Fund(ctx context.Context, recordID string, amount string) (*reconcile.Outcome, error) {
	self.lastRecord, self.lastAmount = recordID, amount
	return self.result()
}

func (self *fakeFlows) Claim(ctx context.Context, recordID string) (*reconcile.Outcome, error) {
	self.lastRecord = recordID
	return self.result()
}

func (self *fakeFlows) CallOff(ctx context.Context, recordID string) (*reconcile.Outcome, error) {
	self.lastRecord = recordID
	return self.result()
}

type fakeStore struct {
	campaigns []*model.Campaign
	listCalls int
}

func newFakeStore() *fakeStore {
	chainID := uint64(7)
	return &fakeStore{
		campaigns: []*model.Campaign{
			{
				ID:      "rec1",
				ChainID: &chainID,
				Creator: creator,
				Title:   "Solar well",
				Goal:    "100",
				Pledged: "250",
				Status:  model.CampaignStatusOpen,
			},
			{
				ID:      "rec2",
				Creator: creator,
				Title:   "Library",
				Goal:    "0",
				Pledged: "0",
				Status:  model.CampaignStatusCalledOff,
			},
		},
	}
}

func (self *fakeStore) ListCampaigns(ctx context.Context) []*model.Campaign {
	self.listCalls++
	return self.campaigns
}

func (self *fakeStore) GetCampaign(ctx context.Context, recordID string) (*model.Campaign, error) {
	for _, c := range self.campaigns {
		if c.ID == recordID {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeChain struct {
	count    uint64
	countErr error

	contributions []chain.Contribution
	eventsErr     error
}

func (self *fakeChain) CampaignCount(ctx context.Context) (uint64, error) {
	return self.count, self.countErr
}

func (self *fakeChain) ListFundingEvents(ctx context.Context, chainID uint64) ([]chain.Contribution, error) {
	return self.contributions, self.eventsErr
}

// ---- reads ----

func (s *ServerTestSuite) TestListCampaigns() {
	w := s.request(http.MethodGet, "/v1/campaigns", "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var out response.CampaignList
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(s.T(), out.Campaigns, 2)

	// Overfunded progress caps at 100
	require.Equal(s.T(), 100, out.Campaigns[0].Progress)
	require.True(s.T(), out.Campaigns[0].IsActive)

	// Zero goal records report zero progress
	require.Equal(s.T(), 0, out.Campaigns[1].Progress)
	require.False(s.T(), out.Campaigns[1].IsActive)
}

func (s *ServerTestSuite) TestListIsCached() {
	s.request(http.MethodGet, "/v1/campaigns", "")
	s.request(http.MethodGet, "/v1/campaigns", "")
	require.Equal(s.T(), 1, s.store.listCalls)

	s.server.FlushListCache()
	s.request(http.MethodGet, "/v1/campaigns", "")
	require.Equal(s.T(), 2, s.store.listCalls)
}

func (s *ServerTestSuite) TestGetCampaign() {
	s.chain.contributions = []chain.Contribution{
		{Donor: "0xdonor", Amount: big.NewInt(250)},
	}

	w := s.request(http.MethodGet, "/v1/campaigns/rec1?caller="+creator, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var out response.CampaignDetail
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(s.T(), "rec1", out.ID)
	require.Len(s.T(), out.Contributions, 1)
	require.Equal(s.T(), "250", out.Contributions[0].Amount)

	require.NotNil(s.T(), out.Eligibility)
	require.True(s.T(), out.Eligibility.CanClaim)
	require.False(s.T(), out.Eligibility.CanCallOff)
}

func (s *ServerTestSuite) TestGetCampaignNotFound() {
	w := s.request(http.MethodGet, "/v1/campaigns/missing", "")
	require.Equal(s.T(), http.StatusNotFound, w.Code)

	var out response.Error
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(s.T(), "not_found", out.Code)
}

func (s *ServerTestSuite) TestGetCampaignContributionsFailOpen() {
	s.chain.eventsErr = chain.ErrRead

	w := s.request(http.MethodGet, "/v1/campaigns/rec1", "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var out response.CampaignDetail
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
	require.Empty(s.T(), out.Contributions)
	require.Len(s.T(), out.Warnings, 1)
}

func (s *ServerTestSuite) TestCampaignCount() {
	s.chain.count = 42

	w := s.request(http.MethodGet, "/v1/campaigns/count", "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var out response.CampaignCount
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(s.T(), uint64(42), out.Count)
}

func (s *ServerTestSuite) TestCampaignCountUnavailable() {
	s.chain.countErr = chain.ErrContractUnavailable

	w := s.request(http.MethodGet, "/v1/campaigns/count", "")
	require.Equal(s.T(), http.StatusServiceUnavailable, w.Code)
}

// ---- flows ----

func (s *ServerTestSuite) TestCreateCampaign() {
	w := s.request(http.MethodPost, "/v1/campaigns",
		`{"title":"Solar well","description":"Water","goal":"5","duration_days":30}`)
	require.Equal(s.T(), http.StatusCreated, w.Code)
	require.Equal(s.T(), "Solar well", s.flows.lastCreate.Title)
	require.Equal(s.T(), int64(30), s.flows.lastCreate.DurationDays)
}

func (s *ServerTestSuite) TestCreateCampaignRejectsUnknownFields() {
	w := s.request(http.MethodPost, "/v1/campaigns",
		`{"title":"t","description":"d","goal":"5","duration_days":30,"extra":1}`)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *ServerTestSuite) TestCreateCampaignMissingFields() {
	w := s.request(http.MethodPost, "/v1/campaigns", `{"title":"t"}`)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *ServerTestSuite) TestFundCampaign() {
	w := s.request(http.MethodPost, "/v1/campaigns/rec1/fund", `{"amount":"0.5"}`)
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.Equal(s.T(), "rec1", s.flows.lastRecord)
	require.Equal(s.T(), "0.5", s.flows.lastAmount)
}

func (s *ServerTestSuite) TestFlowErrorMapping() {
	for _, tc := range []struct {
		err    error
		status int
		code   string
	}{
		{reconcile.ErrValidation, http.StatusBadRequest, "validation_failed"},
		{reconcile.ErrNotEligible, http.StatusForbidden, "not_eligible"},
		{reconcile.ErrMissingChainLink, http.StatusConflict, "missing_chain_link"},
		{chain.ErrUserRejected, http.StatusBadRequest, "user_rejected"},
		{chain.ErrWalletUnavailable, http.StatusServiceUnavailable, "wallet_unavailable"},
		{chain.ErrReverted, http.StatusUnprocessableEntity, "transaction_reverted"},
		{chain.ErrDropped, http.StatusBadGateway, "transaction_dropped"},
		{chain.ErrConfirmationTimeout, http.StatusGatewayTimeout, "confirmation_timeout"},
	} {
		s.flows.err = tc.err

		w := s.request(http.MethodPost, "/v1/campaigns/rec1/claim", "")
		require.Equal(s.T(), tc.status, w.Code, tc.code)

		var out response.Error
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(s.T(), tc.code, out.Code)
	}
}

func (s *ServerTestSuite) TestFlowWarningsPassedThrough() {
	s.flows.outcome = &reconcile.Outcome{
		TxHash:   "0xabc",
		Warnings: []string{"transaction confirmed but the metadata store could not be updated"},
	}

	w := s.request(http.MethodPost, "/v1/campaigns/rec1/calloff", "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var out response.FlowResult
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(s.T(), "0xabc", out.TxHash)
	require.Len(s.T(), out.Warnings, 1)
}

func (s *ServerTestSuite) TestFlowFlushesListCache() {
	s.request(http.MethodGet, "/v1/campaigns", "")
	require.Equal(s.T(), 1, s.store.listCalls)

	s.request(http.MethodPost, "/v1/campaigns/rec1/fund", `{"amount":"1"}`)

	s.request(http.MethodGet, "/v1/campaigns", "")
	require.Equal(s.T(), 2, s.store.listCalls)
}
