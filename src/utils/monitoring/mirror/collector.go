package monitor_mirror

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	// Run
	UpForSeconds        *prometheus.Desc
	NumWatchdogRestarts *prometheus.Desc

	// Errors
	CreateFlowFailures  *prometheus.Desc
	FundFlowFailures    *prometheus.Desc
	ClaimFlowFailures   *prometheus.Desc
	CallOffFlowFailures *prometheus.Desc
	StorePatchFailures  *prometheus.Desc
	ChainReadFailures   *prometheus.Desc
	SweeperFailures     *prometheus.Desc
	PublishFailures     *prometheus.Desc

	// State
	CampaignsCreated   *prometheus.Desc
	UnlinkedCampaigns  *prometheus.Desc
	FundingsConfirmed  *prometheus.Desc
	ClaimsConfirmed    *prometheus.Desc
	CallOffsConfirmed  *prometheus.Desc
	SweeperRowsHealed  *prometheus.Desc
	LastSweepTimestamp *prometheus.Desc
}

func NewCollector() *Collector {
	return &Collector{
		UpForSeconds:        prometheus.NewDesc("up_for_seconds", "", nil, nil),
		NumWatchdogRestarts: prometheus.NewDesc("num_watchdog_restarts", "", nil, nil),

		// Errors
		CreateFlowFailures:  prometheus.NewDesc("create_flow_failures", "", nil, nil),
		FundFlowFailures:    prometheus.NewDesc("fund_flow_failures", "", nil, nil),
		ClaimFlowFailures:   prometheus.NewDesc("claim_flow_failures", "", nil, nil),
		CallOffFlowFailures: prometheus.NewDesc("call_off_flow_failures", "", nil, nil),
		StorePatchFailures:  prometheus.NewDesc("store_patch_failures", "", nil, nil),
		ChainReadFailures:   prometheus.NewDesc("chain_read_failures", "", nil, nil),
		SweeperFailures:     prometheus.NewDesc("sweeper_failures", "", nil, nil),
		PublishFailures:     prometheus.NewDesc("publish_failures", "", nil, nil),

		// State
		CampaignsCreated:   prometheus.NewDesc("campaigns_created", "", nil, nil),
		UnlinkedCampaigns:  prometheus.NewDesc("unlinked_campaigns", "", nil, nil),
		FundingsConfirmed:  prometheus.NewDesc("fundings_confirmed", "", nil, nil),
		ClaimsConfirmed:    prometheus.NewDesc("claims_confirmed", "", nil, nil),
		CallOffsConfirmed:  prometheus.NewDesc("call_offs_confirmed", "", nil, nil),
		SweeperRowsHealed:  prometheus.NewDesc("sweeper_rows_healed", "", nil, nil),
		LastSweepTimestamp: prometheus.NewDesc("last_sweep_timestamp", "", nil, nil),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	// Run
	ch <- self.UpForSeconds
	ch <- self.NumWatchdogRestarts

	// Errors
	ch <- self.CreateFlowFailures
	ch <- self.FundFlowFailures
	ch <- self.ClaimFlowFailures
	ch <- self.CallOffFlowFailures
	ch <- self.StorePatchFailures
	ch <- self.ChainReadFailures
	ch <- self.SweeperFailures
	ch <- self.PublishFailures

	// State
	ch <- self.CampaignsCreated
	ch <- self.UnlinkedCampaigns
	ch <- self.FundingsConfirmed
	ch <- self.ClaimsConfirmed
	ch <- self.CallOffsConfirmed
	ch <- self.SweeperRowsHealed
	ch <- self.LastSweepTimestamp
}

// Collect implements the required collect function for all prometheus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	// Run
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.UpForSeconds.Load()))
	ch <- prometheus.MustNewConstMetric(self.NumWatchdogRestarts, prometheus.CounterValue, float64(self.monitor.Report.Run.Errors.NumWatchdogRestarts.Load()))

	// Errors
	ch <- prometheus.MustNewConstMetric(self.CreateFlowFailures, prometheus.CounterValue, float64(self.monitor.Report.Mirror.Errors.CreateFlowFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.FundFlowFailures, prometheus.CounterValue, float64(self.monitor.Report.Mirror.Errors.FundFlowFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.ClaimFlowFailures, prometheus.CounterValue, float64(self.monitor.Report.Mirror.Errors.ClaimFlowFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.CallOffFlowFailures, prometheus.CounterValue, float64(self.monitor.Report.Mirror.Errors.CallOffFlowFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.StorePatchFailures, prometheus.CounterValue, float64(self.monitor.Report.Mirror.Errors.StorePatchFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.ChainReadFailures, prometheus.CounterValue, float64(self.monitor.Report.Mirror.Errors.ChainReadFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.SweeperFailures, prometheus.CounterValue, float64(self.monitor.Report.Mirror.Errors.SweeperFailures.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublishFailures, prometheus.CounterValue, float64(self.monitor.Report.Mirror.Errors.PublishFailures.Load()))

	// State
	ch <- prometheus.MustNewConstMetric(self.CampaignsCreated, prometheus.GaugeValue, float64(self.monitor.Report.Mirror.State.CampaignsCreated.Load()))
	ch <- prometheus.MustNewConstMetric(self.UnlinkedCampaigns, prometheus.GaugeValue, float64(self.monitor.Report.Mirror.State.UnlinkedCampaigns.Load()))
	ch <- prometheus.MustNewConstMetric(self.FundingsConfirmed, prometheus.GaugeValue, float64(self.monitor.Report.Mirror.State.FundingsConfirmed.Load()))
	ch <- prometheus.MustNewConstMetric(self.ClaimsConfirmed, prometheus.GaugeValue, float64(self.monitor.Report.Mirror.State.ClaimsConfirmed.Load()))
	ch <- prometheus.MustNewConstMetric(self.CallOffsConfirmed, prometheus.GaugeValue, float64(self.monitor.Report.Mirror.State.CallOffsConfirmed.Load()))
	ch <- prometheus.MustNewConstMetric(self.SweeperRowsHealed, prometheus.GaugeValue, float64(self.monitor.Report.Mirror.State.SweeperRowsHealed.Load()))
	ch <- prometheus.MustNewConstMetric(self.LastSweepTimestamp, prometheus.GaugeValue, float64(self.monitor.Report.Mirror.State.LastSweepTimestamp.Load()))
}
