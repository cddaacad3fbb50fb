package monitor_mirror

import (
	"net/http"
	"time"

	"github.com/fundflare/mirror/src/utils/monitoring/report"
	"github.com/fundflare/mirror/src/utils/task"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report report.Report

	collector *Collector
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.Report = report.Report{
		Run:    &report.RunReport{},
		Mirror: &report.MirrorReport{},
	}

	self.Report.Run.State.StartTimestamp.Store(time.Now().Unix())

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.updateUptime)
	return
}

func (self *Monitor) GetReport() *report.Report {
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func (self *Monitor) OnGet(c *gin.Context) {
	c.JSON(http.StatusOK, &self.Report)
}

func (self *Monitor) updateUptime() (err error) {
	up := time.Now().Unix() - self.Report.Run.State.StartTimestamp.Load()
	self.Report.Run.State.UpForSeconds.Store(up)
	return
}
