package monitoring

import (
	"github.com/fundflare/mirror/src/utils/monitoring/report"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Monitor stores and serves runtime counters
type Monitor interface {
	GetReport() *report.Report
	GetPrometheusCollector() prometheus.Collector
	OnGet(c *gin.Context)
}
