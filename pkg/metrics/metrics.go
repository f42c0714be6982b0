// Package metrics collects and exposes Prometheus metrics for the mailbox
// subsystem.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector is implemented by the Prometheus collector and consumed by the
// mailbox usecases.
type Collector interface {
	RecordMessagesSynced(count int)
	RecordSyncFailure()
	RecordMessageSent()
	RecordSendFailure()
	RecordTokenRefresh()
	RecordTokenRefreshFailure()
}

type PrometheusCollector struct {
	messagesSynced  prometheus.Counter
	syncFail        prometheus.Counter
	messagesSent    prometheus.Counter
	sendFail        prometheus.Counter
	tokenRefresh    prometheus.Counter
	tokenRefreshErr prometheus.Counter
}

// NewCollector creates a collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		messagesSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edupath_mailbox_messages_synced_total",
			Help: "Total number of Gmail messages upserted into the local mirror.",
		}),
		syncFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edupath_mailbox_sync_fail_total",
			Help: "Total number of failed mailbox sync runs.",
		}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edupath_mailbox_messages_sent_total",
			Help: "Total number of messages sent on students' behalf.",
		}),
		sendFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edupath_mailbox_send_fail_total",
			Help: "Total number of failed sends.",
		}),
		tokenRefresh: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edupath_mailbox_token_refresh_total",
			Help: "Total number of OAuth access token refreshes.",
		}),
		tokenRefreshErr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edupath_mailbox_token_refresh_fail_total",
			Help: "Total number of failed OAuth token refreshes.",
		}),
	}

	reg.MustRegister(
		c.messagesSynced,
		c.syncFail,
		c.messagesSent,
		c.sendFail,
		c.tokenRefresh,
		c.tokenRefreshErr,
	)

	return c
}

func (c *PrometheusCollector) RecordMessagesSynced(count int) { c.messagesSynced.Add(float64(count)) }
func (c *PrometheusCollector) RecordSyncFailure()             { c.syncFail.Inc() }
func (c *PrometheusCollector) RecordMessageSent()             { c.messagesSent.Inc() }
func (c *PrometheusCollector) RecordSendFailure()             { c.sendFail.Inc() }
func (c *PrometheusCollector) RecordTokenRefresh()            { c.tokenRefresh.Inc() }
func (c *PrometheusCollector) RecordTokenRefreshFailure()     { c.tokenRefreshErr.Inc() }

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
