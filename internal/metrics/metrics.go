package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

var (
	LinksCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shortlink_created_total",
		Help: "Short links created.",
	})
	Redirects = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shortlink_redirects_total",
		Help: "Successful short link redirects.",
	})
	ResolveRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shortlink_resolve_rejected_total",
		Help: "Resolve attempts rejected, by reason.",
	}, []string{"reason"})
	VisitSideEffectFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shortlink_visit_side_effect_failures_total",
		Help: "Visit insert or click increment failures after a redirect.",
	}, []string{"step"})
	QRCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qr_cache_requests_total",
		Help: "QR cache lookups by result.",
	}, []string{"result"})
	QRGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "qr_generated_total",
		Help: "QR images rendered on cache miss.",
	})
)

func init() {
	prometheus.MustRegister(LinksCreated, Redirects, ResolveRejected, VisitSideEffectFailures, QRCache, QRGenerated)
}

// Handler 暴露 Prometheus 指标
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
