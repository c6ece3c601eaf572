package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "eatsexchange", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "eatsexchange", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "eatsexchange", Name: "auth_failures_total", Help: "Requests rejected by the auth guard, by reason."},
		[]string{"reason"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "eatsexchange", Name: "http_requests_total", Help: "Served requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	TokensIssued = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "eatsexchange", Name: "tokens_issued_total", Help: "Credential cookies issued by POST /jwt."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(AuthFailures)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(TokensIssued)
}
