package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "HTTP requests by method and response status",
		},
		[]string{"method", "status"},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		RequestsTotal,
	)
}
