package header

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricParse = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfc5322_header_parse_total",
			Help: "Headers parsed. Result values: ok, notheader, large.",
		},
		[]string{
			"result",
		},
	)
	metricField = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfc5322_header_field_total",
			Help: "Fields found in parsed headers, by kind: standard, extension, unsafe, skip, trace, resent.",
		},
		[]string{
			"kind",
		},
	)
)
