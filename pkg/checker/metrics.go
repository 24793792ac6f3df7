package checker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeUpdate  = "update_available"
	outcomeCurrent = "up_to_date"
	outcomeAhead   = "ahead_of_listed"
	outcomeError   = "error"
)

var (
	checksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fwcheck_checks_total",
			Help: "Total number of firmware checks by outcome",
		},
		[]string{"outcome"},
	)

	vendorErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fwcheck_vendor_errors_total",
			Help: "Total number of failed vendor API calls",
		},
	)
)
