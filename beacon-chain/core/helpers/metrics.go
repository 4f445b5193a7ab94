package helpers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var committeeComputations = promauto.NewCounter(prometheus.CounterOpts{
	Name: "beacon_committee_computations_total",
	Help: "Count the number of beacon committees computed, cached shuffling or not",
})
