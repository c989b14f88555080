package cand

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/teenjuna/cand/internal/metrics"
)

// PrometheusConfig is a config of the Prometheus metrics provided by the producers.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig = metrics.Config

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
//
// The same config can be passed to any number of producers. Collectors are registered once and
// labelled by producer kind.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	return metrics.New(registerer, configFuncs...)
}
