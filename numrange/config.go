package numrange

import (
	"go.uber.org/zap"

	"github.com/teenjuna/cand"
)

// Config holds the optional settings of a [Producer]. It is filled by [ConfigFunc]s passed to
// [New].
type Config struct {
	logger     *zap.Logger
	prometheus *cand.PrometheusConfig
}

// ConfigFunc modifies a [Config]. Setters panic on invalid values.
type ConfigFunc = func(c *Config)

// Logger sets the logger used to report creation and splitting of ranges.
func (c *Config) Logger(logger *zap.Logger) {
	if logger == nil {
		panic("logger can't be nil")
	}
	c.logger = logger
}

// Prometheus enables metrics. Passing nil disables them.
func (c *Config) Prometheus(prometheus *cand.PrometheusConfig) {
	c.prometheus = prometheus
}
