package line

import (
	"go.uber.org/zap"

	"github.com/teenjuna/cand"
)

const (
	defaultBufferSize = 64 * 1024
	minBufferSize     = 16
)

// Config holds the optional settings of a [Producer]. It is filled by [ConfigFunc]s passed to
// [New].
type Config struct {
	logger        *zap.Logger
	prometheus    *cand.PrometheusConfig
	bufferSize    int
	estimateAbove int64
}

// ConfigFunc modifies a [Config]. Setters panic on invalid values.
type ConfigFunc = func(c *Config)

// Logger sets the logger used to report swallowed read errors and pre-scan results.
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

// BufferSize sets the size of the buffered reader used for iteration.
func (c *Config) BufferSize(size int) {
	if size < minBufferSize {
		panic("buffer size can't be < 16")
	}
	c.bufferSize = size
}

// EstimateAbove makes files larger than the given number of bytes skip the exact newline
// count. Only the first bytes are scanned and the count is extrapolated to the file length.
// Zero disables estimation.
func (c *Config) EstimateAbove(bytes int64) {
	if bytes < 0 {
		panic("estimate threshold can't be < 0")
	}
	c.estimateAbove = bytes
}
