package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "cand"
	subsystem = ""
)

// Config is a config of the Prometheus metrics provided by the producers.
//
// An instance can be created only by the [New] function. The zero value is invalid.
type Config struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// Options for the size gauge.
	Size prometheus.GaugeOpts
	// Options for the produced candidates counter.
	CandidatesProduced prometheus.CounterOpts
	// Options for the read errors counter.
	ReadErrors prometheus.CounterOpts
	// Options for the pre-scan duration histogram.
	ScanDuration prometheus.HistogramOpts

	registerer prometheus.Registerer
	once       sync.Once
	collectors *collectors
}

// New returns a [Config] with the provided registerer. If registerer is nil, metrics will not
// be registered, but they are still collected.
func New(registerer prometheus.Registerer, configFuncs ...func(c *Config)) *Config {
	c := Config{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Size: prometheus.GaugeOpts{
			Name: "size",
			Help: "Total number of candidates of the most recently created producer",
		},
		CandidatesProduced: prometheus.CounterOpts{
			Name: "candidates_produced",
			Help: "Number of candidates produced",
		},
		ReadErrors: prometheus.CounterOpts{
			Name: "read_errors",
			Help: "Number of read errors that terminated a producer early",
		},
		ScanDuration: prometheus.HistogramOpts{
			Name:    "scan_duration",
			Help:    "Duration of the newline pre-scan in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

// For returns the metrics of a single producer kind. Collectors are created and registered on
// the first call, so one Config can be shared by any number of producers.
//
// A nil Config returns nil, and all methods of a nil *Producer are no-ops.
func (c *Config) For(kind string) *Producer {
	if c == nil {
		return nil
	}

	c.once.Do(c.build)

	return &Producer{
		size:     c.collectors.size.WithLabelValues(kind),
		produced: c.collectors.produced.WithLabelValues(kind),
		errors:   c.collectors.errors.WithLabelValues(kind),
		scan:     c.collectors.scan.WithLabelValues(kind),
	}
}

func (c *Config) build() {
	for _, opts := range []*prometheus.Opts{
		(*prometheus.Opts)(&c.Size),
		(*prometheus.Opts)(&c.CandidatesProduced),
		(*prometheus.Opts)(&c.ReadErrors),
	} {
		if opts.Namespace == "" {
			opts.Namespace = c.Namespace
		}
		if opts.Subsystem == "" {
			opts.Subsystem = c.Subsystem
		}
	}
	if c.ScanDuration.Namespace == "" {
		c.ScanDuration.Namespace = c.Namespace
	}
	if c.ScanDuration.Subsystem == "" {
		c.ScanDuration.Subsystem = c.Subsystem
	}

	labels := []string{"producer"}
	c.collectors = &collectors{
		size:     prometheus.NewGaugeVec(c.Size, labels),
		produced: prometheus.NewCounterVec(c.CandidatesProduced, labels),
		errors:   prometheus.NewCounterVec(c.ReadErrors, labels),
		scan:     prometheus.NewHistogramVec(c.ScanDuration, labels),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			c.collectors.size,
			c.collectors.produced,
			c.collectors.errors,
			c.collectors.scan,
		)
	}
}

type collectors struct {
	size     *prometheus.GaugeVec
	produced *prometheus.CounterVec
	errors   *prometheus.CounterVec
	scan     *prometheus.HistogramVec
}

// Producer holds the collectors of one producer kind.
type Producer struct {
	size     prometheus.Gauge
	produced prometheus.Counter
	errors   prometheus.Counter
	scan     prometheus.Observer
}

// Size sets the size gauge.
func (p *Producer) Size(size int) {
	if p != nil {
		p.size.Set(float64(size))
	}
}

// Produced counts one produced candidate.
func (p *Producer) Produced() {
	if p != nil {
		p.produced.Inc()
	}
}

// ReadError counts one read error that ended a producer.
func (p *Producer) ReadError() {
	if p != nil {
		p.errors.Inc()
	}
}

// Scanned records the duration of a pre-scan.
func (p *Producer) Scanned(seconds float64) {
	if p != nil {
		p.scan.Observe(seconds)
	}
}
