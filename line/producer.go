// Package line provides a producer that yields the lines of a file.
package line

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/teenjuna/cand"
	"github.com/teenjuna/cand/internal/metrics"
)

var _ cand.Producer = (*Producer)(nil)

// Producer yields every line of a file as one candidate, including its trailing newline if the
// file has one.
//
// The size is the number of newline bytes in the file. A last line without a trailing newline
// is still produced, so such a file yields Size()+1 candidates.
//
// Read errors during iteration are logged and end the sequence; they are never returned.
type Producer struct {
	cfg       *Config
	path      string
	file      *os.File
	reader    *bufio.Reader
	size      int
	estimated bool
	done      bool
	metrics   *metrics.Producer
}

// New scans the file to count its lines and opens a separate handle for iteration.
//
// Default configuration:
//   - Logger: zap.NewNop()
//   - Prometheus: disabled
//   - BufferSize: 64 KiB
//   - EstimateAbove: 0 (always count exactly)
//
// Returns an [*OpenError] if the file can't be opened or the scan fails.
func New(path string, configFuncs ...ConfigFunc) (*Producer, error) {
	cfg := &Config{}
	cfg.Logger(zap.NewNop())
	cfg.BufferSize(defaultBufferSize)
	for _, cf := range configFuncs {
		if cf != nil {
			cf(cfg)
		}
	}

	m := cfg.prometheus.For("line")

	start := time.Now()
	size, estimated, err := count(path, cfg.estimateAbove)
	if err != nil {
		return nil, err
	}
	m.Scanned(time.Since(start).Seconds())
	m.Size(size)

	cfg.logger.Debug(
		"counted lines",
		zap.String("path", path),
		zap.Int("size", size),
		zap.Bool("estimated", estimated),
	)

	file, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Op: "open", Path: path, Err: err}
	}

	producer := Producer{
		cfg:       cfg,
		path:      path,
		file:      file,
		reader:    bufio.NewReaderSize(file, cfg.bufferSize),
		size:      size,
		estimated: estimated,
		metrics:   m,
	}

	return &producer, nil
}

// Next returns the next line. The returned slice is freshly allocated on every call.
func (p *Producer) Next() (cand.Candidate, bool) {
	if p.done {
		return nil, false
	}

	line, err := p.reader.ReadBytes('\n')
	switch {
	case errors.Is(err, io.EOF):
		p.finish()
		if len(line) == 0 {
			return nil, false
		}
	case err != nil:
		p.cfg.logger.Warn("read line", zap.String("path", p.path), zap.Error(err))
		p.metrics.ReadError()
		p.finish()
		return nil, false
	}

	p.metrics.Produced()

	return line, true
}

// Size returns the number of newline bytes the file had when the producer was created.
func (p *Producer) Size() int {
	return p.size
}

// Estimated reports whether Size is an extrapolation rather than an exact count.
func (p *Producer) Estimated() bool {
	return p.estimated
}

// Close releases the file handle. The handle is also released as soon as the producer is
// exhausted. Calling Close more than once is a no-op.
func (p *Producer) Close() error {
	p.done = true
	if p.file == nil {
		return nil
	}

	err := p.file.Close()
	p.file = nil
	p.reader = nil
	if err != nil {
		return fmt.Errorf("close %s: %w", p.path, err)
	}

	return nil
}

func (p *Producer) finish() {
	if err := p.Close(); err != nil {
		p.cfg.logger.Debug("close exhausted producer", zap.Error(err))
	}
}
