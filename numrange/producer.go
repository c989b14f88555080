// Package numrange provides a producer that enumerates an integer range as zero-padded decimal
// strings.
package numrange

import (
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/teenjuna/cand"
	"github.com/teenjuna/cand/internal/metrics"
)

// MaxPadding is the largest padding accepted by [New].
const MaxPadding = 4096

var (
	ErrNegativePadding = errors.New("padding can't be negative")
	ErrPaddingTooLarge = errors.New("padding can't be greater than MaxPadding")
	ErrNegativeBound   = errors.New("bounds can't be negative")
	ErrInvalidBounds   = errors.New("lower bound can't be greater than upper bound")
)

var _ cand.Producer = (*Producer)(nil)

// Producer yields every integer of [lower, upper) in ascending order, formatted in base 10 and
// left-padded with '0' to at least the padding width. Numbers wider than the padding are never
// truncated.
type Producer struct {
	cfg     *Config
	padding int
	next    int
	upper   int
	size    int
	metrics *metrics.Producer
}

// New creates a producer over [lower, upper). An empty range (lower == upper) is valid.
//
// Returns [ErrNegativePadding], [ErrPaddingTooLarge], [ErrNegativeBound] or [ErrInvalidBounds]
// if the arguments don't describe a range.
func New(padding, lower, upper int, configFuncs ...ConfigFunc) (*Producer, error) {
	if padding < 0 {
		return nil, ErrNegativePadding
	}
	if padding > MaxPadding {
		return nil, ErrPaddingTooLarge
	}
	if lower < 0 || upper < 0 {
		return nil, ErrNegativeBound
	}
	if lower > upper {
		return nil, ErrInvalidBounds
	}

	cfg := &Config{}
	cfg.Logger(zap.NewNop())
	for _, cf := range configFuncs {
		if cf != nil {
			cf(cfg)
		}
	}

	m := cfg.prometheus.For("range")
	m.Size(upper - lower)

	cfg.logger.Debug(
		"created range",
		zap.Int("padding", padding),
		zap.Int("lower", lower),
		zap.Int("upper", upper),
	)

	producer := Producer{
		cfg:     cfg,
		padding: padding,
		next:    lower,
		upper:   upper,
		size:    upper - lower,
		metrics: m,
	}

	return &producer, nil
}

func (p *Producer) Next() (cand.Candidate, bool) {
	if p.next >= p.upper {
		return nil, false
	}

	c := format(p.next, p.padding)
	p.next++
	p.metrics.Produced()

	return c, true
}

// Size returns upper - lower as given to [New].
func (p *Producer) Size() int {
	return p.size
}

// Split divides the not yet produced part of the range into at most n contiguous producers of
// nearly equal size, in ascending order. The parts share the padding and the configuration.
//
// The receiver is exhausted afterwards, its Size stays unchanged.
func (p *Producer) Split(n int) []*Producer {
	if n < 1 {
		panic("parts can't be < 1")
	}

	remaining := p.upper - p.next
	n = min(n, remaining)

	var (
		parts = make([]*Producer, 0, n)
		lower = p.next
	)
	for i := range n {
		size := remaining / n
		if i < remaining%n {
			size++
		}
		parts = append(parts, &Producer{
			cfg:     p.cfg,
			padding: p.padding,
			next:    lower,
			upper:   lower + size,
			size:    size,
			metrics: p.metrics,
		})
		lower += size
	}

	p.cfg.logger.Debug("split range", zap.Int("parts", len(parts)), zap.Int("remaining", remaining))
	p.next = p.upper

	return parts
}

// Width returns the number of decimal digits of a non-negative n.
func Width(n int) int {
	width := 1
	for n >= 10 {
		n /= 10
		width++
	}
	return width
}

func format(n, padding int) []byte {
	var (
		digits = Width(n)
		zeros  = max(padding-digits, 0)
		buf    = make([]byte, zeros, zeros+digits)
	)
	for i := range buf {
		buf[i] = '0'
	}
	return strconv.AppendInt(buf, int64(n), 10)
}
