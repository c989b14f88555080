package cand

import (
	"io"
	"iter"
)

// Candidate is a single produced value.
//
// Every candidate is a freshly allocated slice owned by the caller. Producers never keep a
// reference to a candidate after returning it, and callers must not mutate it if it is shared.
type Candidate []byte

// Producer is a stateful, single-consumer source of candidates.
//
// Implementations are not considered thread-safe. Use one producer per goroutine.
type Producer interface {
	// Next returns the next candidate. It returns false once the producer is exhausted and keeps
	// returning false on every subsequent call.
	Next() (Candidate, bool)
	// Size returns the total number of candidates the producer was created with. It doesn't
	// change as candidates are consumed, so it's a denominator for progress, not a remaining
	// count.
	Size() int
}

// All returns a sequence that pulls candidates from the producer until it is exhausted.
//
// Stopping the iteration early leaves the producer positioned after the last yielded
// candidate.
func All(p Producer) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for {
			c, ok := p.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// Close releases the resources held by the producer, if it holds any.
func Close(p Producer) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
