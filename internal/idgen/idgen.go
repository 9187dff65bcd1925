// Package idgen issues product identifiers.
//
// Every Generator guarantees that no identifier is returned twice by the
// same generator value. Uniqueness across generator values is only
// guaranteed by the UUID strategy.
package idgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Prefix starts every product identifier.
const Prefix = "PROD"

// ErrExhausted is returned when a bounded id space has no free values left.
var ErrExhausted = errors.New("id space exhausted")

// Generator returns a fresh product identifier on each call.
type Generator interface {
	Next() (string, error)
}

// New returns the generator for kind: "sequential", "random" or "uuid".
func New(kind string) (Generator, error) {
	switch kind {
	case "", "sequential":
		return &Sequencer{}, nil
	case "random":
		return NewRandom(nil), nil
	case "uuid":
		return UUID{}, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", kind)
	}
}

// Sequencer provides monotonically increasing identifiers PROD0001, PROD0002, ...
type Sequencer struct{ n atomic.Uint64 }

// Next returns the next sequential identifier.
func (s *Sequencer) Next() (string, error) {
	return fmt.Sprintf("%s%04d", Prefix, s.n.Add(1)), nil
}

const (
	randomMin = 1000
	randomMax = 9999
)

// Random draws identifiers PROD1000..PROD9999 at random, retrying on
// collision with anything it has issued before.
type Random struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	issued map[int]struct{}

	// MaxAttempts bounds the random draws per call before falling back to a
	// linear scan for a free value.
	MaxAttempts int
}

// NewRandom builds a Random generator. A nil source uses a randomly seeded one.
func NewRandom(src rand.Source) *Random {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Random{rnd: rand.New(src), issued: make(map[int]struct{}), MaxAttempts: 32}
}

// Next returns an identifier not previously issued by r.
func (r *Random) Next() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := randomMax - randomMin + 1
	if len(r.issued) >= span {
		return "", ErrExhausted
	}
	for i := 0; i < r.MaxAttempts; i++ {
		n := randomMin + r.rnd.IntN(span)
		if _, dup := r.issued[n]; !dup {
			return r.take(n), nil
		}
	}
	// dense space: scan from a random offset
	start := r.rnd.IntN(span)
	for i := 0; i < span; i++ {
		n := randomMin + (start+i)%span
		if _, dup := r.issued[n]; !dup {
			return r.take(n), nil
		}
	}
	return "", ErrExhausted
}

func (r *Random) take(n int) string {
	r.issued[n] = struct{}{}
	return fmt.Sprintf("%s%d", Prefix, n)
}

// UUID issues PROD-<uuid v4> identifiers, unique without coordination.
type UUID struct{}

// Next returns a new random UUID based identifier.
func (UUID) Next() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return Prefix + "-" + id.String(), nil
}
