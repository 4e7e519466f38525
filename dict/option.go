package dict

import (
	"errors"
	"time"

	"github.com/maypok86/circ/internal/xmath"
	"github.com/maypok86/circ/internal/xruntime"
)

const (
	illegalMaximumSize = -1
	illegalTTL         = time.Duration(-1)
	illegalShardCount  = -1

	unlimitedMaximumSize = 0
	noTTL                = time.Duration(0)
)

var (
	ErrIllegalMaximumSize = errors.New("maximum size should be positive")
	ErrIllegalTTL         = errors.New("ttl should be positive")
	ErrIllegalShardCount  = errors.New("shard count should be positive")
)

// Option configures a Timed dictionary.
type Option func(*options)

type options struct {
	maximumSize int
	ttl         time.Duration
	shardCount  int
}

func defaultOptions() *options {
	return &options{
		maximumSize: unlimitedMaximumSize,
		ttl:         noTTL,
		shardCount:  int(xmath.RoundUpPowerOf2(xruntime.Parallelism())),
	}
}

func (o *options) validate() error {
	if o.maximumSize == illegalMaximumSize {
		return ErrIllegalMaximumSize
	}

	if o.ttl == illegalTTL {
		return ErrIllegalTTL
	}

	if o.shardCount == illegalShardCount {
		return ErrIllegalShardCount
	}

	return nil
}

// WithMaximumSize bounds the number of entries the dictionary may hold.
// When the bound is reached the oldest insertions are evicted first.
func WithMaximumSize(maximumSize int) Option {
	return func(o *options) {
		if maximumSize <= 0 {
			o.maximumSize = illegalMaximumSize
			return
		}

		o.maximumSize = maximumSize
	}
}

// WithTTL bounds the lifetime of every entry. Expiration is measured with a
// shared coarse one-second clock, so the effective ttl is rounded up to whole
// seconds.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl <= 0 {
			o.ttl = illegalTTL
			return
		}

		o.ttl = ttl
	}
}

// WithShardCount overrides the number of shards. It is rounded up to the
// next power of two. The default is derived from the available parallelism.
func WithShardCount(shardCount int) Option {
	return func(o *options) {
		if shardCount <= 0 {
			o.shardCount = illegalShardCount
			return
		}

		o.shardCount = int(xmath.RoundUpPowerOf2(uint32(shardCount)))
	}
}
