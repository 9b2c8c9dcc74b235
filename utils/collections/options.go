package collections

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tuannh982/spreader-detector/utils/math"
)

const (
	VectorInitialCapacity  = 16
	HashMapInitialCapacity = 16
	GrowthFactor           = 2
	MaxLoadFactor          = 0.75
	MinLoadFactor          = 0.25
)

// NotFound is returned by index lookups that found nothing.
const NotFound = -1

type options struct {
	initialCapacity int
	growthFactor    int
	minLoadFactor   float64
	maxLoadFactor   float64
	allocator       Allocator
	log             *log.Entry
}

type Option func(*options)

func WithInitialCapacity(capacity int) Option {
	return func(o *options) {
		o.initialCapacity = capacity
	}
}

func WithGrowthFactor(factor int) Option {
	return func(o *options) {
		o.growthFactor = factor
	}
}

func WithLoadFactors(min, max float64) Option {
	return func(o *options) {
		o.minLoadFactor = min
		o.maxLoadFactor = max
	}
}

func WithAllocator(allocator Allocator) Option {
	return func(o *options) {
		o.allocator = allocator
	}
}

func WithLogger(logger *log.Entry) Option {
	return func(o *options) {
		o.log = logger
	}
}

var discardLogger = func() *log.Entry {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return log.NewEntry(logger)
}()

func newOptions(initialCapacity int, opts []Option) options {
	o := options{
		initialCapacity: initialCapacity,
		growthFactor:    GrowthFactor,
		minLoadFactor:   MinLoadFactor,
		maxLoadFactor:   MaxLoadFactor,
		allocator:       defaultAllocator,
		log:             discardLogger,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.allocator == nil {
		o.allocator = defaultAllocator
	}
	if o.log == nil {
		o.log = discardLogger
	}
	return o
}

// validate keeps the shrink threshold strictly below what a grow step can
// produce, so a single push/erase can never resize twice in a row.
func (o *options) validate(forMap bool) error {
	if o.initialCapacity <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "initial capacity %d", o.initialCapacity)
	}
	if o.growthFactor < 2 {
		return errors.Wrapf(ErrInvalidArgument, "growth factor %d", o.growthFactor)
	}
	if o.maxLoadFactor <= 0 || (!forMap && o.maxLoadFactor > 1) {
		return errors.Wrapf(ErrInvalidArgument, "max load factor %v", o.maxLoadFactor)
	}
	if o.minLoadFactor < 0 || o.minLoadFactor >= o.maxLoadFactor/float64(o.growthFactor) {
		return errors.Wrapf(ErrInvalidArgument, "min load factor %v with max %v and growth %d",
			o.minLoadFactor, o.maxLoadFactor, o.growthFactor)
	}
	if forMap && (!math.IsPowerOfTwo(o.initialCapacity) || !math.IsPowerOfTwo(o.growthFactor)) {
		return errors.Wrapf(ErrInvalidArgument, "capacity %d and growth factor %d must be powers of two",
			o.initialCapacity, o.growthFactor)
	}
	return nil
}

func loadFactor(size, capacity int) (float64, error) {
	if capacity == 0 {
		return 0, ErrZeroCapacity
	}
	return float64(size) / float64(capacity), nil
}

// shrunkCapacity returns the capacity a container of the given size should
// have after one removal step, or the capacity unchanged.
func (o *options) shrunkCapacity(size, capacity int) int {
	lf, err := loadFactor(size, capacity)
	if err != nil {
		return capacity
	}
	if lf < o.minLoadFactor && math.DivFloor(capacity, o.growthFactor) >= 1 {
		return math.DivFloor(capacity, o.growthFactor)
	}
	return capacity
}

func (o *options) grownCapacity(size, capacity int) int {
	lf, err := loadFactor(size, capacity)
	if err != nil {
		return capacity
	}
	if lf > o.maxLoadFactor {
		return capacity * o.growthFactor
	}
	return capacity
}
