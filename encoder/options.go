package encoder

import (
	"fmt"

	"github.com/arloliu/borsh/internal/options"
	"github.com/arloliu/borsh/schema"
	"go.uber.org/zap"
)

// DefaultMaxDepth is the nesting limit applied when WithMaxDepth is not given.
const DefaultMaxDepth = 64

// Option represents a functional option for configuring an Encoder.
// This is a type alias for the generic Option interface specialized for Encoder.
type Option = options.Option[*Encoder]

// WithLogger sets the logger used to report failed writes at debug level.
// Without it the encoder uses the package logger returned by Logger.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(e *Encoder) {
		e.logger = l
	})
}

// WithMaxDepth limits how deeply composite values may nest.
//
// Options, structs, enums and arrays each add one level. Writing a value
// nested deeper than n fails with errs.ErrMaxDepthExceeded.
func WithMaxDepth(n int) Option {
	return options.New(func(e *Encoder) error {
		if n <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", n)
		}
		e.maxDepth = n

		return nil
	})
}

// WithStrictUTF8 rejects strings that are not valid UTF-8 with errs.ErrInvalidUTF8.
func WithStrictUTF8() Option {
	return options.NoError(func(e *Encoder) {
		e.strictUTF8 = true
	})
}

// WithRejectNaN rejects NaN floats with errs.ErrNaN.
//
// NaN has many bit patterns, so two equal-looking values may encode
// differently. Enable this when encodings are hashed or compared.
func WithRejectNaN() Option {
	return options.NoError(func(e *Encoder) {
		e.rejectNaN = true
	})
}

// WithRegistry validates named structs against their declarations in reg
// before any of their bytes are written. A named struct missing from reg
// fails with errs.ErrUnknownType; anonymous structs are written unchecked.
func WithRegistry(reg *schema.Registry) Option {
	return options.NoError(func(e *Encoder) {
		e.registry = reg
	})
}
