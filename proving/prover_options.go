package proving

import (
	"errors"

	"go.uber.org/zap"

	"github.com/authds/authds/codec"
	"github.com/authds/authds/shared"
)

type option struct {
	codec  codec.Codec
	hasher shared.Hasher
	logger *zap.Logger
}

func defaultOpts() *option {
	return &option{
		codec:  codec.JSON,
		hasher: shared.DefaultHasher(),
		logger: zap.NewNop(),
	}
}

func (o *option) validate() error {
	if o.codec == nil {
		return errors.New("`codec` is required")
	}
	if o.hasher == nil {
		return errors.New("`hasher` is required")
	}
	if o.logger == nil {
		return errors.New("`logger` is required")
	}
	return nil
}

type OptionFunc func(*option) error

func applyOpts(opts ...OptionFunc) (*option, error) {
	options := defaultOpts()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	return options, nil
}

// WithCodec sets the canonical codec opened values are serialized with.
// Both sides of a session must use the same codec.
func WithCodec(c codec.Codec) OptionFunc {
	return func(o *option) error {
		o.codec = c
		return nil
	}
}

// WithHasher sets the hash function commitments are computed with.
func WithHasher(h shared.Hasher) OptionFunc {
	return func(o *option) error {
		o.hasher = h
		return nil
	}
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) OptionFunc {
	return func(o *option) error {
		o.logger = l
		return nil
	}
}
