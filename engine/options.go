package engine

import (
	"github.com/gogpu/mortier"
	"github.com/gogpu/mortier/writer"
)

// Option configures an Engine during creation.
type Option func(*options)

type options struct {
	limits  mortier.Limits
	format  string
	writers []writer.Option
}

func defaultOptions() options {
	return options{
		limits: mortier.DefaultLimits(),
		format: writer.DefaultFormat,
	}
}

// WithLimits sets the resource ceilings. Non-positive fields keep their
// defaults.
func WithLimits(l mortier.Limits) Option {
	return func(o *options) {
		o.limits = l.OrDefault()
	}
}

// WithFormat selects the output backend by its registered name.
func WithFormat(name string) Option {
	return func(o *options) {
		o.format = name
	}
}

// WithWriterOptions appends writer options applied to every document, for
// settings a Request does not carry such as line width or dot radius.
func WithWriterOptions(opts ...writer.Option) Option {
	return func(o *options) {
		o.writers = append(o.writers, opts...)
	}
}
