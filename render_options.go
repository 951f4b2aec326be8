package codefence

import "github.com/npillmayer/schuko/tracing"

// Option configures a Transducer, Writer or the stream helpers.
type Option func(*config)

type config struct {
	markers  Markers
	tracer   tracing.Trace
	validate bool
}

func buildConfig(opts []Option) config {
	cfg := config{markers: DefaultMarkers()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMarkers sets the output vocabulary.
func WithMarkers(m Markers) Option {
	return func(cfg *config) {
		cfg.markers = m
	}
}

// WithTracer routes mode-transition traces to tr instead of the tracer
// selected by the 'codefence' key.
func WithTracer(tr tracing.Trace) Option {
	return func(cfg *config) {
		cfg.tracer = tr
	}
}

// WithValidation makes writers reject input that is not valid UTF-8 or looks
// binary. The Transducer itself accepts any bytes.
func WithValidation(enabled bool) Option {
	return func(cfg *config) {
		cfg.validate = enabled
	}
}
