package codefence

import (
	"io"
)

// Writer transforms everything written to it and forwards the result to an
// underlying io.Writer. Each Write is one chunk; chunk boundaries do not
// affect the forwarded bytes.
//
// Close does not close the underlying writer. It only reports a dangling
// partial rune when validation is enabled.
type Writer struct {
	w         io.Writer
	t         Transducer
	validate  bool
	validator validator
	out       []byte

	outArr     [4096]byte
	readBufArr [4096]byte
}

// NewWriter returns a Writer forwarding to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	s := &Writer{}
	s.resetWithConfig(w, buildConfig(opts))
	return s
}

// Reset discards all state and forwards to w from now on.
func (s *Writer) Reset(w io.Writer) {
	s.resetWithConfig(w, config{markers: s.t.markers, tracer: s.t.trace, validate: s.validate})
}

func (s *Writer) resetWithConfig(w io.Writer, cfg config) {
	s.w = w
	s.t.resetWithConfig(cfg)
	s.validate = cfg.validate
	s.validator.reset()
	s.out = s.outArr[:0]
}

// Write feeds p to the transducer and forwards whatever it emits. p is
// consumed even when forwarding fails.
func (s *Writer) Write(p []byte) (int, error) {
	if s.validate {
		if err := s.validator.write(p); err != nil {
			return 0, err
		}
	}
	s.out = s.t.AppendFeed(s.out[:0], p)
	if len(s.out) > 0 {
		if _, err := s.w.Write(s.out); err != nil {
			return len(p), err
		}
	}
	if cap(s.out) > maxRetainedBlock {
		s.out = s.outArr[:0]
	}
	return len(p), nil
}

// Close reports ErrInvalidUTF8 if validation is enabled and the stream ended
// inside a multi-byte rune.
func (s *Writer) Close() error {
	if s.validate {
		return s.validator.finish()
	}
	return nil
}

// Mode reports the control state of the underlying transducer.
func (s *Writer) Mode() Mode {
	return s.t.Mode()
}

// Buffered reports the bytes held back by the underlying transducer.
func (s *Writer) Buffered() int {
	return s.t.Buffered()
}
