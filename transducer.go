package codefence

import (
	"bytes"

	"github.com/npillmayer/schuko/tracing"
)

const (
	backtick = '`'
	fenceLen = 3

	// Block buffers larger than this are dropped instead of kept for reuse
	// once their block closes.
	maxRetainedBlock = 64 * 1024
)

var fence = []byte("```")

// tracer traces with key 'codefence'.
func tracer() tracing.Trace {
	return tracing.Select("codefence")
}

// action tells the feed loop what to do with the byte a state just saw.
type action uint8

const (
	advance action = iota
	// retry re-processes the same byte under the state just entered.
	retry
)

// state is one variant of the control state. Each variant carries only the
// data it needs and is the only code that reads it.
type state interface {
	mode() Mode
	step(t *Transducer, c byte) action
}

type textState struct{}

type fenceState struct {
	ticks int
}

type inlineState struct{}

type blockState struct {
	body []byte
}

// Transducer rewrites inline code spans and fenced code blocks into
// markers, one chunk at a time. Delimiters may be split across chunks in any
// way; the concatenated output does not depend on how the input was split.
//
// A Transducer is not safe for concurrent use. Use one per stream, and do not
// copy it after first use.
type Transducer struct {
	markers Markers
	trace   tracing.Trace

	state state
	out   []byte

	text   textState
	fence  fenceState
	inline inlineState
	block  blockState
}

// New returns a Transducer in text mode with empty buffers.
func New(opts ...Option) *Transducer {
	t := &Transducer{}
	t.resetWithConfig(buildConfig(opts))
	return t
}

// reset discards all state, keeping markers and tracer.
func (t *Transducer) reset() {
	t.resetWithConfig(config{markers: t.markers, tracer: t.trace})
}

func (t *Transducer) resetWithConfig(cfg config) {
	t.markers = cfg.markers
	t.trace = cfg.tracer
	if t.trace == nil {
		t.trace = tracer()
	}
	t.fence.ticks = 0
	t.block.release()
	t.out = nil
	t.state = &t.text
}

// Mode reports the current control state.
func (t *Transducer) Mode() Mode {
	return t.state.mode()
}

// Markers returns the output vocabulary in use.
func (t *Transducer) Markers() Markers {
	return t.markers
}

// Buffered returns the number of input bytes held back: pending backticks
// while deciding on a delimiter, or the body of an open fenced block.
func (t *Transducer) Buffered() int {
	switch s := t.state.(type) {
	case *fenceState:
		return s.ticks
	case *blockState:
		return len(s.body)
	}
	return 0
}

// Feed consumes chunk and returns the output that is certain given all input
// seen so far. It never fails.
func (t *Transducer) Feed(chunk []byte) []byte {
	return t.AppendFeed(nil, chunk)
}

// FeedString is Feed for strings.
func (t *Transducer) FeedString(chunk string) string {
	return string(t.AppendFeed(nil, []byte(chunk)))
}

// AppendFeed is Feed appending its output to dst.
func (t *Transducer) AppendFeed(dst, chunk []byte) []byte {
	t.out = dst
	// Only the fence candidate asks for a retry, and every state it hands
	// over to advances, so each byte is stepped at most twice.
	for i := 0; i < len(chunk); {
		if t.state.step(t, chunk[i]) == advance {
			i++
		}
	}
	dst = t.out
	t.out = nil
	return dst
}

func (t *Transducer) enter(next state) {
	t.trace.Debugf("codefence: %s -> %s", t.state.mode(), next.mode())
	t.state = next
}

func (t *Transducer) emit(s string) {
	t.out = append(t.out, s...)
}

func (*textState) mode() Mode { return ModeText }

func (*textState) step(t *Transducer, c byte) action {
	if c != backtick {
		t.out = append(t.out, c)
		return advance
	}
	t.fence.ticks = 1
	t.enter(&t.fence)
	return advance
}

func (*fenceState) mode() Mode { return ModeFenceCandidate }

func (s *fenceState) step(t *Transducer, c byte) action {
	if c == backtick {
		if s.ticks < fenceLen {
			s.ticks++
			return advance
		}
		s.ticks = 0
		t.emit("````")
		t.enter(&t.text)
		return advance
	}
	ticks := s.ticks
	s.ticks = 0
	switch ticks {
	case 1:
		t.emit(t.markers.InlineOpen)
		t.enter(&t.inline)
	case 2:
		t.emit("``")
		t.enter(&t.text)
	default:
		t.emit(t.markers.BlockOpen)
		t.block.body = t.block.body[:0]
		t.enter(&t.block)
	}
	return retry
}

func (*inlineState) mode() Mode { return ModeInlineCode }

func (*inlineState) step(t *Transducer, c byte) action {
	if c != backtick {
		t.out = append(t.out, c)
		return advance
	}
	t.emit(t.markers.InlineClose)
	t.enter(&t.text)
	return advance
}

func (*blockState) mode() Mode { return ModeBlockCode }

// The closing fence is found by suffix match on the whole body, so it is
// recognised however its three backticks were split across chunks.
func (s *blockState) step(t *Transducer, c byte) action {
	s.body = append(s.body, c)
	if !bytes.HasSuffix(s.body, fence) {
		return advance
	}
	t.out = append(t.out, s.body[:len(s.body)-len(fence)]...)
	t.emit(t.markers.BlockClose)
	s.release()
	t.enter(&t.text)
	return advance
}

func (s *blockState) release() {
	if cap(s.body) > maxRetainedBlock {
		s.body = nil
		return
	}
	s.body = s.body[:0]
}
