package codefence

import (
	"fmt"
	"io"
	"time"
)

// StreamSimulateRequest configures StreamSimulate.
type StreamSimulateRequest struct {
	Reader    io.Reader
	Writer    io.Writer
	ChunkSize int
	Delay     time.Duration
	Options   []Option
	OnEOF     func(mode Mode, buffered int)
}

// StreamSimulate feeds Reader to a Writer in chunks of exactly ChunkSize
// bytes (the last may be shorter), sleeping Delay before each chunk. It
// mimics tokens arriving from a slow producer; chunks are cut without regard
// for delimiters or rune boundaries.
func StreamSimulate(req StreamSimulateRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("stream simulate: Reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("stream simulate: Writer is nil")
	}
	if req.ChunkSize <= 0 {
		return fmt.Errorf("stream simulate: ChunkSize must be > 0")
	}
	w := writerPool.Get().(*Writer)
	w.resetWithConfig(req.Writer, buildConfig(req.Options))
	var buf []byte
	if req.ChunkSize <= len(w.readBufArr) {
		buf = w.readBufArr[:req.ChunkSize]
	} else {
		buf = make([]byte, req.ChunkSize)
	}
	err := pump("stream simulate", w, req.Reader, buf, true, req.Delay)
	if err == nil && req.OnEOF != nil {
		req.OnEOF(w.Mode(), w.Buffered())
	}
	w.Reset(io.Discard)
	writerPool.Put(w)
	return err
}
