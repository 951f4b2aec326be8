package codefence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

var writerPool = sync.Pool{
	New: func() any {
		return &Writer{}
	},
}

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []Option
	// OnEOF, if set, is called once the input is exhausted with the final
	// mode and the number of bytes still held back.
	OnEOF func(mode Mode, buffered int)
}

// Render reads Reader to EOF, transforming it as it arrives, and writes the
// result to Writer. Content of a block or span left open at EOF is handled
// exactly as by Transducer.Feed: it stays buffered.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	w := writerPool.Get().(*Writer)
	w.resetWithConfig(req.Writer, buildConfig(req.Options))
	reader := readerPool.Get().(*bufio.Reader)
	reader.Reset(req.Reader)
	err := pump("render", w, reader, w.readBufArr[:], false, 0)
	if err == nil && req.OnEOF != nil {
		req.OnEOF(w.Mode(), w.Buffered())
	}
	w.Reset(io.Discard)
	writerPool.Put(w)
	reader.Reset(nil)
	readerPool.Put(reader)
	return err
}

// pump reads chunks of up to len(buf) bytes into w. With exact set, every
// chunk but the last is exactly len(buf) bytes. delay is slept before each
// chunk.
func pump(op string, w *Writer, r io.Reader, buf []byte, exact bool, delay time.Duration) error {
	for {
		var n int
		var err error
		if exact {
			n, err = io.ReadFull(r, buf)
			if err == io.ErrUnexpectedEOF {
				err = io.EOF
			}
		} else {
			n, err = r.Read(buf)
		}
		if n > 0 {
			if delay > 0 {
				time.Sleep(delay)
			}
			if _, werr := w.Write(buf[:n]); werr != nil {
				if errors.Is(werr, ErrInvalidUTF8) || errors.Is(werr, ErrBinaryInput) {
					return fmt.Errorf("%s: %w", op, werr)
				}
				return fmt.Errorf("%s: write: %w", op, werr)
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("%s: read: %w", op, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
