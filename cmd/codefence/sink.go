package main

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/muesli/reflow/ansi"
	"github.com/rodaine/table"
	"pkt.systems/codefence"
)

// ansiSink forwards output through a reflow ansi.Writer, which tracks the
// last SGR sequence so Close can reset colors left on by an unterminated
// span or block. ansi.Writer decodes runes per Write, so a rune split across
// writes is held back until it is complete.
type ansiSink struct {
	out  *bufio.Writer
	aw   *ansi.Writer
	tail []byte
}

func newANSISink(w io.Writer) *ansiSink {
	out := bufio.NewWriter(w)
	return &ansiSink{out: out, aw: &ansi.Writer{Forward: out}}
}

func (s *ansiSink) Write(p []byte) (int, error) {
	n := len(p)
	if len(s.tail) > 0 {
		joined := make([]byte, 0, len(s.tail)+len(p))
		joined = append(joined, s.tail...)
		p = append(joined, p...)
		s.tail = s.tail[:0]
	}
	cut := completeRunes(p)
	s.tail = append(s.tail, p[cut:]...)
	if cut > 0 {
		if _, err := s.aw.Write(p[:cut]); err != nil {
			return 0, err
		}
	}
	return n, s.out.Flush()
}

func (s *ansiSink) Close() error {
	if len(s.tail) > 0 {
		if _, err := s.aw.Write(s.tail); err != nil {
			return err
		}
		s.tail = s.tail[:0]
	}
	if s.aw.LastSequence() != "" {
		s.aw.ResetAnsi()
	}
	return s.out.Flush()
}

// completeRunes returns the length of the longest prefix of p that does not
// end inside a multi-byte rune.
func completeRunes(p []byte) int {
	for i := len(p) - 1; i >= 0 && i >= len(p)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(p[i]) {
			continue
		}
		if utf8.FullRune(p[i:]) {
			return len(p)
		}
		return i
	}
	return len(p)
}

func printMarkers(w io.Writer) {
	tbl := table.New("Name", "Inline", "Block")
	tbl.WithWriter(w)
	tbl.WithWidthFunc(ansi.PrintableRuneWidth)
	for _, name := range codefence.AvailableMarkers() {
		m, _ := codefence.MarkersByName(name)
		tbl.AddRow(name, m.InlineOpen+"code"+m.InlineClose, m.BlockOpen+"block"+m.BlockClose)
	}
	tbl.Print()
}
