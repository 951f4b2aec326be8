// Package palette holds the ANSI SGR sequences used by the terminal marker
// vocabularies.
package palette

import "strconv"

const (
	Reset = "\x1b[0m"
	Bold  = "\x1b[1m"
)

// Palette is the pair of styles applied to code.
type Palette struct {
	CodeInline string
	CodeBlock  string
}

// Fg returns a 24-bit foreground color sequence.
func Fg(r, g, b uint8) string {
	return sgr("38;2;", r, g, b)
}

// Bg returns a 24-bit background color sequence.
func Bg(r, g, b uint8) string {
	return sgr("48;2;", r, g, b)
}

func sgr(kind string, r, g, b uint8) string {
	buf := make([]byte, 0, 24)
	buf = append(buf, "\x1b["...)
	buf = append(buf, kind...)
	buf = strconv.AppendUint(buf, uint64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(g), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(b), 10)
	buf = append(buf, 'm')
	return string(buf)
}

var (
	PaletteDefault = Palette{
		CodeInline: "\x1b[36m",
		CodeBlock:  "\x1b[33m",
	}
	PaletteBold = Palette{
		CodeInline: Bold + PaletteDefault.CodeInline,
		CodeBlock:  Bold + PaletteDefault.CodeBlock,
	}
	PaletteNord = Palette{
		CodeInline: Fg(136, 192, 208),
		CodeBlock:  Fg(163, 190, 140) + Bg(46, 52, 64),
	}
	PaletteGruvbox = Palette{
		CodeInline: Fg(254, 128, 25),
		CodeBlock:  Fg(184, 187, 38) + Bg(40, 40, 40),
	}
	PaletteDracula = Palette{
		CodeInline: Fg(255, 121, 198),
		CodeBlock:  Fg(80, 250, 123) + Bg(40, 42, 54),
	}
)
