package codefence

import (
	"sort"
	"strings"

	"pkt.systems/codefence/internal/palette"
)

// Markers is the output vocabulary written in place of delimiters. Open and
// close strings of the same kind are expected to pair up in the target
// format.
type Markers struct {
	Name        string
	InlineOpen  string
	InlineClose string
	BlockOpen   string
	BlockClose  string
}

func markersFromPalette(name string, p palette.Palette) Markers {
	return Markers{
		Name:        name,
		InlineOpen:  p.CodeInline,
		InlineClose: palette.Reset,
		BlockOpen:   p.CodeBlock,
		BlockClose:  palette.Reset,
	}
}

var builtinMarkers = map[string]Markers{
	"html": {
		Name:        "html",
		InlineOpen:  "<code>",
		InlineClose: "</code>",
		BlockOpen:   "<pre><code>",
		BlockClose:  "</code></pre>",
	},
	"bbcode": {
		Name:        "bbcode",
		InlineOpen:  "[icode]",
		InlineClose: "[/icode]",
		BlockOpen:   "[code]",
		BlockClose:  "[/code]",
	},
	"plain":        {Name: "plain"},
	"ansi":         markersFromPalette("ansi", palette.PaletteDefault),
	"ansi-bold":    markersFromPalette("ansi-bold", palette.PaletteBold),
	"ansi-nord":    markersFromPalette("ansi-nord", palette.PaletteNord),
	"ansi-gruvbox": markersFromPalette("ansi-gruvbox", palette.PaletteGruvbox),
	"ansi-dracula": markersFromPalette("ansi-dracula", palette.PaletteDracula),
}

// AvailableMarkers returns the names of the built-in vocabularies.
func AvailableMarkers() []string {
	names := make([]string, 0, len(builtinMarkers))
	for name := range builtinMarkers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarkersByName returns a built-in vocabulary. An empty name selects the
// default.
func MarkersByName(name string) (Markers, bool) {
	if name == "" {
		return DefaultMarkers(), true
	}
	m, ok := builtinMarkers[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// DefaultMarkers returns the HTML vocabulary.
func DefaultMarkers() Markers {
	return builtinMarkers["html"]
}
