package codefence

import (
	"sort"
	"strings"
	"testing"

	"pkt.systems/codefence/internal/palette"
)

func TestMarkersByName(t *testing.T) {
	expected := []string{
		"html",
		"bbcode",
		"plain",
		"ansi",
		"ansi-bold",
		"ansi-nord",
		"ansi-gruvbox",
		"ansi-dracula",
	}
	for _, name := range expected {
		m, ok := MarkersByName(name)
		if !ok {
			t.Fatalf("expected markers %q to be available", name)
		}
		if m.Name != name {
			t.Fatalf("markers %q report name %q", name, m.Name)
		}
	}

	available := AvailableMarkers()
	if !sort.StringsAreSorted(available) {
		t.Fatalf("available markers not sorted: %v", available)
	}
	if len(available) != len(expected) {
		t.Fatalf("expected %d vocabularies, got %v", len(expected), available)
	}
}

func TestMarkersByNameNormalizes(t *testing.T) {
	m, ok := MarkersByName("  HTML ")
	if !ok || m.Name != "html" {
		t.Fatalf("expected html markers, got %+v (ok=%v)", m, ok)
	}
	if m, ok := MarkersByName(""); !ok || m != DefaultMarkers() {
		t.Fatalf("empty name should select the default, got %+v", m)
	}
	if _, ok := MarkersByName("nope"); ok {
		t.Fatalf("unknown vocabulary should not resolve")
	}
}

func TestMarkersArePaired(t *testing.T) {
	for _, name := range AvailableMarkers() {
		m, _ := MarkersByName(name)
		if (m.InlineOpen == "") != (m.InlineClose == "") {
			t.Fatalf("%s: inline markers not paired: %+v", name, m)
		}
		if (m.BlockOpen == "") != (m.BlockClose == "") {
			t.Fatalf("%s: block markers not paired: %+v", name, m)
		}
		if strings.HasPrefix(name, "ansi") {
			if m.InlineClose != palette.Reset || m.BlockClose != palette.Reset {
				t.Fatalf("%s: ANSI markers must close with a reset", name)
			}
		}
	}
}

func TestPlainMarkersStripDelimiters(t *testing.T) {
	m, _ := MarkersByName("plain")
	got := New(WithMarkers(m)).FeedString("run `make` then\n```\nmake test\n```\n")
	if want := "run make then\n\nmake test\n\n"; got != want {
		t.Fatalf("want: %q\n got: %q", want, got)
	}
}

func TestPaletteMarkersUsePaletteSequences(t *testing.T) {
	m, _ := MarkersByName("ansi")
	if m.InlineOpen != palette.PaletteDefault.CodeInline || m.BlockOpen != palette.PaletteDefault.CodeBlock {
		t.Fatalf("ansi markers do not match the default palette: %+v", m)
	}
	bold, _ := MarkersByName("ansi-bold")
	if want := palette.Bold + palette.PaletteDefault.CodeInline; bold.InlineOpen != want {
		t.Fatalf("ansi-bold inline\nwant: %q\n got: %q", want, bold.InlineOpen)
	}
	if want := palette.Bold + palette.PaletteDefault.CodeBlock; bold.BlockOpen != want {
		t.Fatalf("ansi-bold block\nwant: %q\n got: %q", want, bold.BlockOpen)
	}
}
