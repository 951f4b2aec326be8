package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/liamg/memoryfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pkt.systems/codefence"
	"pkt.systems/codefence/internal/palette"
)

func mustMatcher(t *testing.T, pattern string) includeMatcher {
	t.Helper()
	m, err := newIncludeMatcher(pattern)
	require.NoError(t, err)
	return m
}

func TestOpenInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.md")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	reader, closer, err := openInputs([]string{path}, mustMatcher(t, defaultInclude))
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()
	buf, _ := io.ReadAll(reader)
	assert.Equal(t, "hello", string(buf))

	reader, closer, err = openInputs([]string{"file://" + path}, mustMatcher(t, defaultInclude))
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()
	buf, _ = io.ReadAll(reader)
	assert.Equal(t, "hello", string(buf))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("stream"))
	}))
	defer srv.Close()
	reader, closer, err = openInputs([]string{srv.URL}, mustMatcher(t, defaultInclude))
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()
	buf, _ = io.ReadAll(reader)
	assert.Equal(t, "stream", string(buf))
}

func TestOpenURLReportsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	reader, closer, err := openURL(srv.URL + "/missing.md")
	require.Error(t, err)
	assert.Nil(t, reader)
	assert.Nil(t, closer)
	assert.Contains(t, err.Error(), "404")
}

func TestOpenInputsConcatenatesFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(first, []byte("one "), 0o644))
	docs := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(docs, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "b.md"), []byte("two "), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "sub", "c.md"), []byte("three"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "skip.txt"), []byte("nope"), 0o644))

	reader, closer, err := openInputs([]string{first, docs}, mustMatcher(t, defaultInclude))
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()
	buf, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "one two three", string(buf))
}

func TestOpenInputsEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	_, _, err := openInputs([]string{dir}, mustMatcher(t, defaultInclude))
	assert.Error(t, err)
}

func TestExpandDirWithMemoryFS(t *testing.T) {
	memfs := memoryfs.New()
	require.NoError(t, memfs.MkdirAll("docs/guide", 0o700))
	require.NoError(t, memfs.MkdirAll("docs/.git", 0o700))
	require.NoError(t, memfs.WriteFile("docs/readme.md", []byte("r"), 0o644))
	require.NoError(t, memfs.WriteFile("docs/guide/intro.md", []byte("i"), 0o644))
	require.NoError(t, memfs.WriteFile("docs/guide/notes.txt", []byte("n"), 0o644))
	require.NoError(t, memfs.WriteFile("docs/.git/hidden.md", []byte("h"), 0o644))

	files, err := expandDir(memfs, "docs", mustMatcher(t, "*.md"))
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide/intro.md", "docs/readme.md"}, files)

	files, err = expandDir(memfs, "docs", mustMatcher(t, "guide/*"))
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/guide/intro.md", "docs/guide/notes.txt"}, files)

	files, err = expandDir(memfs, "docs", mustMatcher(t, "*.{md,txt}"))
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestIncludeMatcherRejectsBadPattern(t *testing.T) {
	_, err := newIncludeMatcher("[")
	assert.Error(t, err)
}

func TestResolveMarkers(t *testing.T) {
	m, err := resolveMarkers("bbcode", "ansi", "on", true)
	require.NoError(t, err)
	assert.Equal(t, "bbcode", m.Name)

	m, err = resolveMarkers("", "plain", "on", true)
	require.NoError(t, err)
	assert.Equal(t, "plain", m.Name)

	m, err = resolveMarkers("", "", "on", false)
	require.NoError(t, err)
	assert.Equal(t, "ansi", m.Name)

	m, err = resolveMarkers("", "", "off", true)
	require.NoError(t, err)
	assert.Equal(t, "html", m.Name)

	m, err = resolveMarkers("", "", "auto", false)
	require.NoError(t, err)
	assert.Equal(t, "html", m.Name, "auto never picks color when not writing to a terminal")

	_, err = resolveMarkers("nope", "", "auto", false)
	assert.Error(t, err)
	_, err = resolveMarkers("", "", "sometimes", false)
	assert.Error(t, err)
}

func TestResolveTraceLevel(t *testing.T) {
	for _, in := range []string{"Error", "info", "DEBUG", ""} {
		_, err := resolveTraceLevel(in)
		assert.NoError(t, err, in)
	}
	_, err := resolveTraceLevel("verbose")
	assert.Error(t, err)
}

func TestRunHTML(t *testing.T) {
	var out, warn bytes.Buffer
	err := run(runConfig{
		reader:  strings.NewReader("a `b` c\n```\nx\n```\n"),
		writer:  &out,
		markers: codefence.DefaultMarkers(),
		warn:    &warn,
	})
	require.NoError(t, err)
	assert.Equal(t, "a <code>b</code> c\n<pre><code>\nx\n</code></pre>\n", out.String())
	assert.Empty(t, warn.String())
}

func TestRunWarnsOnUnterminatedBlock(t *testing.T) {
	var out, warn bytes.Buffer
	err := run(runConfig{
		reader:    strings.NewReader("```go\nnever closed"),
		writer:    &out,
		markers:   codefence.DefaultMarkers(),
		simulate:  true,
		chunkSize: 2,
		warn:      &warn,
	})
	require.NoError(t, err)
	assert.Equal(t, "<pre><code>", out.String())
	assert.Contains(t, warn.String(), "block-code")
}

func TestRunANSIResetsDanglingColor(t *testing.T) {
	m, ok := codefence.MarkersByName("ansi")
	require.True(t, ok)
	var out bytes.Buffer
	err := run(runConfig{
		reader:    strings.NewReader("open `span → é"),
		writer:    &out,
		markers:   m,
		simulate:  true,
		chunkSize: 1,
	})
	require.NoError(t, err)
	want := "open " + m.InlineOpen + "span → é"
	assert.True(t, strings.HasPrefix(out.String(), want), "got %q", out.String())
	assert.True(t, strings.HasSuffix(out.String(), palette.Reset), "got %q", out.String())
}

func TestRunValidation(t *testing.T) {
	err := run(runConfig{
		reader:   bytes.NewReader([]byte{'x', 0x00}),
		writer:   io.Discard,
		markers:  codefence.DefaultMarkers(),
		validate: true,
	})
	assert.ErrorIs(t, err, codefence.ErrBinaryInput)
}

func TestCompleteRunes(t *testing.T) {
	euro := []byte("€")
	assert.Equal(t, 0, completeRunes(euro[:1]))
	assert.Equal(t, 1, completeRunes(append([]byte("a"), euro[:2]...)))
	assert.Equal(t, 4, completeRunes(append([]byte("a"), euro...)))
	assert.Equal(t, 3, completeRunes([]byte("abc")))
	assert.Equal(t, 0, completeRunes(nil))
}

func TestPrintMarkersListsAll(t *testing.T) {
	var out bytes.Buffer
	printMarkers(&out)
	for _, name := range codefence.AvailableMarkers() {
		assert.Contains(t, out.String(), name)
	}
	assert.Contains(t, out.String(), "<code>code</code>")
}
