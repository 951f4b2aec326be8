package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"pkt.systems/codefence/internal/fetch"
)

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

// multiInputReader concatenates its sources, opening each one lazily.
type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

// includeMatcher filters files found while walking a directory input. A
// pattern without a slash is matched against the base name, otherwise
// against the slash-separated path relative to the walked directory.
type includeMatcher struct {
	g        glob.Glob
	fullPath bool
}

func newIncludeMatcher(pattern string) (includeMatcher, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		pattern = "*"
	}
	fullPath := strings.Contains(pattern, "/")
	var (
		g   glob.Glob
		err error
	)
	if fullPath {
		g, err = glob.Compile(pattern, '/')
	} else {
		g, err = glob.Compile(pattern)
	}
	if err != nil {
		return includeMatcher{}, fmt.Errorf("include pattern %q: %w", pattern, err)
	}
	return includeMatcher{g: g, fullPath: fullPath}, nil
}

func (m includeMatcher) match(rel string) bool {
	if m.fullPath {
		return m.g.Match(rel)
	}
	return m.g.Match(path.Base(rel))
}

// expandDir lists the regular files under root in fsys accepted by include,
// in lexical order.
func expandDir(fsys fs.FS, root string, include includeMatcher) ([]string, error) {
	var paths []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel := p
		if root != "." {
			rel = strings.TrimPrefix(p, root+"/")
		}
		if include.match(rel) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func openInputs(args []string, include includeMatcher) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		srcs, err := makeInputSources(raw, include)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, srcs...)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSources(raw string, include includeMatcher) ([]inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return []inputSource{{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}}, nil
		case "file":
			p := u.Path
			if p == "" {
				p = u.Host
			}
			if unescaped, err := url.PathUnescape(p); err == nil {
				p = unescaped
			}
			return pathSources(p, include)
		}
	}
	return pathSources(raw, include)
}

func pathSources(raw string, include includeMatcher) ([]inputSource, error) {
	clean := normalizePath(raw)
	info, err := os.Stat(clean)
	if err != nil || !info.IsDir() {
		return []inputSource{fileSource(clean)}, nil
	}
	files, err := expandDir(os.DirFS(clean), ".", include)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", clean, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files in %s match the include pattern", clean)
	}
	sources := make([]inputSource, 0, len(files))
	for _, f := range files {
		sources = append(sources, fileSource(filepath.Join(clean, filepath.FromSlash(f))))
	}
	return sources, nil
}

func fileSource(p string) inputSource {
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(p)
	}}
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	body, err := fetch.Open(context.Background(), nil, raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", raw, err)
	}
	return body, body, nil
}

func openFile(p string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(p))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(p string) string {
	if strings.HasPrefix(p, "~/") || p == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if p == "~" {
				p = home
			} else {
				p = filepath.Join(home, p[2:])
			}
		}
	}
	abs, err := filepath.Abs(p)
	if err == nil {
		return abs
	}
	return p
}
