package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/codefence"
)

// gen-golden rewrites testdata/<name>.golden from testdata/<name>.md using
// the default (HTML) markers. Run it from the module root.
func main() {
	root := "testdata"
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no markdown files found under %s", root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		var out bytes.Buffer
		if err := codefence.Render(codefence.RenderRequest{
			Reader: bytes.NewReader(src),
			Writer: &out,
		}); err != nil {
			fatalf("render %s: %v", path, err)
		}
		golden := strings.TrimSuffix(path, ".md") + ".golden"
		if err := os.WriteFile(golden, out.Bytes(), 0o644); err != nil {
			fatalf("write %s: %v", golden, err)
		}
		fmt.Println(golden)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
