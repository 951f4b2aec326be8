// Package codefence rewrites code spans and fenced code blocks in a stream of
// Markdown-like text into output markers, as the text arrives.
//
// Only two constructs are recognised: inline spans delimited by a single
// backtick and blocks delimited by three backticks. Everything else passes
// through byte for byte. Input may be split into chunks anywhere, including
// in the middle of a delimiter or a multi-byte rune; the concatenated output
// is the same for every split.
//
// Core properties:
//   - Incremental: Feed returns what is certain now and never waits for EOF
//   - Chunk-boundary independent output
//   - No errors: unterminated spans and blocks are left open, not rejected
//   - Pluggable marker vocabulary (HTML, ANSI, BBCode, plain)
//
// Example:
//
//	t := codefence.New()
//	fmt.Print(t.FeedString("use `go"))
//	fmt.Print(t.FeedString(" vet` often\n"))
//	// use <code>go vet</code> often
//
// Render, StreamSimulate and HTTPRender drive a Transducer from an io.Reader
// and write to an io.Writer; Writer adapts one to the io.Writer interface.
package codefence
