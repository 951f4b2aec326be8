package codefence

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"pkt.systems/codefence/internal/fetch"
)

// HTTPRenderRequest configures HTTPRender. A nil Client means
// http.DefaultClient.
type HTTPRenderRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Options []Option
	OnEOF   func(mode Mode, buffered int)
}

// HTTPRender transforms a remote document while its body is still arriving.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) error {
	switch {
	case req.URL == "":
		return fmt.Errorf("stream http: URL is required")
	case req.Writer == nil:
		return fmt.Errorf("stream http: Writer is nil")
	}
	body, err := fetch.Open(ctx, req.Client, req.URL)
	if err != nil {
		return fmt.Errorf("stream http: %w", err)
	}
	defer body.Close()
	return Render(RenderRequest{
		Reader:  body,
		Writer:  req.Writer,
		Options: req.Options,
		OnEOF:   req.OnEOF,
	})
}
