// Package fetch opens remote documents for streaming.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnsupportedScheme is returned for URLs that are not http or https.
var ErrUnsupportedScheme = errors.New("unsupported scheme")

// Open issues a GET for rawURL and returns the response body once the server
// has answered with a 2xx status. A nil client means http.DefaultClient. The
// caller closes the body.
func Open(ctx context.Context, client *http.Client, rawURL string) (io.ReadCloser, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if s := req.URL.Scheme; s != "http" && s != "https" {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedScheme, s)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("status %s", resp.Status)
	}
	return resp.Body, nil
}
