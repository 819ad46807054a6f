// Package remote loads flowchart documents over HTTP for read-only viewing.
//
// A [Fetcher] performs exactly one GET per call. There are no retries and no
// client-side timeout; callers cancel through the context. Every failure is
// reported as an ErrCodeNetwork error whose message points the user at the
// URL and the server's CORS policy, the usual culprits when a board shared
// from a browser cannot be opened.
//
// Usage:
//
//	f := remote.New(nil)
//	g, err := f.Load(ctx, "https://example.com/board.json")
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/forcechart/pkg/buildinfo"
	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/flow"
	"github.com/matzehuels/forcechart/pkg/graph"
	"github.com/matzehuels/forcechart/pkg/observability"
)

// Hint is appended to user-facing fetch errors.
const Hint = "Could not load or parse the remote JSON file. Please check the URL and CORS policy."

// Fetcher downloads documents.
type Fetcher struct {
	http    *http.Client
	headers map[string]string
}

// New creates a Fetcher using client, or a client without timeout if nil.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{
		http: client,
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": buildinfo.UserAgent(),
		},
	}
}

// Fetch GETs rawURL and returns the body of a 2xx response.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	u, _ := url.Parse(rawURL)
	hooks := observability.HTTP()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()
	resp, err := f.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, Hint)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrap(errors.ErrCodeNetwork,
			fmt.Errorf("HTTP error! status: %d", resp.StatusCode), Hint)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, Hint)
	}
	return data, nil
}

// Load fetches rawURL and decodes it as a flowchart document.
// Decode failures keep their ErrCodeInvalidDocument code.
func (f *Fetcher) Load(ctx context.Context, rawURL string) (*flow.Graph, error) {
	data, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return graph.Unmarshal(data)
}
