// Package shaders fetches the vertex and fragment sources handed to the native module.
package shaders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultVertexPath   = "main.vtx"
	DefaultFragmentPath = "main.frg"
)

// Source is a vertex and fragment shader pair.
type Source struct {
	Vertex   string
	Fragment string
}

// A Fetcher loads shader sources over HTTP, bypassing the browser cache.
type Fetcher struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
	// BaseURL is the URL the shader paths are resolved against, typically the page location.
	BaseURL *url.URL

	VertexPath   string
	FragmentPath string
}

// NewFetcher returns a Fetcher for the default shader paths relative to baseURL.
func NewFetcher(baseURL string) (*Fetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	return &Fetcher{
		BaseURL:      u,
		VertexPath:   DefaultVertexPath,
		FragmentPath: DefaultFragmentPath,
	}, nil
}

// Load fetches both sources. It fails unless both requests succeed.
func (f *Fetcher) Load(ctx context.Context) (Source, error) {
	var src Source
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := f.loadFile(ctx, f.VertexPath)
		if err != nil {
			return fmt.Errorf("loading vertex shader: %w", err)
		}
		src.Vertex = s
		return nil
	})
	g.Go(func() error {
		s, err := f.loadFile(ctx, f.FragmentPath)
		if err != nil {
			return fmt.Errorf("loading fragment shader: %w", err)
		}
		src.Fragment = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return Source{}, err
	}
	return src, nil
}

func (f *Fetcher) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	if f.BaseURL == nil {
		return ref.String(), nil
	}
	return f.BaseURL.ResolveReference(ref).String(), nil
}

func (f *Fetcher) loadFile(ctx context.Context, path string) (string, error) {
	u, err := f.resolve(path)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %v", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %v", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("request failed: %q", res.Status)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %v", err)
	}
	return string(data), nil
}
