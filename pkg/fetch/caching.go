package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/novamkr/web-vitals/pkg/cache"
)

// CachingFetcher collapses concurrent probes of the same URL and remembers
// responses in a cache backend. Transport errors are never cached.
type CachingFetcher struct {
	next    Fetcher
	backend cache.Backend
	ttl     time.Duration
	group   singleflight.Group
}

type cachedResponse struct {
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header"`
	Body       []byte      `json:"body,omitempty"`
}

// NewCachingFetcher wraps next. A nil backend only deduplicates in-flight
// requests.
func NewCachingFetcher(next Fetcher, backend cache.Backend, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{next: next, backend: backend, ttl: ttl}
}

func (f *CachingFetcher) Head(ctx context.Context, url string, timeout time.Duration) (*Response, error) {
	return f.load(ctx, http.MethodHead, url, func() (*Response, error) {
		return f.next.Head(ctx, url, timeout)
	})
}

func (f *CachingFetcher) Get(ctx context.Context, url string, timeout time.Duration) (*Response, error) {
	return f.load(ctx, http.MethodGet, url, func() (*Response, error) {
		return f.next.Get(ctx, url, timeout)
	})
}

func (f *CachingFetcher) load(ctx context.Context, method, url string, fetch func() (*Response, error)) (*Response, error) {
	key := method + " " + url
	logger := zerolog.Ctx(ctx)

	if f.backend != nil {
		data, ok, err := f.backend.Get(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("probe cache read failed")
		} else if ok {
			var cr cachedResponse
			if err := json.Unmarshal(data, &cr); err == nil {
				return &Response{StatusCode: cr.StatusCode, Header: cr.Header, Body: cr.Body}, nil
			}
		}
	}

	v, err, _ := f.group.Do(key, func() (any, error) {
		resp, err := fetch()
		if err != nil {
			return nil, err
		}
		if f.backend != nil {
			data, err := json.Marshal(cachedResponse{StatusCode: resp.StatusCode, Header: resp.Header, Body: resp.Body})
			if err == nil {
				if err := f.backend.Set(ctx, key, data, f.ttl); err != nil {
					logger.Warn().Err(err).Str("key", key).Msg("probe cache write failed")
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Response), nil
}
