package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_HeadAndGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "probe/1.0", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/style.css":
			w.Header().Set("Content-Type", "text/css")
			_, _ = w.Write([]byte("p { color: red }"))
		default:
			w.Header().Set("Content-Length", "1234")
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := NewClient(Config{UserAgent: "probe/1.0"})
	ctx := context.Background()

	t.Run("non-2xx is a response", func(t *testing.T) {
		resp, err := c.Head(ctx, srv.URL+"/missing", time.Second)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("content length", func(t *testing.T) {
		resp, err := c.Head(ctx, srv.URL+"/image.png", time.Second)
		require.NoError(t, err)
		n, ok := resp.ContentLength()
		assert.True(t, ok)
		assert.Equal(t, int64(1234), n)
	})

	t.Run("get reads body", func(t *testing.T) {
		resp, err := c.Get(ctx, srv.URL+"/style.css", time.Second)
		require.NoError(t, err)
		assert.Equal(t, "p { color: red }", string(resp.Body))
	})
}

func TestClient_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	_, err := NewClient(DefaultConfig()).Head(context.Background(), srv.URL, 50*time.Millisecond)
	require.Error(t, err)
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindTimeout, kind)
}

func TestClient_UntrustedCertificate(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	_, err := NewClient(DefaultConfig()).Head(context.Background(), srv.URL, time.Second)
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, KindSecurity, kind)

	resp, err := NewClient(Config{InsecureSkipVerify: true}).Head(context.Background(), srv.URL, time.Second)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(DefaultConfig()).Head(context.Background(), url, time.Second)
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, KindUnexpected, kind)
	// Reported verbatim as the broken-link reason.
	assert.Equal(t, "unexpected_error", string(kind))
}

func TestKindOf(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)

	wrapped := errors.Join(errors.New("ctx"), &TransportError{URL: "u", Kind: KindSecurity, Err: errors.New("x")})
	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindSecurity, kind)
}
