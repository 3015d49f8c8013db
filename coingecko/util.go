package coingecko

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// getJSON performs an HTTP GET request to addr and unmarshals the JSON
// response body into data. It returns the response status, if any.
func (c *Client) getJSON(ctx context.Context, addr string, data any) (status int, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(demoKeyHeader, c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	c.log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Int("status", resp.StatusCode).Msg("http")

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return resp.StatusCode, err
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		return resp.StatusCode, fmt.Errorf("cannot decode %v%v: %w", req.URL.Host, req.URL.Path, err)
	}
	return resp.StatusCode, nil
}

// diskCache implements a simple disk cache for HTTP responses. Entries older
// than ttl are ignored, and only successful responses are stored.
type diskCache struct {
	base http.RoundTripper
	dir  string // os.TempDir() if empty
	ttl  time.Duration
	log  *zerolog.Logger
	now  func() time.Time // time.Now if nil
}

// RoundTrip implements the http.RoundTripper interface. It checks for a fresh
// cached response on disk first. Otherwise it proceeds with the actual HTTP
// request and caches the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// the api key is part of the headers, not the key: a cached price is valid for any key.
	key := fmt.Sprintf("coingecko-%x", sha1.Sum([]byte(req.Method+" "+req.URL.String())))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		c.log.Debug().Str("path", req.URL.Path).Msg("cache hit")
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	// otherwise attempt to store it in cache
	if err := c.put(key, resp); err != nil {
		c.log.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

func (c *diskCache) file(key string) string {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

func (c *diskCache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// get retrieves a fresh cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := c.file(key)
	info, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	if c.clock().Sub(info.ModTime()) > c.ttl {
		return nil, fmt.Errorf("cache entry %s expired", key)
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache. The response body is replaced by an
// in memory copy so that the caller can still read it.
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(c.file(key), content, 0644)
}
