package streamer

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var sharedTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	TLSHandshakeTimeout:   10 * time.Second,
	ResponseHeaderTimeout: 15 * time.Second,
	IdleConnTimeout:       90 * time.Second,
}

func CloseIdleConnections() {
	sharedTransport.CloseIdleConnections()
}

// consistentTransport fills in browser-like default headers without
// mutating the caller's request.
type consistentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *consistentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" || req.Header.Get("Accept-Language") == "" || req.Header.Get("Accept") == "" {
		req = req.Clone(req.Context())
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "*/*")
	}
	return t.base.RoundTrip(req)
}

// newHTTPClient builds the cookie-jarred client the acquisition engine uses.
// The jar matters: Drive's confirmation handshake sets cookies on the first
// request that must ride along on the second. No overall client timeout is
// set, since body streaming of multi-GB files can legitimately run for a
// long time; per-phase deadlines come from request contexts.
func newHTTPClient() *http.Client {
	jar, _ := cookiejar.New(nil)
	var transport http.RoundTripper = &consistentTransport{
		base:      sharedTransport,
		userAgent: defaultUserAgent,
	}
	transport = newRetryTransport(transport, defaultRetryConfig)
	return &http.Client{
		Jar:       jar,
		Transport: transport,
	}
}
