package client

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/replicate/modelget/pkg/logging"
	"github.com/replicate/modelget/pkg/version"
)

const defaultConnectTimeout = 10 * time.Second

type Options struct {
	// ConnectTimeout bounds connection establishment only; transfers themselves are not
	// time limited. Zero means 10s.
	ConnectTimeout time.Duration
	// Transport replaces the default network transport, mostly for tests.
	Transport http.RoundTripper
}

type UserAgentTransport struct {
	Transport http.RoundTripper
}

func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", version.UserAgent())
	return t.Transport.RoundTrip(req)
}

// NewHTTPClient returns an http.Client for model downloads. Every request is attempted
// exactly once: fallback between sources is handled by the caller, not by retries.
func NewHTTPClient(opts Options) *http.Client {
	baseTransport := opts.Transport
	if baseTransport == nil {
		baseTransport = newBaseTransport(opts.ConnectTimeout)
	}

	retryClient := &retryablehttp.Client{
		HTTPClient: &http.Client{
			Transport:     &UserAgentTransport{Transport: baseTransport},
			CheckRedirect: checkRedirectFunc,
		},
		Logger:          nil,
		RetryMax:        0,
		CheckRetry:      retryablehttp.DefaultRetryPolicy,
		Backoff:         retryablehttp.DefaultBackoff,
		ErrorHandler:    retryablehttp.PassthroughErrorHandler,
		RequestLogHook:  requestLogHook,
		ResponseLogHook: responseLogHook,
	}
	return retryClient.StandardClient()
}

func newBaseTransport(connectTimeout time.Duration) *http.Transport {
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   connectTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

func requestLogHook(_ retryablehttp.Logger, req *http.Request, attempt int) {
	logger := logging.GetLogger()
	logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("attempt", attempt).
		Msg("Request")
}

func responseLogHook(_ retryablehttp.Logger, resp *http.Response) {
	logger := logging.GetLogger()
	logger.Debug().
		Str("url", resp.Request.URL.String()).
		Int("status", resp.StatusCode).
		Int64("content_length", resp.ContentLength).
		Msg("Response")
}

// checkRedirectFunc logs redirects (release assets and raw files on GitHub are always
// redirected to a CDN host) and keeps the default limit of 10 hops.
func checkRedirectFunc(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return errTooManyRedirects
	}
	logger := logging.GetLogger()
	status := 0
	if req.Response != nil {
		status = req.Response.StatusCode
	}
	logger.Debug().
		Str("redirect_url", req.URL.String()).
		Str("url", via[0].URL.String()).
		Int("status", status).
		Msg("Redirect")
	return nil
}
