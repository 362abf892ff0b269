package download

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/replicate/modelget/pkg/client"
	"github.com/replicate/modelget/pkg/logging"
)

// StreamMode fetches a file with a single GET and hands the body to the caller as it
// arrives. Nothing is buffered in memory and nothing is resumed.
type StreamMode struct {
	Client  *http.Client
	MaxSize int64
}

var _ Strategy = &StreamMode{}

func GetStreamMode(opts Options) *StreamMode {
	return &StreamMode{
		Client:  client.NewHTTPClient(opts.Client),
		MaxSize: opts.MaxSize,
	}
}

func (m *StreamMode) Fetch(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	logger := logging.GetLogger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, -1, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, -1, fmt.Errorf("error executing request for %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, -1, fmt.Errorf("%w: %s", ErrUnexpectedHTTPStatus(resp.StatusCode), url)
	}
	if trueURL := resp.Request.URL.String(); trueURL != url {
		logger.Debug().Str("url", url).Str("redirect_url", trueURL).Msg("Redirect")
	}

	fileSize := resp.ContentLength
	if m.MaxSize > 0 && fileSize > m.MaxSize {
		resp.Body.Close()
		return nil, fileSize, fmt.Errorf("%w: %s announced %s, limit is %s", ErrTooLarge, url,
			humanize.Bytes(uint64(fileSize)), humanize.Bytes(uint64(m.MaxSize)))
	}

	body := resp.Body
	if m.MaxSize > 0 {
		body = &limitedBody{ReadCloser: resp.Body, remaining: m.MaxSize}
	}
	return body, fileSize, nil
}

// limitedBody fails the transfer instead of silently truncating it when a server streams
// more than the configured limit without announcing a length.
type limitedBody struct {
	io.ReadCloser
	remaining int64
}

func (l *limitedBody) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		// probe for one more byte to tell an exact fit from an overflow
		var probe [1]byte
		n, err := l.ReadCloser.Read(probe[:])
		if n > 0 {
			return 0, ErrTooLarge
		}
		return 0, err
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.ReadCloser.Read(p)
	l.remaining -= int64(n)
	return n, err
}
