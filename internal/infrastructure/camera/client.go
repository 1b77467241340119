package camera

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/sent-robotics/robot-relay/internal/config"
	"github.com/sent-robotics/robot-relay/internal/domain"
)

// DefaultStreamContentType is used when the device omits a Content-Type on
// its stream response. MJPEG servers replace frames in-place.
const DefaultStreamContentType = "multipart/x-mixed-replace"

// Client talks to the robot's onboard HTTP server. Two endpoints, two
// clients: snapshots are bounded end to end, while the stream is bounded
// only up to the response headers. The transfer itself is unbounded in
// duration and ends with whichever side disconnects.
type Client struct {
	snapshotURL string
	streamURL   string
	snapshot    *http.Client
	stream      *http.Client
}

func NewClient(cfg *config.Config) *Client {
	dialer := &net.Dialer{Timeout: cfg.SnapshotTimeout}
	return &Client{
		snapshotURL: cfg.SnapshotURL,
		streamURL:   cfg.StreamURL,
		snapshot:    &http.Client{Timeout: cfg.SnapshotTimeout},
		stream: &http.Client{
			Transport: &http.Transport{
				DialContext:           dialer.DialContext,
				ResponseHeaderTimeout: cfg.SnapshotTimeout,
			},
		},
	}
}

// Snapshot fetches a single on-demand image. Non-200, empty body, timeout
// and network errors all come back as errors wrapping domain.ErrUpstream;
// a missing URL wraps domain.ErrNotConfigured.
func (c *Client) Snapshot(ctx context.Context) ([]byte, error) {
	if c.snapshotURL == "" {
		return nil, fmt.Errorf("SNAPSHOT_URL %w", domain.ErrNotConfigured)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.snapshotURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build snapshot request: %w", err)
	}
	resp, err := c.snapshot.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snapshot fetch: %w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot HTTP %d: %w", resp.StatusCode, domain.ErrUpstream)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("snapshot read: %w: %w", domain.ErrUpstream, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("snapshot empty body: %w", domain.ErrUpstream)
	}
	return body, nil
}

// OpenStream opens the live feed and hands the body to the caller, who owns
// closing it. The returned content type falls back to
// DefaultStreamContentType when the device does not send one.
func (c *Client) OpenStream(ctx context.Context) (io.ReadCloser, string, error) {
	if c.streamURL == "" {
		return nil, "", fmt.Errorf("STREAM_INTERNAL %w", domain.ErrNotConfigured)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.streamURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build stream request: %w", err)
	}
	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("stream connect: %w: %w", domain.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("stream HTTP %d: %w", resp.StatusCode, domain.ErrUpstream)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = DefaultStreamContentType
	}
	return resp.Body, contentType, nil
}
