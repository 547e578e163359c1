// Package capture asks an external renderer to (re)produce an artifact file and
// waits until it has done so.
//
// The renderer watches the process output for sentinel-prefixed lines. A delete
// line asks it to remove the file, a capture line asks it to write it again. The
// file is then polled over HTTP: 404 means absent, 2xx means present.
package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	// DefaultDeletePrefix is printed before the path to request deletion
	DefaultDeletePrefix = "DELETE:"
	// DefaultCapturePrefix is printed before the path to request a capture
	DefaultCapturePrefix = "SCREENSHOT:"
	// DefaultPollInterval is the delay between two HTTP probes
	DefaultPollInterval = 50 * time.Millisecond
)

// Capturer emits renderer sentinels and polls for the artifact
type Capturer struct {
	// BaseURL is prepended to the artifact path when polling
	BaseURL       string
	Out           io.Writer
	Client        *http.Client
	DeletePrefix  string
	CapturePrefix string
	PollInterval  time.Duration
}

// New creates a Capturer polling baseURL and printing to stdout
func New(baseURL string) *Capturer {
	return &Capturer{
		BaseURL:       baseURL,
		Out:           os.Stdout,
		Client:        http.DefaultClient,
		DeletePrefix:  DefaultDeletePrefix,
		CapturePrefix: DefaultCapturePrefix,
		PollInterval:  DefaultPollInterval,
	}
}

// Capture deletes then re-captures the artifact at path. After the deletion is
// confirmed it sleeps for delay to let rendering settle.
func (c *Capturer) Capture(ctx context.Context, path string, delay time.Duration) error {
	fmt.Fprintf(c.Out, "%s%s\n", c.DeletePrefix, path)
	if err := c.pollUntil(ctx, path, isAbsent); err != nil {
		return fmt.Errorf("waiting for %s to be deleted: %w", path, err)
	}

	if err := sleep(ctx, delay); err != nil {
		return err
	}

	fmt.Fprintf(c.Out, "%s%s\n", c.CapturePrefix, path)
	if err := c.pollUntil(ctx, path, isPresent); err != nil {
		return fmt.Errorf("waiting for %s to be captured: %w", path, err)
	}
	return nil
}

func isAbsent(status int) bool {
	return status == http.StatusNotFound
}

func isPresent(status int) bool {
	return status >= 200 && status < 300
}

// pollUntil probes the artifact until done accepts the response status
func (c *Capturer) pollUntil(ctx context.Context, path string, done func(status int) bool) error {
	url := c.BaseURL + path
	for {
		status, err := c.probe(ctx, url)
		if err != nil {
			return err
		}
		if done(status) {
			return nil
		}
		if err := sleep(ctx, c.PollInterval); err != nil {
			return err
		}
	}
}

func (c *Capturer) probe(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
