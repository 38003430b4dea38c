package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/hctsai/roomcal/pkg/errors"
)

// maxAssetSize bounds the body of a fetched asset (64 MiB). Font files run
// tens of megabytes; anything larger is suspect.
const maxAssetSize = 64 << 20

// FetchBytes downloads url and returns the response body. Transport errors
// and 5xx responses are retried with backoff; 4xx responses fail
// immediately. The context bounds the total time across attempts.
func FetchBytes(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", url)
		}

		resp, err := client.Do(req)
		if err != nil {
			return &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode)}
		case resp.StatusCode != http.StatusOK:
			return errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxAssetSize+1))
		if err != nil {
			return &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)}
		}
		if len(body) > maxAssetSize {
			return errors.New(errors.ErrCodeNetwork, "fetch %s: body exceeds %d bytes", url, maxAssetSize)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s timed out", url)
		}
		return nil, err
	}
	return body, nil
}
