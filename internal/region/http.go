package region

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// HTTPResolver asks an external postal-code service for the region key.
// The service answers GET <endpoint>?zip=12345 with {"region": "<key>"}.
type HTTPResolver struct {
	endpoint   string
	client     *http.Client
	maxRetries uint64
	logger     *zap.Logger
}

type lookupResponse struct {
	Region string `json:"region"`
}

// NewHTTPResolver creates a resolver with a per-request timeout and a
// bounded number of retries.
func NewHTTPResolver(endpoint string, timeout time.Duration, maxRetries int, logger *zap.Logger) *HTTPResolver {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &HTTPResolver{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: timeout},
		maxRetries: uint64(maxRetries),
		logger:     logger,
	}
}

func (r *HTTPResolver) Resolve(ctx context.Context, zipCode string) (string, error) {
	zip, err := NormalizePostalCode(zipCode)
	if err != nil {
		return "", err
	}

	var key string
	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.InitialInterval = 100 * time.Millisecond
	retryPolicy.MaxInterval = time.Second
	retryPolicy.MaxElapsedTime = 5 * time.Second

	err = backoff.RetryNotify(
		func() error {
			key, err = r.lookup(ctx, zip)
			return err
		},
		backoff.WithContext(backoff.WithMaxRetries(retryPolicy, r.maxRetries), ctx),
		func(err error, next time.Duration) {
			r.logger.Debug("region lookup failed, retrying",
				zap.String("zip", zip),
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		return "", err
	}
	return key, nil
}

func (r *HTTPResolver) lookup(ctx context.Context, zip string) (string, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("invalid region endpoint: %w", err))
	}
	q := u.Query()
	q.Set("zip", zip)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("region lookup: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", backoff.Permanent(fmt.Errorf("%w: %s", ErrRegionNotFound, zip))
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("region lookup: status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", backoff.Permanent(fmt.Errorf("region lookup: status %d", resp.StatusCode))
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", backoff.Permanent(fmt.Errorf("decode region lookup: %w", err))
	}
	if body.Region == "" {
		return "", backoff.Permanent(fmt.Errorf("%w: %s", ErrRegionNotFound, zip))
	}
	return body.Region, nil
}
