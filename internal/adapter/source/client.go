package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// maxBodyBytes caps the response size; the real document is about 100 KB.
const maxBodyBytes = 16 << 20

// Client loads the dataset over HTTP.
// It implements pipeline.Loader.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a dataset client. A zero timeout means the request is
// bounded only by its context.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Load fetches and decodes the dataset.
func (c *Client) Load(ctx context.Context) (domain.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Dataset{}, fmt.Errorf("dataset source error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read dataset: %w", err)
	}

	ds, err := domain.ParseDataset(body)
	if err != nil {
		return domain.Dataset{}, err
	}
	c.logger.Debug("dataset fetched", "url", c.url, "bytes", len(body), "records", len(ds.Records))
	return ds, nil
}
