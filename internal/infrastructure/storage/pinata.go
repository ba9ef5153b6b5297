// Package storage wraps the Pinata pinning API behind the ArtifactStore
// port. Calls are attempted once; retry policy, if any, belongs to callers.
package storage

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/siher/webpage-publisher/internal/api/metrics"
	"github.com/siher/webpage-publisher/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Config captures the settings for the Pinata client. All values are
// injected so tests can point the client at a fake server.
type Config struct {
	// UploadURL is the full pinFileToIPFS endpoint.
	UploadURL string
	// APIBaseURL is the API root used for unpinning.
	APIBaseURL string
	AuthToken  string
	// GatewayURL is the public gateway serving pinned content.
	GatewayURL string
	Timeout    time.Duration
}

// Client uploads and unpins artifacts on Pinata.
type Client struct {
	http       *resty.Client
	uploadURL  string
	apiBaseURL string
	gatewayURL string
	log        zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	http := resty.New().
		SetTimeout(timeout).
		SetAuthToken(cfg.AuthToken).
		SetHeader("Accept", "application/json")

	return &Client{
		http:       http,
		uploadURL:  cfg.UploadURL,
		apiBaseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		gatewayURL: strings.TrimRight(cfg.GatewayURL, "/"),
		log:        log,
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
	Error    string `json:"error,omitempty"`
}

// Put uploads the bytes as a pinned file and returns its CID.
func (c *Client) Put(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	var result pinResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", filename, contentType, bytes.NewReader(data)).
		SetResult(&result).
		Post(c.uploadURL)
	if err != nil {
		metrics.ArtifactUploadsTotal.WithLabelValues("put", "unreachable").Inc()
		c.log.Error().Err(err).Str("filename", filename).Msg("pinata upload unreachable")
		return "", &domain.StorageError{Op: "put", Err: err}
	}
	if resp.IsError() || result.IpfsHash == "" {
		metrics.ArtifactUploadsTotal.WithLabelValues("put", "rejected").Inc()
		c.log.Error().
			Int("status", resp.StatusCode()).
			Str("body", string(resp.Body())).
			Str("filename", filename).
			Msg("pinata upload rejected")
		return "", &domain.StorageError{Op: "put", StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	metrics.ArtifactUploadsTotal.WithLabelValues("put", "success").Inc()
	c.log.Debug().Str("cid", result.IpfsHash).Str("filename", filename).Msg("artifact pinned")
	return result.IpfsHash, nil
}

// Delete unpins a CID. A 404 means the pin is already gone and counts as
// success, keeping deletion idempotent for callers.
func (c *Client) Delete(ctx context.Context, cid string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(c.apiBaseURL + "/pinning/unpin/" + cid)
	if err != nil {
		metrics.ArtifactUploadsTotal.WithLabelValues("delete", "unreachable").Inc()
		return &domain.StorageError{Op: "delete", Err: err}
	}
	if resp.StatusCode() == 404 {
		metrics.ArtifactUploadsTotal.WithLabelValues("delete", "success").Inc()
		return nil
	}
	if resp.IsError() {
		metrics.ArtifactUploadsTotal.WithLabelValues("delete", "rejected").Inc()
		return &domain.StorageError{Op: "delete", StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	metrics.ArtifactUploadsTotal.WithLabelValues("delete", "success").Inc()
	return nil
}

// GatewayURL returns the public HTTP URL serving the CID.
func (c *Client) GatewayURL(cid string) string {
	return c.gatewayURL + "/ipfs/" + cid
}
