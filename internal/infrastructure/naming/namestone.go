// Package naming wraps the Namestone subdomain registration API behind the
// DomainRegistrar port.
package naming

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const defaultTimeout = 15 * time.Second

// Config captures the registrar settings: the fixed parent domain and
// operator address every binding is created under, plus endpoint and key.
type Config struct {
	APIURL  string
	APIKey  string
	Address string
	Domain  string
	Timeout time.Duration
}

// Client registers subdomain names against content hashes.
type Client struct {
	http    *resty.Client
	apiURL  string
	address string
	domain  string
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	http := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", cfg.APIKey)

	return &Client{
		http:    http,
		apiURL:  cfg.APIURL,
		address: cfg.Address,
		domain:  cfg.Domain,
		log:     log,
	}
}

type registerRequest struct {
	Domain      string `json:"domain"`
	Address     string `json:"address"`
	ContentHash string `json:"contenthash"`
	Name        string `json:"name"`
}

// Register binds name under the parent domain to ipfs://cid. It reports
// success as a boolean: any transport failure or non-2xx response is logged
// with the remote body and returned as false, never as an error, so callers
// can present a user-facing "could not register" message.
func (c *Client) Register(ctx context.Context, name, cid string) bool {
	req := registerRequest{
		Domain:      c.domain,
		Address:     c.address,
		ContentHash: "ipfs://" + cid,
		Name:        name,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.apiURL)
	if err != nil {
		c.log.Error().Err(err).Str("name", name).Msg("namestone unreachable")
		return false
	}
	if resp.IsError() {
		c.log.Error().
			Int("status", resp.StatusCode()).
			Str("body", string(resp.Body())).
			Str("name", name).
			Str("contenthash", req.ContentHash).
			Msg("namestone registration rejected")
		return false
	}

	c.log.Info().Str("name", name).Str("contenthash", req.ContentHash).Msg("subdomain bound")
	return true
}
