// Package deepseek is a minimal chat-completions client for the DeepSeek
// API. Callers are expected to treat every failure as recoverable and fall
// back to local behavior.
package deepseek

import (
	"context"
	"errors"
	"time"

	"resty.dev/v3"
)

const (
	baseURL  = "https://api.deepseek.com"
	endpoint = "/chat/completions"

	defaultModel = "deepseek-chat"
)

var (
	ErrNoAPIKey      = errors.New("no API key configured")
	ErrEmptyResponse = errors.New("provider returned no choices")
)

type ClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string

	TransportSettings   *resty.TransportSettings
	ResponseMiddlewares []resty.ResponseMiddleware
}

var DefaultConfig = &ClientConfig{
	TransportSettings: &resty.TransportSettings{
		DialerTimeout:         1 * time.Second,
		DialerKeepAlive:       1 * time.Second,
		IdleConnTimeout:       1 * time.Second,
		TLSHandshakeTimeout:   1 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
	},
}

type Client struct {
	client *resty.Client

	apiKey string
	model  string
}

func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig
	}

	settings := config.TransportSettings
	if settings == nil {
		settings = DefaultConfig.TransportSettings
	}

	client := resty.NewWithTransportSettings(settings)

	url := config.BaseURL
	if url == "" {
		url = baseURL
	}
	client.SetBaseURL(url)

	for _, m := range config.ResponseMiddlewares {
		client.AddResponseMiddleware(m)
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	return &Client{
		client: client,
		apiKey: config.APIKey,
		model:  model,
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Configured reports whether the client has credentials to talk to the
// provider at all.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}
