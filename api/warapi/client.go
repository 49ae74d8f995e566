package warapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"foxholewar/utils/requests"
)

// Client for fetching data from the Foxhole War API.
//
// The underlying HTTP client is safe for concurrent use, so only one instance is needed per shard.
// A Client holds no state between calls; every method sends exactly one request and there are no
// retries or caching of any kind. Comparing versions across fetches is left to the caller.
type Client struct {
	http    *http.Client
	timeout time.Duration
	shard   Shard
	baseURL string
}

type ClientOption func(c *Client)

// Sets the timeout for every request made by the client. Ignored if WithHTTPClient is also given.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Uses hc for all requests instead of creating a new client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Overrides the shard base URL, for example to point at a proxy or a mock server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func NewClient(shard Shard, opts ...ClientOption) *Client {
	c := &Client{
		shard:   shard,
		baseURL: shard.BaseURL(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = requests.NewHTTPClient(c.timeout)
	}

	return c
}

// A client for the default shard (Live-1).
func DefaultClient() *Client {
	return NewClient(DEFAULT_SHARD)
}

func (c *Client) Shard() Shard {
	return c.shard
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Retrieves information about the current war.
func (c *Client) WarData(ctx context.Context) (WarDataResponse, error) {
	return getResponse[WarDataResponse](ctx, c, ENDPOINT_WAR)
}

// Retrieves the names of all map hexes currently present, in the order the server returns them.
func (c *Client) MapNames(ctx context.Context) ([]string, error) {
	return getResponse[[]string](ctx, c, ENDPOINT_MAPS)
}

// Retrieves map data that will never change over the course of a war,
// such as text labels and resource node locations.
func (c *Client) MapDataStatic(ctx context.Context, mapName string) (MapDataResponse, error) {
	return getResponse[MapDataResponse](ctx, c, StaticMapEndpoint(mapName))
}

// Retrieves map data that could change over the course of a war, such as relic bases and
// town halls that can change team ownership. Private data like player built fortifications
// is omitted by the server.
func (c *Client) MapDataDynamic(ctx context.Context, mapName string) (MapDataResponse, error) {
	return getResponse[MapDataResponse](ctx, c, DynamicMapEndpoint(mapName))
}

func getResponse[T any](ctx context.Context, c *Client, endpoint Endpoint) (T, error) {
	return requests.JsonGet[T](ctx, c.http, c.baseURL+endpoint)
}
