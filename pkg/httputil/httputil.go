package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the timeout of the client returned by NewClient when
// none is given.
const DefaultTimeout = 30 * time.Second

// Client is a minimal HTTP client returning status and body of every
// response.
type Client struct {
	client *http.Client
}

// NewClient returns a new Client with the given timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{&http.Client{Timeout: timeout}}
}

// NewHTTPRequest builds and executes an http call
// @param method <string>: http method, either GET or POST
// @param url <string>: URL http to call
// @return <int>, <string>, error: the response status code and body
func (c *Client) NewHTTPRequest(
	ctx context.Context,
	method, url, bodyString string,
	header map[string]string,
) (int, string, error) {
	var body io.Reader
	switch method {
	case http.MethodGet:
	case http.MethodPost:
		body = strings.NewReader(bodyString)
	default:
		return 0, "", fmt.Errorf("verb not supported %s", method)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, "", err
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}

	rs, err := c.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse response body: %w", err)
	}

	return rs.StatusCode, string(bodyBytes), nil
}
