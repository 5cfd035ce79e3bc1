package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-faucet/pkg/circuitbreaker"
	"go.uber.org/ratelimit"
)

const defaultTimeout = 30 * time.Second

// ErrUnavailable is returned when the remote service can't be reached, replies
// with a server error or the circuit breaker is open.
var ErrUnavailable = errors.New("service unavailable")

// Client makes http requests to a single remote service. Requests go through
// a rate limiter and a circuit breaker shared by all callers.
type Client struct {
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

type response struct {
	status int
	body   string
}

// NewClient returns a client with the given request timeout and max number of
// requests per second. A non-positive rate means unlimited.
func NewClient(name string, timeout time.Duration, rate int) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limiter := ratelimit.NewUnlimited()
	if rate > 0 {
		limiter = ratelimit.New(rate)
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		cb:      circuitbreaker.NewCircuitBreaker(name),
		limiter: limiter,
	}
}

// NewHTTPRequest function builds http call
// @param method <string>: http method
// @param url <string>: URL http to call
// @return <int>, <string>, error
// Status and body are returned also along with ErrUnavailable in case of
// server errors.
func (c *Client) NewHTTPRequest(
	ctx context.Context, method, url, body string, header map[string]string,
) (int, string, error) {
	c.limiter.Take()

	iResp, err := c.cb.Execute(func() (interface{}, error) {
		resp, err := c.do(ctx, method, url, body, header)
		if err != nil {
			return nil, err
		}
		if resp.status >= http.StatusInternalServerError {
			return resp, fmt.Errorf("%w: status %d", ErrUnavailable, resp.status)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) ||
			errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, "", fmt.Errorf("%w: %s", ErrUnavailable, err)
		}
		if resp, ok := iResp.(*response); ok {
			return resp.status, resp.body, err
		}
		return 0, "", err
	}

	resp := iResp.(*response)
	return resp.status, resp.body, nil
}

func (c *Client) do(
	ctx context.Context, method, url, body string, header map[string]string,
) (*response, error) {
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, err
	}
	for key, value := range header {
		req.Header.Set(key, value)
	}

	rs, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer rs.Body.Close()

	bodyBytes, err := io.ReadAll(rs.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %s", ErrUnavailable, err)
	}

	return &response{rs.StatusCode, string(bodyBytes)}, nil
}
