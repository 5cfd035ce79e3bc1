package avmrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
	"github.com/tdex-network/tdex-faucet/pkg/httputil"
)

const jsonRPCVersion = "2.0"

// Config holds the parameters of the node client. Endpoint is the url of the
// chain API, ie. http://localhost:9650/ext/bc/X.
type Config struct {
	Endpoint       string
	FeeAssetID     string
	RequestTimeout time.Duration
	RateLimit      int
}

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

type service struct {
	endpoint   string
	feeAssetID string
	client     *httputil.Client
	nextID     uint64
}

// NewService returns a new node client as a ports.Explorer interface.
func NewService(cfg Config) (ports.Explorer, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("missing node endpoint")
	}
	if cfg.FeeAssetID == "" {
		return nil, fmt.Errorf("missing fee asset")
	}
	return &service{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		feeAssetID: cfg.FeeAssetID,
		client: httputil.NewClient(
			fmt.Sprintf("%s-node", domain.NetworkAVM), cfg.RequestTimeout,
			cfg.RateLimit,
		),
	}, nil
}

// Ping makes sure the node is reachable by describing the fee asset.
func (s *service) Ping(ctx context.Context) error {
	_, err := s.DescribeAsset(ctx, s.feeAssetID)
	return err
}

// call returns a *rpcError if the node replies with an error object, any
// other failure wraps ErrUpstreamUnavailable.
func (s *service) call(
	ctx context.Context, method string, params, result interface{},
) error {
	body, err := json.Marshal(request{
		JSONRPC: jsonRPCVersion,
		ID:      atomic.AddUint64(&s.nextID, 1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	status, resp, err := s.client.NewHTTPRequest(
		ctx, "POST", s.endpoint, string(body), headers,
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", domain.ErrUpstreamUnavailable, method, err)
	}

	var r response
	if err := json.Unmarshal([]byte(resp), &r); err != nil {
		if status != http.StatusOK {
			return fmt.Errorf(
				"%w: %s: status %d: %s", domain.ErrUpstreamUnavailable, method,
				status, strings.TrimSpace(resp),
			)
		}
		return fmt.Errorf(
			"%w: %s: invalid response: %s", domain.ErrUpstreamUnavailable,
			method, err,
		)
	}
	if r.Error != nil {
		return r.Error
	}
	if status != http.StatusOK {
		return fmt.Errorf(
			"%w: %s: status %d", domain.ErrUpstreamUnavailable, method, status,
		)
	}
	if err := json.Unmarshal(r.Result, result); err != nil {
		return fmt.Errorf(
			"%w: %s: invalid result: %s", domain.ErrUpstreamUnavailable, method,
			err,
		)
	}
	return nil
}

func isRPCError(err error) (*rpcError, bool) {
	var rpcErr *rpcError
	ok := errors.As(err, &rpcErr)
	return rpcErr, ok
}
