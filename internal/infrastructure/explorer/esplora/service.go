package esplora

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
	"github.com/tdex-network/tdex-faucet/pkg/httputil"
)

// Config holds the parameters of an esplora service.
// BaseAssetID is the asset of native-asset chains that pays network fees, ie.
// L-BTC for Liquid. Unspents of this asset are reported as base asset.
type Config struct {
	Endpoint       string
	Kind           domain.NetworkKind
	BaseAssetID    string
	RequestTimeout time.Duration
	RateLimit      int
}

func (c Config) validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("missing explorer endpoint")
	}
	switch c.Kind {
	case domain.NetworkSLP:
	case domain.NetworkLiquid:
		if c.BaseAssetID == "" {
			return fmt.Errorf("missing base asset")
		}
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedNetwork, c.Kind)
	}
	return nil
}

type esplora struct {
	apiURL      string
	kind        domain.NetworkKind
	baseAssetID string
	client      *httputil.Client
}

// NewService returns a new esplora service as a ports.Explorer interface.
func NewService(cfg Config) (ports.Explorer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &esplora{
		apiURL:      strings.TrimSuffix(cfg.Endpoint, "/"),
		kind:        cfg.Kind,
		baseAssetID: cfg.BaseAssetID,
		client: httputil.NewClient(
			fmt.Sprintf("%s-explorer", cfg.Kind), cfg.RequestTimeout, cfg.RateLimit,
		),
	}, nil
}

// Ping makes sure the explorer is reachable.
func (e *esplora) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/blocks/tip/height", e.apiURL)
	_, err := e.get(ctx, url)
	return err
}

func (e *esplora) get(ctx context.Context, url string) (string, error) {
	status, resp, err := e.client.NewHTTPRequest(ctx, "GET", url, "", nil)
	if err != nil {
		return "", upstreamError(err)
	}
	if status != http.StatusOK {
		return "", &statusError{status, resp}
	}
	return resp, nil
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf(
		"%s: status %d: %s", domain.ErrUpstreamUnavailable, e.status,
		strings.TrimSpace(e.body),
	)
}

func (e *statusError) Unwrap() error {
	return domain.ErrUpstreamUnavailable
}

func upstreamError(err error) error {
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, err)
}
