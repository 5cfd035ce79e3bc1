package esplora

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

func (e *esplora) BroadcastTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	url := fmt.Sprintf("%s/tx", e.apiURL)
	headers := map[string]string{
		"Content-Type": "text/plain",
	}

	status, resp, err := e.client.NewHTTPRequest(ctx, "POST", url, txHex, headers)
	if err != nil {
		return "", upstreamError(err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(
			"%w: %s", domain.ErrBroadcastRejected, strings.TrimSpace(resp),
		)
	}

	return strings.TrimSpace(resp), nil
}
