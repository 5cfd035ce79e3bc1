package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// NetworkConfig holds what the faucet needs to dispense on a network.
// AssetID is the asset dispensed when a request doesn't name one.
type NetworkConfig struct {
	Chain     ports.Chain
	Explorer  ports.Explorer
	Secret    string
	AssetID   string
	FeePolicy domain.FeePolicy
}

// DispenseResult is the outcome of a successful dispense.
type DispenseResult struct {
	DispenseID string
	Network    domain.NetworkKind
	Recipient  string
	Asset      domain.AssetDescriptor
	Amount     uint64
	Fee        uint64
	TxID       string
}

// FormattedAmount returns the dispensed amount in the asset denomination.
func (r DispenseResult) FormattedAmount() string {
	return r.Asset.FormatAmount(r.Amount)
}

type FaucetService interface {
	// DispenseAssetTo sends one unit of the given asset (or of the network's
	// default asset if empty) to the recipient.
	DispenseAssetTo(
		ctx context.Context, network domain.NetworkKind,
		recipient, assetID string,
	) (*DispenseResult, error)
	// ValidateAddress returns whether addr is a valid address of the network.
	ValidateAddress(network domain.NetworkKind, addr string) bool
	// ListDispenses returns the page of past dispenses, optionally filtered by
	// recipient.
	ListDispenses(
		ctx context.Context, recipient string, page domain.Page,
	) ([]domain.Dispense, error)
	// Ping makes sure the upstream services of the network are reachable.
	Ping(ctx context.Context, network domain.NetworkKind) error
	// Networks returns the enabled networks.
	Networks() []domain.NetworkKind
	// WalletAddress returns the address holding the faucet funds.
	WalletAddress(network domain.NetworkKind) (string, error)
}

type wallet struct {
	network  domain.NetworkKind
	chain    ports.Chain
	explorer ports.Explorer
	key      ports.KeyPair
	assetID  string
	policy   domain.FeePolicy
}

type faucetService struct {
	repoManager ports.RepoManager
	wallets     map[domain.NetworkKind]*wallet
	metrics     *metrics
}

// NewFaucetService derives the wallet key of every network. Keys are only
// read afterwards, so the service is safe for concurrent use.
func NewFaucetService(
	repoManager ports.RepoManager,
	networks map[domain.NetworkKind]NetworkConfig,
	registerer prometheus.Registerer,
) (FaucetService, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}

	wallets := make(map[domain.NetworkKind]*wallet, len(networks))
	for network, cfg := range networks {
		if cfg.Chain == nil || cfg.Explorer == nil {
			return nil, fmt.Errorf("%s: missing chain or explorer", network)
		}
		if cfg.Chain.Kind() != network {
			return nil, fmt.Errorf(
				"%s: chain is for network %s", network, cfg.Chain.Kind(),
			)
		}
		key, err := cfg.Chain.DeriveKeyPair(cfg.Secret)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", network, err)
		}
		wallets[network] = &wallet{
			network:  network,
			chain:    cfg.Chain,
			explorer: cfg.Explorer,
			key:      key,
			assetID:  cfg.AssetID,
			policy:   cfg.FeePolicy,
		}
	}

	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}

	return &faucetService{repoManager, wallets, m}, nil
}

func (s *faucetService) DispenseAssetTo(
	ctx context.Context, network domain.NetworkKind, recipient, assetID string,
) (*DispenseResult, error) {
	start := time.Now()

	w, err := s.wallet(network)
	if err != nil {
		log.WithFields(log.Fields{
			"component": "faucet",
			"network":   network,
		}).WithError(err).Warn("dispense failed")
		return nil, err
	}
	if assetID == "" {
		assetID = w.assetID
	}

	logger := log.WithFields(log.Fields{
		"network":    network,
		"recipient":  recipient,
		"asset":      assetID,
		"request_id": uuid.New().String(),
	})

	result, state, err := s.dispense(ctx, w, recipient, assetID)
	s.metrics.observe(network, state, err, time.Since(start))
	if err != nil {
		logger.WithField("component", state.Component()).WithError(err).
			Warn("dispense failed")
		return nil, err
	}

	dispense := domain.NewDispense(
		network, recipient, result.Asset.AssetID, result.Amount, result.TxID,
	)
	result.DispenseID = dispense.ID
	// The transaction is already in the network at this point, failing to
	// record it must not fail the request.
	if err := s.repoManager.DispenseRepository().AddDispense(
		ctx, dispense,
	); err != nil {
		logger.WithField("component", "dispense-ledger").WithError(err).
			Error("failed to record dispense")
	}

	logger.WithField("txid", result.TxID).Infof(
		"dispensed %s %s", result.FormattedAmount(), result.Asset.Ticker(),
	)
	return result, nil
}

// dispense runs the pipeline and returns the state reached. Errors are
// returned unchanged so that callers can match them with errors.Is.
func (s *faucetService) dispense(
	ctx context.Context, w *wallet, recipient, assetID string,
) (*DispenseResult, DispenseState, error) {
	state := ValidatingAddress
	if !w.chain.ValidateAddress(recipient) {
		return nil, state, fmt.Errorf(
			"%w: %q is not a valid %s address", domain.ErrInvalidAddress,
			recipient, w.network,
		)
	}

	state = CollectingUTXOs
	unspents, asset, err := s.collect(ctx, w, assetID)
	if err != nil {
		return nil, state, err
	}
	// The requested asset may be an alias, unspents carry the resolved ID.
	feeOutputs, assetOutputs, err := domain.ClassifyUnspents(
		unspents, asset.AssetID,
	)
	if err != nil {
		return nil, state, err
	}

	state = SelectingInputs
	selection, err := domain.SelectInputs(feeOutputs, assetOutputs)
	if err != nil {
		return nil, state, err
	}

	state = ComputingFee
	plan, err := domain.PlanTransfer(
		w.network.Model(), *selection, *asset, w.policy,
	)
	if err != nil {
		return nil, state, err
	}

	state = Building
	tx, err := domain.BuildTransaction(*plan, domain.Parties{
		Sender:    w.key.Address(),
		Recipient: recipient,
	})
	if err != nil {
		return nil, state, err
	}

	state = Signing
	signedTx, err := w.chain.Sign(tx, w.key)
	if err != nil {
		return nil, state, err
	}
	if !signedTx.IsComplete() {
		return nil, state, fmt.Errorf(
			"%w: missing input signatures", domain.ErrSigning,
		)
	}

	state = ReadyToBroadcast
	txid, err := w.explorer.BroadcastTransaction(ctx, signedTx.Hex())
	if err != nil {
		return nil, state, err
	}
	state = Broadcast

	return &DispenseResult{
		Network:   w.network,
		Recipient: recipient,
		Asset:     *asset,
		Amount:    plan.SendAmount,
		Fee:       plan.Fee,
		TxID:      txid,
	}, state, nil
}

// collect fetches the wallet unspents and the asset description
// concurrently.
func (s *faucetService) collect(
	ctx context.Context, w *wallet, assetID string,
) ([]domain.UnspentOutput, *domain.AssetDescriptor, error) {
	var unspents []domain.UnspentOutput
	var asset *domain.AssetDescriptor

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		unspents, err = w.explorer.GetUnspents(gctx, w.key.Address())
		return err
	})
	g.Go(func() error {
		var err error
		asset, err = w.explorer.DescribeAsset(gctx, assetID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return unspents, asset, nil
}

func (s *faucetService) ValidateAddress(
	network domain.NetworkKind, addr string,
) bool {
	w, err := s.wallet(network)
	if err != nil {
		return false
	}
	return w.chain.ValidateAddress(addr)
}

func (s *faucetService) ListDispenses(
	ctx context.Context, recipient string, page domain.Page,
) ([]domain.Dispense, error) {
	repo := s.repoManager.DispenseRepository()
	if recipient != "" {
		return repo.ListDispensesForRecipient(ctx, recipient, page)
	}
	return repo.ListDispenses(ctx, page)
}

func (s *faucetService) Ping(
	ctx context.Context, network domain.NetworkKind,
) error {
	w, err := s.wallet(network)
	if err != nil {
		return err
	}
	return w.explorer.Ping(ctx)
}

func (s *faucetService) Networks() []domain.NetworkKind {
	networks := make([]domain.NetworkKind, 0, len(s.wallets))
	for network := range s.wallets {
		networks = append(networks, network)
	}
	sort.Slice(networks, func(i, j int) bool {
		return networks[i] < networks[j]
	})
	return networks
}

func (s *faucetService) WalletAddress(
	network domain.NetworkKind,
) (string, error) {
	w, err := s.wallet(network)
	if err != nil {
		return "", err
	}
	return w.key.Address(), nil
}

func (s *faucetService) wallet(network domain.NetworkKind) (*wallet, error) {
	w, ok := s.wallets[network]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedNetwork, network)
	}
	return w, nil
}
