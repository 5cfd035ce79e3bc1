package application_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

// **** Explorer ****

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockExplorer) GetUnspents(
	ctx context.Context, addr string,
) ([]domain.UnspentOutput, error) {
	args := m.Called(ctx, addr)

	var res []domain.UnspentOutput
	if a := args.Get(0); a != nil {
		res = a.([]domain.UnspentOutput)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) DescribeAsset(
	ctx context.Context, assetID string,
) (*domain.AssetDescriptor, error) {
	args := m.Called(ctx, assetID)

	var res *domain.AssetDescriptor
	if a := args.Get(0); a != nil {
		res = a.(*domain.AssetDescriptor)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) BroadcastTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	args := m.Called(ctx, txHex)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

// **** DispenseRepository ****

type mockDispenseRepository struct {
	mock.Mock
}

func (m *mockDispenseRepository) AddDispense(
	ctx context.Context, dispense domain.Dispense,
) error {
	args := m.Called(ctx, dispense)
	return args.Error(0)
}

func (m *mockDispenseRepository) GetDispense(
	ctx context.Context, id string,
) (*domain.Dispense, error) {
	args := m.Called(ctx, id)

	var res *domain.Dispense
	if a := args.Get(0); a != nil {
		res = a.(*domain.Dispense)
	}
	return res, args.Error(1)
}

func (m *mockDispenseRepository) ListDispenses(
	ctx context.Context, page domain.Page,
) ([]domain.Dispense, error) {
	args := m.Called(ctx, page)

	var res []domain.Dispense
	if a := args.Get(0); a != nil {
		res = a.([]domain.Dispense)
	}
	return res, args.Error(1)
}

func (m *mockDispenseRepository) ListDispensesForRecipient(
	ctx context.Context, recipient string, page domain.Page,
) ([]domain.Dispense, error) {
	args := m.Called(ctx, recipient, page)

	var res []domain.Dispense
	if a := args.Get(0); a != nil {
		res = a.([]domain.Dispense)
	}
	return res, args.Error(1)
}

type mockRepoManager struct {
	repo *mockDispenseRepository
}

func (m mockRepoManager) DispenseRepository() domain.DispenseRepository {
	return m.repo
}

func (m mockRepoManager) Close() {}
