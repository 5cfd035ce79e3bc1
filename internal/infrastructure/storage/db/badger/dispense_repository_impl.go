package dbbadger

import (
	"context"
	"errors"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type dispenseRepositoryImpl struct {
	store *badgerhold.Store
}

// NewDispenseRepositoryImpl initialize a badger implementation of the
// domain.DispenseRepository
func NewDispenseRepositoryImpl(
	store *badgerhold.Store,
) domain.DispenseRepository {
	return dispenseRepositoryImpl{store}
}

func (d dispenseRepositoryImpl) AddDispense(
	_ context.Context, dispense domain.Dispense,
) error {
	if err := d.store.Insert(dispense.ID, &dispense); err != nil {
		if err != badgerhold.ErrKeyExists {
			return err
		}
	}
	return nil
}

func (d dispenseRepositoryImpl) GetDispense(
	_ context.Context, id string,
) (*domain.Dispense, error) {
	var dispense domain.Dispense
	if err := d.store.Get(id, &dispense); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrDispenseNotFound
		}
		return nil, err
	}
	return &dispense, nil
}

func (d dispenseRepositoryImpl) ListDispenses(
	_ context.Context, page domain.Page,
) ([]domain.Dispense, error) {
	query := &badgerhold.Query{}
	return d.findDispenses(
		query.SortBy("Timestamp").Skip(page.Offset()).Limit(page.Size),
	)
}

func (d dispenseRepositoryImpl) ListDispensesForRecipient(
	_ context.Context, recipient string, page domain.Page,
) ([]domain.Dispense, error) {
	query := badgerhold.Where("Recipient").Eq(recipient)
	return d.findDispenses(
		query.SortBy("Timestamp").Skip(page.Offset()).Limit(page.Size),
	)
}

func (d dispenseRepositoryImpl) findDispenses(
	query *badgerhold.Query,
) ([]domain.Dispense, error) {
	var dispenses []domain.Dispense
	if err := d.store.Find(&dispenses, query); err != nil {
		return nil, err
	}
	return dispenses, nil
}
