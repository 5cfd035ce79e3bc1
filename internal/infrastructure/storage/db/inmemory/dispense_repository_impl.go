package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

type DispenseRepositoryImpl struct {
	locker    *sync.RWMutex
	dispenses map[string]domain.Dispense
	// ids keeps track of insertion order.
	ids []string
}

// NewDispenseRepositoryImpl returns a new empty DispenseRepositoryImpl
func NewDispenseRepositoryImpl() domain.DispenseRepository {
	return &DispenseRepositoryImpl{
		locker:    &sync.RWMutex{},
		dispenses: make(map[string]domain.Dispense),
	}
}

func (d *DispenseRepositoryImpl) AddDispense(
	_ context.Context, dispense domain.Dispense,
) error {
	d.locker.Lock()
	defer d.locker.Unlock()

	if _, ok := d.dispenses[dispense.ID]; ok {
		return nil
	}
	d.dispenses[dispense.ID] = dispense
	d.ids = append(d.ids, dispense.ID)
	return nil
}

func (d *DispenseRepositoryImpl) GetDispense(
	_ context.Context, id string,
) (*domain.Dispense, error) {
	d.locker.RLock()
	defer d.locker.RUnlock()

	dispense, ok := d.dispenses[id]
	if !ok {
		return nil, domain.ErrDispenseNotFound
	}
	return &dispense, nil
}

func (d *DispenseRepositoryImpl) ListDispenses(
	_ context.Context, page domain.Page,
) ([]domain.Dispense, error) {
	return d.list(page, func(domain.Dispense) bool { return true }), nil
}

func (d *DispenseRepositoryImpl) ListDispensesForRecipient(
	_ context.Context, recipient string, page domain.Page,
) ([]domain.Dispense, error) {
	return d.list(page, func(dispense domain.Dispense) bool {
		return dispense.Recipient == recipient
	}), nil
}

func (d *DispenseRepositoryImpl) list(
	page domain.Page, filter func(domain.Dispense) bool,
) []domain.Dispense {
	d.locker.RLock()
	defer d.locker.RUnlock()

	filtered := make([]domain.Dispense, 0)
	for _, id := range d.ids {
		if dispense := d.dispenses[id]; filter(dispense) {
			filtered = append(filtered, dispense)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp < filtered[j].Timestamp
	})

	from := page.Offset()
	if from >= len(filtered) {
		return []domain.Dispense{}
	}
	to := from + page.Size
	if to > len(filtered) {
		to = len(filtered)
	}
	return filtered[from:to]
}
