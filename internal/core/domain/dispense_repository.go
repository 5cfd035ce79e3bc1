package domain

import "context"

// DispenseRepository is the abstraction for any kind of database intended to
// persist Dispenses.
type DispenseRepository interface {
	// AddDispense stores the given dispense. Adding a dispense with an already
	// existing ID is a no-op.
	AddDispense(ctx context.Context, dispense Dispense) error
	// GetDispense returns the dispense with the given ID.
	GetDispense(ctx context.Context, id string) (*Dispense, error)
	// ListDispenses returns the page of all dispenses, ordered by time.
	ListDispenses(ctx context.Context, page Page) ([]Dispense, error)
	// ListDispensesForRecipient returns the page of dispenses sent to the
	// given address.
	ListDispensesForRecipient(
		ctx context.Context, recipient string, page Page,
	) ([]Dispense, error)
}
