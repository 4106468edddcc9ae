// Package payment provides the placeholder payment gateway used for Pro
// upgrades. It records transactions but never talks to a processor, so a
// real gateway can replace it behind the same methods.
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// Store persists transactions.
type Store interface {
	Create(ctx context.Context, tx model.PaymentTransaction) error
	Get(ctx context.Context, id string) (model.PaymentTransaction, error)
	MarkConfirmed(ctx context.Context, id string, at time.Time) (bool, error)
}

// StubGateway accepts every payment.
type StubGateway struct {
	store Store
	now   func() time.Time
}

func NewStubGateway(store Store) *StubGateway {
	if store == nil {
		panic("nil store passed to NewStubGateway")
	}
	return &StubGateway{store: store, now: time.Now}
}

// Initiate opens a pending transaction and returns its id.
func (g *StubGateway) Initiate(ctx context.Context, userID uint64, plan model.Plan, amountCents int64) (string, error) {
	if amountCents < 0 {
		return "", errors.New("negative amount")
	}
	tx := model.PaymentTransaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Plan:        plan,
		AmountCents: amountCents,
		Status:      model.PaymentPending,
	}
	if err := g.store.Create(ctx, tx); err != nil {
		return "", err
	}
	return tx.ID, nil
}

// Transaction looks a transaction up without changing it.
func (g *StubGateway) Transaction(ctx context.Context, txID string) (model.PaymentTransaction, error) {
	if _, err := uuid.Parse(txID); err != nil {
		return model.PaymentTransaction{}, ErrUnknownTransaction
	}
	return g.store.Get(ctx, txID)
}

// Confirm settles a transaction. Confirming twice returns the already
// confirmed record.
func (g *StubGateway) Confirm(ctx context.Context, txID string) (model.PaymentTransaction, error) {
	if _, err := uuid.Parse(txID); err != nil {
		return model.PaymentTransaction{}, ErrUnknownTransaction
	}
	if _, err := g.store.MarkConfirmed(ctx, txID, g.now()); err != nil {
		return model.PaymentTransaction{}, err
	}
	return g.store.Get(ctx, txID)
}

// ErrUnknownTransaction is returned for ids that cannot belong to this
// gateway.
var ErrUnknownTransaction = errors.New("unknown transaction")
