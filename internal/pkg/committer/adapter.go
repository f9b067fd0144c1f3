package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
)

var ErrNilClient = errors.New("committer: spanner client is nil")

// Adapter writes Plans to Spanner through read-write transactions.
type Adapter struct {
	client *spanner.Client
}

func NewAdapter(client *spanner.Client) *Adapter {
	return &Adapter{client: client}
}

// Apply commits the whole plan atomically.
func (a *Adapter) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}
	return a.commit(ctx, plan.Mutations())
}

// ApplyBatched commits plan in batches of at most limit mutations, one
// transaction per batch, and returns how many batches were committed. Groups
// are never split, so a failure leaves every group either fully written or
// untouched.
func (a *Adapter) ApplyBatched(ctx context.Context, plan *Plan, limit int) (int, error) {
	if plan == nil {
		return 0, nil
	}
	batches := plan.Batches(limit)
	for i, batch := range batches {
		if err := a.commit(ctx, batch); err != nil {
			return i, fmt.Errorf("commit batch %d: %w", i+1, err)
		}
	}
	return len(batches), nil
}

func (a *Adapter) commit(ctx context.Context, muts []*spanner.Mutation) error {
	if a.client == nil {
		return ErrNilClient
	}
	_, err := a.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		return tx.BufferWrite(muts)
	})
	return err
}
