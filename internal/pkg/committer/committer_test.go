package committer

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func del(key string) *spanner.Mutation {
	return spanner.Delete("products", spanner.Key{key})
}

func TestPlan_AddSkipsNil(t *testing.T) {
	p := NewPlan()
	assert.True(t, p.IsEmpty())

	p.Add(nil, del("a"), nil)
	p.Add(del("b"))
	p.Add(nil)
	assert.Equal(t, 2, p.Len())
	assert.False(t, p.IsEmpty())
	assert.Len(t, p.Mutations(), 2)
}

func TestPlan_BatchesKeepGroupsWhole(t *testing.T) {
	p := NewPlan()
	p.Add(del("a1"), del("a2"))
	p.Add(del("b1"), del("b2"))
	p.Add(del("c1"), del("c2"), del("c3"), del("c4"))
	p.Add(del("d1"))

	batches := p.Batches(3)
	require.Len(t, batches, 4)
	assert.Len(t, batches[0], 2)
	assert.Len(t, batches[1], 2)
	// Oversized group stands alone.
	assert.Len(t, batches[2], 4)
	assert.Len(t, batches[3], 1)

	batches = p.Batches(5)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], 4)
	assert.Len(t, batches[1], 5)

	require.Len(t, p.Batches(0), 1)
	assert.Len(t, p.Batches(0)[0], 9)
	assert.Nil(t, NewPlan().Batches(10))
}

func TestAdapter_Apply(t *testing.T) {
	a := NewAdapter(nil)
	require.NoError(t, a.Apply(context.Background(), nil))
	require.NoError(t, a.Apply(context.Background(), NewPlan()))

	p := NewPlan()
	p.Add(del("a"))
	require.ErrorIs(t, a.Apply(context.Background(), p), ErrNilClient)
}

func TestAdapter_ApplyBatched(t *testing.T) {
	a := NewAdapter(nil)
	n, err := a.ApplyBatched(context.Background(), NewPlan(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	p := NewPlan()
	p.Add(del("a"))
	n, err = a.ApplyBatched(context.Background(), p, 10)
	require.ErrorIs(t, err, ErrNilClient)
	assert.Equal(t, 0, n)
}
