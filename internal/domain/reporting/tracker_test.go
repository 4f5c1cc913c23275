package reporting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almacen/internal/domain/orders"
)

func TestUnreported_SetDifference(t *testing.T) {
	all := []orders.Order{
		{ID: 1, CreatedAt: ts("2023-06-01T10:00:00Z")},
		{ID: 2, CreatedAt: ts("2024-01-08T10:00:00Z")},
		{ID: 3, CreatedAt: ts("2024-01-09T10:00:00Z")},
	}
	reported := map[int64]string{2: "AUTO-x"}

	got := Unreported(all, reported)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	// An old order stays unreported indefinitely: no date heuristics.
	assert.Equal(t, ts("2023-06-01T10:00:00Z"), got[0].CreatedAt)
}

func TestUnreported_Empty(t *testing.T) {
	assert.Empty(t, Unreported(nil, nil))
	assert.Empty(t, Unreported(nil, map[int64]string{1: "x"}))
}

func TestTracker_UnreportedOrders(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	repo.addOrders(sampleOrders()...)

	tracker := NewTracker(repo)

	unreported, err := tracker.UnreportedOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, unreported, 3)

	// Claim order 2 under some report; the difference shrinks.
	require.NoError(t, repo.SaveReport(ctx, &GeneratedReport{
		ID:       "MAN-test",
		Kind:     KindManual,
		OrderIDs: []int64{2},
	}))

	unreported, err = tracker.UnreportedOrders(ctx)
	require.NoError(t, err)
	require.Len(t, unreported, 2)
	for _, o := range unreported {
		assert.NotEqual(t, int64(2), o.ID)
	}
}

func TestSaveReport_ConflictingMarkIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()

	require.NoError(t, repo.SaveReport(ctx, &GeneratedReport{
		ID: "MAN-a", Kind: KindManual, OrderIDs: []int64{1, 2},
	}))

	// Re-marking order 2 under a different report fails loudly and
	// persists nothing, preserving the original attribution.
	err := repo.SaveReport(ctx, &GeneratedReport{
		ID: "MAN-b", Kind: KindManual, OrderIDs: []int64{2, 3},
	})
	require.Error(t, err)

	set, err := repo.ReportedOrderIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "MAN-a", set[2])
	_, marked := set[3]
	assert.False(t, marked)
	assert.Equal(t, 1, repo.reportCount())
}
