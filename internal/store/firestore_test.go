package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilsonhazen/bidroom/internal/testutil"
)

// Runs only against the Firestore emulator.
func TestFirestoreStore_Emulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()

	st, err := NewFirestoreStore(ctx, "bidroom-test", "contractors_test", "snapshots_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	missing, err := st.GetContractor(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	c := testutil.NewContractorFixture().WithID("fs_c1").Build()
	require.NoError(t, st.UpsertContractor(ctx, c))

	got, err := st.GetContractor(ctx, "fs_c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.Name, got.Name)

	list, err := st.ListContractors(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	raw, err := st.client.Collection("contractors_test").Doc("fs_c1").Get(ctx)
	require.NoError(t, err)
	fields := raw.Data()
	for _, k := range []string{"id", "review_count", "completed_projects", "verifications", "updated_at"} {
		assert.Contains(t, fields, k)
	}
	assert.NotContains(t, fields, "ID")
	assert.NotContains(t, fields, "trust_indicators", "nil indicators are omitted")

	now := time.Now().UTC().Truncate(time.Millisecond)
	snap := testutil.NewSnapshotFixture("fs_owner", now)
	require.NoError(t, st.SaveSnapshot(ctx, snap))

	rawSnap, err := st.client.Collection("snapshots_test").Doc("fs_owner").Get(ctx)
	require.NoError(t, err)
	snapFields := rawSnap.Data()
	assert.Equal(t, "fs_owner", snapFields["owner_id"])
	assert.NotContains(t, snapFields, "OwnerID")
	milestones, ok := snapFields["milestones"].([]any)
	require.True(t, ok)
	require.Len(t, milestones, 1)
	assert.Contains(t, milestones[0], "submitted_at")

	gotSnap, err := st.GetSnapshot(ctx, "fs_owner")
	require.NoError(t, err)
	require.NotNil(t, gotSnap)
	require.Len(t, gotSnap.Milestones, 1)
	require.NotNil(t, gotSnap.Milestones[0].SubmittedAt)
	assert.True(t, snap.Milestones[0].SubmittedAt.Equal(*gotSnap.Milestones[0].SubmittedAt))
}
