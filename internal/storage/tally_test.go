package storage

import (
	"context"
	"testing"

	"livepoll/internal/models"
	"livepoll/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatsIncludesZeroCounts(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "owner", false)
	poll, opts := testutil.CreateTestPoll(t, conn, owner, "Coffee or Tea?", false, "Coffee", "Tea")

	stats, err := store.ComputeStats(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalVotes)
	assert.Equal(t, []models.OptionCount{
		{OptionID: opts[0].ID, Text: "Coffee", Count: 0},
		{OptionID: opts[1].ID, Text: "Tea", Count: 0},
	}, stats.OptionVotes)

	a := testutil.CreateTestUser(t, conn, "alice", false)
	_, err = store.RecordVote(ctx, a.ID, poll.ID, opts[0].ID)
	require.NoError(t, err)

	stats, err = store.ComputeStats(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVotes)
	assert.Equal(t, []models.OptionCount{
		{OptionID: opts[0].ID, Text: "Coffee", Count: 1},
		{OptionID: opts[1].ID, Text: "Tea", Count: 0},
	}, stats.OptionVotes)

	// A rejected re-vote leaves the tally untouched.
	_, err = store.RecordVote(ctx, a.ID, poll.ID, opts[1].ID)
	require.ErrorIs(t, err, ErrDuplicateVote)

	again, err := store.ComputeStats(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestComputeStatsMultipleChoice(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "owner", false)
	b := testutil.CreateTestUser(t, conn, "bob", false)
	c := testutil.CreateTestUser(t, conn, "carol", false)
	poll, opts := testutil.CreateTestPoll(t, conn, owner, "Languages", true, "Go", "Rust", "Zig")

	for _, v := range []struct {
		user   *models.User
		option int
	}{{b, 0}, {b, 1}, {c, 0}} {
		_, err := store.RecordVote(ctx, v.user.ID, poll.ID, opts[v.option].ID)
		require.NoError(t, err)
	}

	stats, err := store.ComputeStats(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalVotes)
	require.Len(t, stats.OptionVotes, 3)
	assert.Equal(t, int64(2), stats.OptionVotes[0].Count)
	assert.Equal(t, int64(1), stats.OptionVotes[1].Count)
	assert.Equal(t, int64(0), stats.OptionVotes[2].Count)
}

func TestUserAndSystemStats(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "owner", false)
	voter := testutil.CreateTestUser(t, conn, "voter", false)
	p1, o1 := testutil.CreateTestPoll(t, conn, owner, "One", false, "A", "B")
	p2, _ := testutil.CreateTestPoll(t, conn, owner, "Two", false, "A", "B")
	_, _ = testutil.CreateTestPoll(t, conn, voter, "Three", false, "A", "B")

	_, err := store.SetPublished(ctx, p2.ID, false)
	require.NoError(t, err)
	_, err = store.RecordVote(ctx, voter.ID, p1.ID, o1[0].ID)
	require.NoError(t, err)
	_, err = store.RecordVote(ctx, owner.ID, p1.ID, o1[1].ID)
	require.NoError(t, err)

	us, err := store.UserStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{TotalPolls: 2, ActivePolls: 1, TotalVotes: 2}, us)

	ss, err := store.SystemStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SystemStats{TotalUsers: 2, TotalPolls: 3, ActivePolls: 2, TotalVotes: 2}, ss)
}
