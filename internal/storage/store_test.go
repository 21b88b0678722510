package storage

import (
	"context"
	"testing"

	"livepoll/internal/models"
	"livepoll/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePollKeepsOptionOrder(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "owner", false)
	poll := &models.Poll{Question: "Order?", UserID: owner.ID, IsPublished: true}

	texts := []string{"First", "Second", "Third", "Fourth"}
	created, err := store.CreatePoll(ctx, poll, texts)
	require.NoError(t, err)
	require.Len(t, created, 4)
	assert.NotEmpty(t, poll.ID)

	loaded, err := store.GetPollOptions(ctx, poll.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 4)
	for i, o := range loaded {
		assert.Equal(t, texts[i], o.Text)
		assert.Equal(t, created[i].ID, o.ID)
	}
}

func TestCreatePollRollsBackOnFailure(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)
	ctx := context.Background()

	// Owner does not exist, so the foreign key rejects the poll row.
	poll := &models.Poll{Question: "Orphan", UserID: "no-such-user", IsPublished: true}
	_, err := store.CreatePoll(ctx, poll, []string{"A", "B"})
	require.Error(t, err)

	polls, err := store.ListPolls(ctx)
	require.NoError(t, err)
	assert.Empty(t, polls)

	var options int64
	require.NoError(t, conn.Model(&models.Option{}).Count(&options).Error)
	assert.Zero(t, options)
}

func TestDeletePollCascades(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)
	ctx := context.Background()

	owner := testutil.CreateTestUser(t, conn, "owner", false)
	poll, opts := testutil.CreateTestPoll(t, conn, owner, "Q", false, "A", "B")
	keep, _ := testutil.CreateTestPoll(t, conn, owner, "Keep", false, "A", "B")
	_, err := store.RecordVote(ctx, owner.ID, poll.ID, opts[0].ID)
	require.NoError(t, err)

	require.NoError(t, store.DeletePoll(ctx, poll.ID))

	_, err = store.GetPoll(ctx, poll.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	options, err := store.GetPollOptions(ctx, poll.ID)
	require.NoError(t, err)
	assert.Empty(t, options)

	votes, err := store.VotesByPoll(ctx, poll.ID)
	require.NoError(t, err)
	assert.Empty(t, votes)

	polls, err := store.ListPolls(ctx)
	require.NoError(t, err)
	require.Len(t, polls, 1)
	assert.Equal(t, keep.ID, polls[0].ID)

	assert.ErrorIs(t, store.DeletePoll(ctx, poll.ID), ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, conn, "alice", false)
	bob := testutil.CreateTestUser(t, conn, "bob", false)
	alicePoll, aliceOpts := testutil.CreateTestPoll(t, conn, alice, "Alice's", false, "A", "B")
	bobPoll, bobOpts := testutil.CreateTestPoll(t, conn, bob, "Bob's", false, "A", "B")

	_, err := store.RecordVote(ctx, bob.ID, alicePoll.ID, aliceOpts[0].ID)
	require.NoError(t, err)
	_, err = store.RecordVote(ctx, alice.ID, bobPoll.ID, bobOpts[1].ID)
	require.NoError(t, err)

	removed, err := store.DeleteUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alicePoll.ID}, removed)

	_, err = store.GetUser(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetPoll(ctx, alicePoll.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Alice's vote on Bob's poll is gone too.
	stats, err := store.ComputeStats(ctx, bobPoll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalVotes)

	_, err = store.DeleteUser(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := NewStore(conn)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &models.User{Name: "A", Email: "a@example.com", PasswordHash: "x"}))
	err := store.CreateUser(ctx, &models.User{Name: "B", Email: "a@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	u, err := store.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)
}
