package whiteliststore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelsmp/discord-whitelist/pkg/pgutil"
	mghelper "github.com/angelsmp/discord-whitelist/pkg/pgutil/migrations"
	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
)

func setupStore(t *testing.T) Store {
	t.Helper()
	db, cleanup := pgutil.SetupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	require.NoError(t, mghelper.CreateSchema(ctx, db, &TransactionDao{}))
	require.NoError(t, mghelper.CreateModelIndexes(ctx, db, &TransactionDao{}, "discord_id"))

	return NewStore(db)
}

func TestStore_LatestTransaction_Empty(t *testing.T) {
	store := setupStore(t)

	_, err := store.LatestTransaction(context.Background(), "111111111111111111")
	assert.True(t, errors.Is(err, ErrNoTransactions))
}

func TestStore_AppendAndLatest_Java(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	err := store.Append(ctx, &whitelist.Transaction{
		DiscordID: "111111111111111111",
		Username:  "Steve_123",
		Platform:  whitelist.PlatformJava,
	})
	require.NoError(t, err)

	tx, err := store.LatestTransaction(ctx, "111111111111111111")
	require.NoError(t, err)

	assert.Equal(t, "111111111111111111", tx.DiscordID)
	assert.Equal(t, "Steve_123", tx.Username)
	assert.Equal(t, whitelist.PlatformJava, tx.Platform)
	assert.Empty(t, tx.UUID)
	assert.NotZero(t, tx.ID)
	// time_accessed is assigned by the database
	assert.False(t, tx.TimeAccessed.IsZero())
}

func TestStore_AppendAndLatest_Bedrock(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	err := store.Append(ctx, &whitelist.Transaction{
		DiscordID: "222222222222222222",
		Username:  "GamerTag",
		Platform:  whitelist.PlatformBedrock,
		UUID:      "00000000-0000-0000-0009-01f7335e9a4d",
	})
	require.NoError(t, err)

	tx, err := store.LatestTransaction(ctx, "222222222222222222")
	require.NoError(t, err)

	assert.Equal(t, whitelist.PlatformBedrock, tx.Platform)
	assert.Equal(t, "00000000-0000-0000-0009-01f7335e9a4d", tx.UUID)
}

func TestStore_LatestTransaction_ReturnsNewest(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		err := store.Append(ctx, &whitelist.Transaction{
			DiscordID: "333333333333333333",
			Username:  name,
			Platform:  whitelist.PlatformJava,
		})
		require.NoError(t, err)
	}

	tx, err := store.LatestTransaction(ctx, "333333333333333333")
	require.NoError(t, err)
	assert.Equal(t, "Third", tx.Username)
}

func TestStore_LatestTransaction_ScopedToAccount(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	err := store.Append(ctx, &whitelist.Transaction{
		DiscordID: "444444444444444444",
		Username:  "PlayerA",
		Platform:  whitelist.PlatformJava,
	})
	require.NoError(t, err)

	_, err = store.LatestTransaction(ctx, "555555555555555555")
	assert.True(t, errors.Is(err, ErrNoTransactions))
}
