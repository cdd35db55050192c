package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/angelsmp/discord-whitelist/pkg/console"
	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
	"github.com/angelsmp/discord-whitelist/pkg/xbox"
)

const testHelpChannel = "999999999999999999"

func newTestService(store *mockStore, con *mockConsole, lookup *mockLookup) Service {
	return NewService(store, con, lookup, 72*time.Hour, testHelpChannel, zap.NewNop())
}

func eligibleRequest(platform string) *whitelist.Request {
	return &whitelist.Request{
		DiscordID: "111111111111111111",
		JoinedAt:  time.Now().Add(-96 * time.Hour),
		Username:  "Steve_123",
		Platform:  platform,
	}
}

func TestWhitelist_JavaSuccessPersists(t *testing.T) {
	store := &mockStore{}
	con := &mockConsole{sendFn: func(_ context.Context, _ string) (string, error) {
		return "Added Steve_123 to the whitelist", nil
	}}
	svc := newTestService(store, con, &mockLookup{})

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("java"))
	require.NoError(t, err)

	assert.Equal(t, "Success! `Steve_123` has been added to the whitelist.", reply.Message)
	assert.True(t, reply.Ephemeral)

	require.Equal(t, []string{"whitelist add Steve_123"}, con.sent)
	require.Len(t, store.appended, 1)
	assert.Equal(t, "111111111111111111", store.appended[0].DiscordID)
	assert.Equal(t, whitelist.PlatformJava, store.appended[0].Platform)
	assert.Empty(t, store.appended[0].UUID)
}

func TestWhitelist_CooldownBlocksDispatch(t *testing.T) {
	store := &mockStore{latestFn: func(_ context.Context, _ string) (*whitelist.Transaction, error) {
		return &whitelist.Transaction{
			DiscordID:    "111111111111111111",
			Username:     "OldName",
			Platform:     whitelist.PlatformJava,
			TimeAccessed: time.Now().Add(-time.Hour),
		}, nil
	}}
	con := &mockConsole{}
	svc := newTestService(store, con, &mockLookup{})

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("java"))
	require.NoError(t, err)

	assert.Contains(t, reply.Message, "You need to wait at least 3 days")
	assert.Contains(t, reply.Message, "<t:")
	assert.Contains(t, reply.Message, ":R>")
	assert.True(t, reply.Ephemeral)

	assert.Empty(t, con.sent, "cooldown must not reach the console")
	assert.Empty(t, store.appended, "cooldown must not persist")
}

func TestWhitelist_NewMemberMessage(t *testing.T) {
	store := &mockStore{}
	con := &mockConsole{}
	svc := newTestService(store, con, &mockLookup{})

	req := eligibleRequest("java")
	req.JoinedAt = time.Now().Add(-time.Hour)

	reply, err := svc.Whitelist(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, reply.Message, "You need to be in this Discord server for at least 3 days")
	assert.Empty(t, con.sent)
}

func TestWhitelist_InvalidUsername(t *testing.T) {
	store := &mockStore{}
	con := &mockConsole{}
	svc := newTestService(store, con, &mockLookup{})

	req := eligibleRequest("java")
	req.Username = "bad name!"

	reply, err := svc.Whitelist(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, reply.Message, "special characters")
	assert.Empty(t, con.sent, "invalid usernames must never reach the console")

	req.Username = "ab"
	reply, err = svc.Whitelist(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "between 3 and 16 characters")
}

func TestWhitelist_BedrockProfileNotFound(t *testing.T) {
	store := &mockStore{}
	con := &mockConsole{}
	lookup := &mockLookup{lookupFn: func(_ context.Context, _ string) (string, error) {
		return "", xbox.ErrProfileNotFound
	}}
	svc := newTestService(store, con, lookup)

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("bedrock"))
	require.NoError(t, err)

	assert.Contains(t, reply.Message, "Could not find that username (`Steve_123`)")
	assert.Empty(t, con.sent, "unresolved gamertag must not reach the console")
	assert.Empty(t, store.appended)
}

func TestWhitelist_BedrockSuccess(t *testing.T) {
	store := &mockStore{}
	con := &mockConsole{sendFn: func(_ context.Context, _ string) (string, error) {
		return "Player has been added to the whitelist!", nil
	}}
	lookup := &mockLookup{lookupFn: func(_ context.Context, _ string) (string, error) {
		return "2535436020783693", nil
	}}
	svc := newTestService(store, con, lookup)

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("bedrock"))
	require.NoError(t, err)

	assert.Equal(t, "Success! `Steve_123` has been added to the whitelist.", reply.Message)
	require.Equal(t, []string{"fwhitelist add 00000000-0000-0000-0009-01f7335e9a4d"}, con.sent)

	require.Len(t, store.appended, 1)
	assert.Equal(t, whitelist.PlatformBedrock, store.appended[0].Platform)
	assert.Equal(t, "00000000-0000-0000-0009-01f7335e9a4d", store.appended[0].UUID)
}

func TestWhitelist_BedrockAlreadyWhitelisted(t *testing.T) {
	store := &mockStore{}
	con := &mockConsole{sendFn: func(_ context.Context, _ string) (string, error) {
		return "Player was already whitelisted", nil
	}}
	lookup := &mockLookup{lookupFn: func(_ context.Context, _ string) (string, error) {
		return "2535436020783693", nil
	}}
	svc := newTestService(store, con, lookup)

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("bedrock"))
	require.NoError(t, err)

	assert.Equal(t, "`Steve_123` is already on the whitelist!", reply.Message)
	assert.Empty(t, store.appended, "already-whitelisted must not reset the cooldown")
}

func TestWhitelist_AlreadyWhitelistedDoesNotPersist(t *testing.T) {
	store := &mockStore{}
	con := &mockConsole{sendFn: func(_ context.Context, _ string) (string, error) {
		return "Player is already whitelisted", nil
	}}
	svc := newTestService(store, con, &mockLookup{})

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("java"))
	require.NoError(t, err)

	assert.Equal(t, "`Steve_123` is already on the whitelist!", reply.Message)
	assert.Empty(t, store.appended, "already-whitelisted must not reset the cooldown")
}

func TestWhitelist_PlayerDoesNotExist(t *testing.T) {
	store := &mockStore{}
	con := &mockConsole{sendFn: func(_ context.Context, _ string) (string, error) {
		return "That player does not exist", nil
	}}
	svc := newTestService(store, con, &mockLookup{})

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("java"))
	require.NoError(t, err)

	assert.Contains(t, reply.Message, "Could not find that username")
	assert.Empty(t, store.appended)
}

func TestWhitelist_ConsoleFailureGetsSupportReply(t *testing.T) {
	store := &mockStore{}
	con := &mockConsole{sendFn: func(_ context.Context, _ string) (string, error) {
		return "", errors.New("connection reset")
	}}
	svc := newTestService(store, con, &mockLookup{})

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("java"))
	require.NoError(t, err, "dependency failures are absorbed into the reply")

	assert.Contains(t, reply.Message, "Something went wrong")
	assert.Contains(t, reply.Message, testHelpChannel)
	assert.Empty(t, store.appended)
}

func TestWhitelist_ConsoleDisabledGetsSupportReply(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store, console.Disabled(), &mockLookup{}, 72*time.Hour, testHelpChannel, zap.NewNop())

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("java"))
	require.NoError(t, err)

	assert.Contains(t, reply.Message, "Something went wrong")
	assert.Empty(t, store.appended)
}

func TestWhitelist_UnsupportedPlatform(t *testing.T) {
	store := &mockStore{}
	con := &mockConsole{}
	lookup := &mockLookup{}
	svc := newTestService(store, con, lookup)

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("pocket"))
	require.NoError(t, err)

	assert.Contains(t, reply.Message, "Something went wrong")
	assert.Empty(t, con.sent)
	assert.Zero(t, lookup.calls)
}

func TestWhitelist_StoreErrorGetsSupportReply(t *testing.T) {
	store := &mockStore{latestFn: func(_ context.Context, _ string) (*whitelist.Transaction, error) {
		return nil, errors.New("connection refused")
	}}
	con := &mockConsole{}
	svc := newTestService(store, con, &mockLookup{})

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("java"))
	require.NoError(t, err)

	assert.Contains(t, reply.Message, "Something went wrong")
	assert.Empty(t, con.sent)
}

func TestWhitelist_AppendFailureStillSucceeds(t *testing.T) {
	store := &mockStore{appendFn: func(_ context.Context, _ *whitelist.Transaction) error {
		return errors.New("disk full")
	}}
	con := &mockConsole{sendFn: func(_ context.Context, _ string) (string, error) {
		return "Added Steve_123 to the whitelist", nil
	}}
	svc := newTestService(store, con, &mockLookup{})

	reply, err := svc.Whitelist(context.Background(), eligibleRequest("java"))
	require.NoError(t, err)

	// The console already added the player, so the reply stays a success
	assert.Contains(t, reply.Message, "Success!")
}
