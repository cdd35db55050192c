package service

import (
	"context"
	"sync"

	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
	"github.com/angelsmp/discord-whitelist/pkg/whiteliststore"
)

// mockStore implements Store with overridable functions and records appends
type mockStore struct {
	mu       sync.Mutex
	latestFn func(ctx context.Context, discordID string) (*whitelist.Transaction, error)
	appendFn func(ctx context.Context, tx *whitelist.Transaction) error
	appended []*whitelist.Transaction
}

func (m *mockStore) LatestTransaction(ctx context.Context, discordID string) (*whitelist.Transaction, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, discordID)
	}
	return nil, whiteliststore.ErrNoTransactions
}

func (m *mockStore) Append(ctx context.Context, tx *whitelist.Transaction) error {
	m.mu.Lock()
	m.appended = append(m.appended, tx)
	m.mu.Unlock()
	if m.appendFn != nil {
		return m.appendFn(ctx, tx)
	}
	return nil
}

// mockConsole implements console.Console and records dispatched commands
type mockConsole struct {
	mu     sync.Mutex
	sendFn func(ctx context.Context, command string) (string, error)
	sent   []string
}

func (m *mockConsole) Send(ctx context.Context, command string) (string, error) {
	m.mu.Lock()
	m.sent = append(m.sent, command)
	m.mu.Unlock()
	if m.sendFn != nil {
		return m.sendFn(ctx, command)
	}
	return "", nil
}

// mockLookup implements xbox.Lookup
type mockLookup struct {
	mu       sync.Mutex
	lookupFn func(ctx context.Context, gamertag string) (string, error)
	calls    int
}

func (m *mockLookup) LookupXUID(ctx context.Context, gamertag string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.lookupFn != nil {
		return m.lookupFn(ctx, gamertag)
	}
	return "", nil
}

// mockService implements Service for transport tests
type mockService struct {
	whitelistFn func(ctx context.Context, req *whitelist.Request) (*whitelist.Reply, error)
	requests    []*whitelist.Request
}

func (m *mockService) Whitelist(ctx context.Context, req *whitelist.Request) (*whitelist.Reply, error) {
	m.requests = append(m.requests, req)
	if m.whitelistFn != nil {
		return m.whitelistFn(ctx, req)
	}
	return &whitelist.Reply{Message: "ok", Ephemeral: true}, nil
}
