// Package whiteliststore persists whitelist transactions in PostgreSQL.
package whiteliststore

import (
	"context"
	"errors"

	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
)

// ErrNoTransactions is returned when an account has no whitelist history.
var ErrNoTransactions = errors.New("no whitelist transactions")

// Store defines the interface for whitelist transaction persistence.
// Transactions are append-only; nothing in the pipeline updates or
// deletes a row once written.
type Store interface {
	// LatestTransaction returns the transaction with the greatest ID for
	// the given Discord account, or ErrNoTransactions.
	LatestTransaction(ctx context.Context, discordID string) (*whitelist.Transaction, error)
	// Append records one successful whitelist action. The store assigns
	// the ID and timestamp.
	Append(ctx context.Context, tx *whitelist.Transaction) error
}
