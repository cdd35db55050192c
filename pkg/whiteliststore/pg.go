package whiteliststore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the transaction store
func NewStore(db *bun.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) LatestTransaction(ctx context.Context, discordID string) (*whitelist.Transaction, error) {
	dao := new(TransactionDao)

	err := s.db.NewSelect().
		Model(dao).
		Where("discord_id = ?", discordID).
		Order("transaction_id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoTransactions
		}
		return nil, fmt.Errorf("failed to query latest transaction: %w", err)
	}

	return toTransaction(dao), nil
}

func (s *pgStore) Append(ctx context.Context, tx *whitelist.Transaction) error {
	dao := toTransactionDao(tx)

	if _, err := s.db.NewInsert().Model(dao).Exec(ctx); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}
