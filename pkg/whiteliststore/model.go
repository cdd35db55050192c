package whiteliststore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/angelsmp/discord-whitelist/pkg/whitelist"
)

// TransactionDao is a data access object that maps directly to the
// 'whitelist_transactions' table in PostgreSQL.
type TransactionDao struct {
	bun.BaseModel `bun:"table:whitelist_transactions,alias:wt"`
	ID            int64     `bun:"transaction_id,pk,autoincrement"`
	DiscordID     string    `bun:"discord_id,notnull,type:varchar(32)"`
	Username      string    `bun:"mc_username,notnull,type:varchar(16)"`
	Platform      string    `bun:"platform,notnull,type:varchar(7)"`
	UUID          *string   `bun:"mc_uuid,type:varchar(36)"`
	TimeAccessed  time.Time `bun:"time_accessed,nullzero,default:current_timestamp"`
}

// toTransactionDao converts a whitelist.Transaction to TransactionDao.
func toTransactionDao(tx *whitelist.Transaction) *TransactionDao {
	dao := &TransactionDao{
		DiscordID: tx.DiscordID,
		Username:  tx.Username,
		Platform:  string(tx.Platform),
	}
	if tx.UUID != "" {
		dao.UUID = &tx.UUID
	}
	return dao
}

// toTransaction converts a TransactionDao to whitelist.Transaction.
func toTransaction(dao *TransactionDao) *whitelist.Transaction {
	tx := &whitelist.Transaction{
		ID:           dao.ID,
		DiscordID:    dao.DiscordID,
		Username:     dao.Username,
		Platform:     whitelist.Platform(dao.Platform),
		TimeAccessed: dao.TimeAccessed,
	}
	if dao.UUID != nil {
		tx.UUID = *dao.UUID
	}
	return tx
}
