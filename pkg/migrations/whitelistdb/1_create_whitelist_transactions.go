package whitelistdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	mghelper "github.com/angelsmp/discord-whitelist/pkg/pgutil/migrations"
	"github.com/angelsmp/discord-whitelist/pkg/whiteliststore"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating whitelist_transactions table...")
		if err := mghelper.CreateSchema(ctx, db, &whiteliststore.TransactionDao{}); err != nil {
			return err
		}
		// Cooldown lookups filter by discord_id and take the newest row
		return mghelper.CreateModelIndexes(ctx, db, &whiteliststore.TransactionDao{}, "discord_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping whitelist_transactions table...")
		return mghelper.DropTables(ctx, db, &whiteliststore.TransactionDao{})
	})
}
