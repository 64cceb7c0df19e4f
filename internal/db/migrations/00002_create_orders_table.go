package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpOrdersTable, DownOrdersTable)
}

func UpOrdersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE orders
(
    order_id VARCHAR(255) PRIMARY KEY,
    account_id VARCHAR(255) NOT NULL,
    zone_id VARCHAR(255) NOT NULL,
    pack_id VARCHAR(255) NOT NULL,
    claimed_price NUMERIC(12, 2) NOT NULL,
    payment_reference VARCHAR(255) NOT NULL,
    submitter_id VARCHAR(255) NOT NULL,
    status VARCHAR(32) NOT NULL,
    provider_order_ref VARCHAR(255) NOT NULL DEFAULT '',
    error_detail TEXT NOT NULL DEFAULT '',
    processing_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
);`)
	return err
}

func DownOrdersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE orders;")
	return err
}
