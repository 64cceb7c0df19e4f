package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpPaymentReferencesTable, DownPaymentReferencesTable)
}

// Rows in payment_references are never deleted: replay protection for a claimed
// reference is permanent.
func UpPaymentReferencesTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE payment_references
(
    reference VARCHAR(255) PRIMARY KEY,
    order_id VARCHAR(255) NOT NULL,
    claimed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
);`)
	return err
}

func DownPaymentReferencesTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE payment_references;")
	return err
}
