package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(UpOperatorsTable, DownOperatorsTable)
}

func UpOperatorsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE operators
(
    operator_id UUID NOT NULL,
    login VARCHAR(255) PRIMARY KEY,
    password VARCHAR(255) NOT NULL
);`)
	return err
}

func DownOperatorsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE operators;")
	return err
}
