package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/caiuswebs/luxe-backend/config"
	_ "github.com/caiuswebs/luxe-backend/internal/db/migrations"
	"github.com/caiuswebs/luxe-backend/models"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type Manager struct {
	DB *sql.DB
}

func NewManager(cfg *config.Config) (*Manager, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	manager := &Manager{
		DB: db,
	}

	if err = goose.Up(db, "./internal/db/migrations"); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	return manager, nil
}

func (m *Manager) GetPack(ctx context.Context, packID string) (*models.Pack, error) {
	var pack models.Pack

	err := m.DB.QueryRowContext(ctx, `
		SELECT pack_id, name, provider_product_id, provider_price, margin_amount, final_price, active
		FROM packs
		WHERE pack_id = $1
	`, packID).Scan(&pack.PackID, &pack.Name, &pack.ProviderProductID,
		&pack.ProviderPrice, &pack.MarginAmount, &pack.FinalPrice, &pack.Active)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pack: %w", err)
	}

	return &pack, nil
}

func (m *Manager) GetActivePacks(ctx context.Context) ([]*models.Pack, error) {
	rows, err := m.DB.QueryContext(ctx, `
		SELECT pack_id, name, provider_product_id, provider_price, margin_amount, final_price, active
		FROM packs
		WHERE active = TRUE
		ORDER BY pack_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}
	defer rows.Close()

	var packs []*models.Pack
	for rows.Next() {
		var pack models.Pack
		if err := rows.Scan(&pack.PackID, &pack.Name, &pack.ProviderProductID,
			&pack.ProviderPrice, &pack.MarginAmount, &pack.FinalPrice, &pack.Active); err != nil {
			return nil, fmt.Errorf("failed to scan pack: %w", err)
		}
		packs = append(packs, &pack)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read packs: %w", err)
	}

	return packs, nil
}

func (m *Manager) UpsertPack(ctx context.Context, pack models.Pack) error {
	_, err := m.DB.ExecContext(ctx, `
		INSERT INTO packs (pack_id, name, provider_product_id, provider_price, margin_amount, final_price, active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		ON CONFLICT (pack_id) DO UPDATE SET
			name = EXCLUDED.name,
			provider_product_id = EXCLUDED.provider_product_id,
			provider_price = EXCLUDED.provider_price,
			margin_amount = EXCLUDED.margin_amount,
			final_price = EXCLUDED.final_price,
			active = EXCLUDED.active,
			updated_at = CURRENT_TIMESTAMP
	`, pack.PackID, pack.Name, pack.ProviderProductID,
		pack.ProviderPrice, pack.MarginAmount, pack.FinalPrice, pack.Active)
	if err != nil {
		return fmt.Errorf("failed to upsert pack: %w", err)
	}

	return nil
}

func (m *Manager) HasPaymentReference(ctx context.Context, reference string) (bool, error) {
	var exists bool

	err := m.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM payment_references WHERE reference = $1)
	`, reference).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payment reference: %w", err)
	}

	return exists, nil
}

// CreateOrderWithReference writes the order and its payment reference lock in one
// transaction. The lock insert is the check-and-set: if the reference row already
// exists the whole submission fails and no order row is left behind.
func (m *Manager) CreateOrderWithReference(ctx context.Context, order models.Order) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO payment_references (reference, order_id)
		VALUES ($1, $2)
		ON CONFLICT (reference) DO NOTHING
	`, order.PaymentReference, order.OrderID)
	if err != nil {
		return fmt.Errorf("failed to claim payment reference: %w", err)
	}

	claimed, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read claim result: %w", err)
	}
	if claimed == 0 {
		return ErrDuplicateReference
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (order_id, account_id, zone_id, pack_id, claimed_price, payment_reference, submitter_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, order.OrderID, order.AccountID, order.ZoneID, order.PackID,
		order.ClaimedPrice, order.PaymentReference, order.SubmitterID, order.Status)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

func (m *Manager) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order

	err := m.DB.QueryRowContext(ctx, `
		SELECT order_id, account_id, zone_id, pack_id, claimed_price, payment_reference, submitter_id, status, provider_order_ref, error_detail, created_at
		FROM orders
		WHERE order_id = $1
	`, orderID).Scan(&order.OrderID, &order.AccountID, &order.ZoneID, &order.PackID,
		&order.ClaimedPrice, &order.PaymentReference, &order.SubmitterID,
		&order.Status, &order.ProviderOrderRef, &order.ErrorDetail, &order.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// ClaimOrderProcessing marks the order as being handled by one Process call. It is
// a committed write, not a held lock: the provider call that follows runs with no
// ledger lock in flight, and concurrent readers still see the PENDING status.
func (m *Manager) ClaimOrderProcessing(ctx context.Context, orderID string) (bool, error) {
	res, err := m.DB.ExecContext(ctx, `
		UPDATE orders
		SET processing_at = CURRENT_TIMESTAMP
		WHERE order_id = $1 AND status = 'PENDING' AND processing_at IS NULL
	`, orderID)
	if err != nil {
		return false, fmt.Errorf("failed to claim order: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read claim result: %w", err)
	}

	return n == 1, nil
}

// FinalizeOrder transitions a PENDING order to a terminal status. The status guard
// makes the write conditional: a second finalization attempt affects zero rows.
func (m *Manager) FinalizeOrder(ctx context.Context, orderID string, status models.OrderStatus, providerRef string, errorDetail string) (bool, error) {
	res, err := m.DB.ExecContext(ctx, `
		UPDATE orders
		SET status = $2, provider_order_ref = $3, error_detail = $4
		WHERE order_id = $1 AND status = 'PENDING'
	`, orderID, status, providerRef, errorDetail)
	if err != nil {
		return false, fmt.Errorf("failed to finalize order: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read finalize result: %w", err)
	}

	return n == 1, nil
}

func (m *Manager) PutOperator(ctx context.Context, operator models.Operator) error {
	_, err := m.DB.ExecContext(ctx, `
		INSERT INTO operators (operator_id, login, password)
		VALUES ($1, $2, $3)
	`, operator.OperatorID, operator.Login, operator.Password)
	if err != nil {
		return fmt.Errorf("failed to insert operator: %w", err)
	}

	return nil
}

func (m *Manager) GetOperator(ctx context.Context, login string) (*models.Operator, error) {
	var operator models.Operator

	err := m.DB.QueryRowContext(ctx, `
		SELECT operator_id, login, password
		FROM operators
		WHERE login = $1
	`, login).Scan(&operator.OperatorID, &operator.Login, &operator.Password)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}

	return &operator, nil
}

func (m *Manager) Close() error {
	return m.DB.Close()
}
