package db

import (
	"context"
	"errors"

	"github.com/caiuswebs/luxe-backend/models"
)

var (
	// ErrDuplicateReference is returned by CreateOrderWithReference when the
	// payment reference lock already exists (including when the lock was created
	// between the caller's duplicate pre-check and the write).
	ErrDuplicateReference = errors.New("payment reference already claimed")
	ErrNotFound           = errors.New("not found")
)

type Database interface {
	GetPack(ctx context.Context, packID string) (*models.Pack, error)
	GetActivePacks(ctx context.Context) ([]*models.Pack, error)
	UpsertPack(ctx context.Context, pack models.Pack) error

	HasPaymentReference(ctx context.Context, reference string) (bool, error)
	CreateOrderWithReference(ctx context.Context, order models.Order) error

	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	ClaimOrderProcessing(ctx context.Context, orderID string) (bool, error)
	FinalizeOrder(ctx context.Context, orderID string, status models.OrderStatus, providerRef string, errorDetail string) (bool, error)

	PutOperator(ctx context.Context, operator models.Operator) error
	GetOperator(ctx context.Context, login string) (*models.Operator, error)

	Close() error
}
