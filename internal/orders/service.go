package orders

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/caiuswebs/luxe-backend/internal/db"
	"github.com/caiuswebs/luxe-backend/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

var referencePattern = regexp.MustCompile(`^[A-Za-z0-9]{12,18}$`)

// Fulfiller is the external fulfillment provider. Its outcome is recorded
// durably whether the call succeeds, fails or times out.
type Fulfiller interface {
	Fulfill(ctx context.Context, productID string, accountID string, zoneID string) (models.FulfillResult, error)
}

type Service struct {
	Database db.Database
	Provider Fulfiller
	Logger   *zap.SugaredLogger
}

func NewService(database db.Database, provider Fulfiller, logger *zap.SugaredLogger) *Service {
	return &Service{
		Database: database,
		Provider: provider,
		Logger:   logger,
	}
}

// Submit validates and persists a new order. The price is snapshotted from the
// catalog at submission time and the payment reference is locked atomically with
// the order write. The fulfillment provider is never contacted here.
func (s *Service) Submit(ctx context.Context, req models.SubmitOrderRequest) (*models.Order, error) {
	if !referencePattern.MatchString(req.PaymentReference) {
		return nil, ErrInvalidReferenceFormat
	}

	taken, err := s.Database.HasPaymentReference(ctx, req.PaymentReference)
	if err != nil {
		return nil, fmt.Errorf("failed to check payment reference: %w", err)
	}
	if taken {
		return nil, ErrDuplicateReference
	}

	pack, err := s.Database.GetPack(ctx, req.PackID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrUnknownPack
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pack: %w", err)
	}
	if !pack.Active {
		return nil, ErrUnknownPack
	}

	// Exact decimal equality: a stale or tampered client price must fail even on
	// rounding-level differences.
	if !req.ClaimedPrice.Equal(pack.FinalPrice) {
		return nil, ErrPriceMismatch
	}

	order := models.Order{
		OrderID:          uuid.New().String(),
		AccountID:        req.AccountID,
		ZoneID:           req.ZoneID,
		PackID:           req.PackID,
		ClaimedPrice:     req.ClaimedPrice,
		PaymentReference: req.PaymentReference,
		SubmitterID:      req.SubmitterID,
		Status:           models.OrderPending,
		CreatedAt:        time.Now(),
	}

	if err = s.Database.CreateOrderWithReference(ctx, order); err != nil {
		if errors.Is(err, db.ErrDuplicateReference) {
			// Lost the race to a concurrent submission with the same reference.
			return nil, ErrDuplicateReference
		}
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.Logger.Infow("order submitted", "orderId", order.OrderID, "packId", order.PackID)

	return &order, nil
}

// Process transitions a PENDING order to a terminal state. Approval invokes the
// fulfillment provider exactly once per order; the outcome is written to the
// ledger before it is reported back.
func (s *Service) Process(ctx context.Context, orderID string, action string) (*models.Order, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, ErrUnknownAction
	}

	order, err := s.Database.GetOrder(ctx, orderID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if order.Status != models.OrderPending {
		return order, ErrOrderAlreadyFinalized
	}

	claimed, err := s.Database.ClaimOrderProcessing(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim order: %w", err)
	}
	if !claimed {
		// A concurrent Process call owns this order; its outcome will be recorded.
		return order, ErrOrderAlreadyFinalized
	}

	if action == ActionReject {
		if err := s.finalize(ctx, order, models.OrderRejected, "", ""); err != nil {
			return nil, err
		}
		s.Logger.Infow("order rejected", "orderId", orderID)
		return order, nil
	}

	pack, err := s.Database.GetPack(ctx, order.PackID)
	if errors.Is(err, db.ErrNotFound) {
		detail := fmt.Sprintf("pack %s missing from catalog", order.PackID)
		if err := s.finalize(ctx, order, models.OrderFulfillmentError, "", detail); err != nil {
			return nil, err
		}
		return order, nil
	}
	if err != nil {
		// A transient ledger error must not consume the one terminal transition.
		return nil, fmt.Errorf("failed to resolve pack: %w", err)
	}

	// A client disconnect must not abort an issued fulfillment call: the result
	// has to be durably recorded either way.
	result, err := s.Provider.Fulfill(context.WithoutCancel(ctx), pack.ProviderProductID, order.AccountID, order.ZoneID)
	if err != nil {
		detail := fmt.Sprintf("fulfillment call failed: %v", err)
		s.Logger.Errorw("fulfillment call failed", "orderId", orderID, "error", err)
		if err := s.finalize(ctx, order, models.OrderFulfillmentError, "", detail); err != nil {
			return nil, err
		}
		return order, nil
	}

	if !result.Success {
		detail := fmt.Sprintf("provider rejected fulfillment: %s", result.Message)
		s.Logger.Warnw("provider rejected fulfillment", "orderId", orderID, "message", result.Message)
		if err := s.finalize(ctx, order, models.OrderFulfillmentError, "", detail); err != nil {
			return nil, err
		}
		return order, nil
	}

	if err := s.finalize(ctx, order, models.OrderCompleted, result.ProviderRef, ""); err != nil {
		return nil, err
	}
	s.Logger.Infow("order completed", "orderId", orderID, "providerRef", result.ProviderRef)

	return order, nil
}

func (s *Service) finalize(ctx context.Context, order *models.Order, status models.OrderStatus, providerRef string, errorDetail string) error {
	ok, err := s.Database.FinalizeOrder(ctx, order.OrderID, status, providerRef, errorDetail)
	if err != nil {
		return fmt.Errorf("failed to finalize order: %w", err)
	}
	if !ok {
		return ErrOrderAlreadyFinalized
	}

	order.Status = status
	order.ProviderOrderRef = providerRef
	order.ErrorDetail = errorDetail

	return nil
}
