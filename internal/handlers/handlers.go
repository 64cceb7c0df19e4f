package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/caiuswebs/luxe-backend/config"
	"github.com/caiuswebs/luxe-backend/internal/auth"
	"github.com/caiuswebs/luxe-backend/internal/db"
	"github.com/caiuswebs/luxe-backend/internal/metrics"
	"github.com/caiuswebs/luxe-backend/internal/orders"
	"github.com/caiuswebs/luxe-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PlayerVerifier is the advisory identifier check. Errors mean "cannot confirm",
// never "invalid".
type PlayerVerifier interface {
	VerifyPlayer(ctx context.Context, accountID string, zoneID string) (models.ProviderValidateResponse, error)
}

type Handler struct {
	Config   *config.Config
	Database db.Database
	Orders   *orders.Service
	Verifier PlayerVerifier
	Metrics  *metrics.Registry
	Logger   *zap.SugaredLogger
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("luxe backend running"))
}

func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding submit request", zap.Error(err))
		http.Error(w, "error decoding request", http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrDuplicateReference):
			h.Metrics.DuplicateReferences.Inc()
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, orders.ErrInvalidReferenceFormat),
			errors.Is(err, orders.ErrUnknownPack),
			errors.Is(err, orders.ErrPriceMismatch):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.Logger.Errorw("error submitting order", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	h.Metrics.OrdersSubmitted.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.SubmitOrderResponse{OrderID: order.OrderID})
}

func (h *Handler) ProcessOrder(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding process request", zap.Error(err))
		http.Error(w, "error decoding request", http.StatusBadRequest)
		return
	}

	start := time.Now()
	order, err := h.Orders.Process(r.Context(), req.OrderID, req.Action)
	if req.Action == orders.ActionApprove {
		h.Metrics.FulfillmentLatencySec.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrUnknownAction):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, orders.ErrOrderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, orders.ErrOrderAlreadyFinalized):
			if order == nil {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			// Report the existing terminal status so repeated clicks are harmless.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(models.ProcessOrderResponse{
				Status:           order.Status,
				ProviderOrderRef: order.ProviderOrderRef,
			})
		default:
			h.Logger.Errorw("error processing order", "orderId", req.OrderID, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	switch order.Status {
	case models.OrderCompleted:
		h.Metrics.OrdersCompleted.Inc()
	case models.OrderRejected:
		h.Metrics.OrdersRejected.Inc()
	case models.OrderFulfillmentError:
		h.Metrics.FulfillmentErrors.Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ProcessOrderResponse{
		Status:           order.Status,
		ProviderOrderRef: order.ProviderOrderRef,
	})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.Database.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		h.Logger.Errorw("error loading order", "orderId", orderID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func (h *Handler) Packs(w http.ResponseWriter, r *http.Request) {
	packs, err := h.Database.GetActivePacks(r.Context())
	if err != nil {
		h.Logger.Errorw("error listing packs", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(packs)
}

// VerifyID is best-effort: a provider failure yields "unknown", and the result
// never blocks order submission.
func (h *Handler) VerifyID(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyIDRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "error decoding request", http.StatusBadRequest)
		return
	}
	if req.AccountID == "" || req.ZoneID == "" {
		http.Error(w, "accountId and zoneId are required", http.StatusBadRequest)
		return
	}

	resp := models.VerifyIDResponse{Valid: models.VerifyUnknown}

	result, err := h.Verifier.VerifyPlayer(r.Context(), req.AccountID, req.ZoneID)
	if err != nil {
		h.Logger.Warnw("identifier verification unavailable", "error", err)
	} else if result.Success {
		if result.Valid {
			resp.Valid = models.VerifyValid
			resp.DisplayName = result.Username
		} else {
			resp.Valid = models.VerifyInvalid
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// OperatorRegister creates an operator account. Registration is disabled unless
// a signup key is configured, and the request must present it: operator tokens
// guard order processing, so minting one can never be open to the public.
func (h *Handler) OperatorRegister(w http.ResponseWriter, r *http.Request) {
	if h.Config.OperatorSignupKey == "" {
		http.Error(w, "operator registration is disabled", http.StatusForbidden)
		return
	}
	signupKey := []byte(r.Header.Get("X-Signup-Key"))
	if subtle.ConstantTimeCompare(signupKey, []byte(h.Config.OperatorSignupKey)) != 1 {
		h.Logger.Warn("operator registration attempt with a bad signup key")
		http.Error(w, "invalid signup key", http.StatusForbidden)
		return
	}

	var credentials models.Credentials

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		h.Logger.Error("error reading decoded credentials", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), 14)
	if err != nil {
		h.Logger.Info("password encryption error", zap.Error(err))
		http.Error(w, "internal error", http.StatusBadRequest)
		return
	}

	operator := models.Operator{
		OperatorID: uuid.New().String(),
		Login:      credentials.Login,
		Password:   string(passwordBytes),
	}

	if err = h.Database.PutOperator(r.Context(), operator); err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			http.Error(w, "login already exists", http.StatusConflict)
			return
		}
		h.Logger.Error("error when trying to put credentials to database", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := auth.BuildJWT(h.Config.JWTSecret, operator.OperatorID)
	if err != nil {
		h.Logger.Error("error building JWT", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) OperatorLogin(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		h.Logger.Error("error reading decoded credentials", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	operator, err := h.Database.GetOperator(r.Context(), credentials.Login)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			h.Logger.Error("login does not exist", zap.Error(err))
			http.Error(w, "login does not exist", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(credentials.Password))
	if err != nil {
		h.Logger.Error("invalid login or password", zap.Error(err))
		http.Error(w, "invalid login or password", http.StatusUnauthorized)
		return
	}

	token, err := auth.BuildJWT(h.Config.JWTSecret, operator.OperatorID)
	if err != nil {
		h.Logger.Error("error building JWT", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}
