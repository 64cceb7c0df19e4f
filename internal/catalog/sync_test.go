package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/caiuswebs/luxe-backend/config"
	"github.com/caiuswebs/luxe-backend/internal/db"
	"github.com/caiuswebs/luxe-backend/logging"
	"github.com/caiuswebs/luxe-backend/models"
	"github.com/shopspring/decimal"
)

type fakeSource struct {
	products []models.ProviderProduct
	err      error
}

func (f *fakeSource) FetchProducts(_ context.Context) ([]models.ProviderProduct, error) {
	return f.products, f.err
}

type fakePackStore struct {
	mu    sync.Mutex
	packs map[string]models.Pack
}

func newFakePackStore() *fakePackStore {
	return &fakePackStore{packs: make(map[string]models.Pack)}
}

func (f *fakePackStore) UpsertPack(_ context.Context, pack models.Pack) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.packs[pack.PackID] = pack
	return nil
}

func (f *fakePackStore) GetPack(_ context.Context, packID string) (*models.Pack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pack, ok := f.packs[packID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &pack, nil
}

func (f *fakePackStore) GetActivePacks(_ context.Context) ([]*models.Pack, error) { return nil, nil }
func (f *fakePackStore) HasPaymentReference(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (f *fakePackStore) CreateOrderWithReference(_ context.Context, _ models.Order) error {
	return nil
}
func (f *fakePackStore) GetOrder(_ context.Context, _ string) (*models.Order, error) {
	return nil, db.ErrNotFound
}
func (f *fakePackStore) ClaimOrderProcessing(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (f *fakePackStore) FinalizeOrder(_ context.Context, _ string, _ models.OrderStatus, _ string, _ string) (bool, error) {
	return false, nil
}
func (f *fakePackStore) PutOperator(_ context.Context, _ models.Operator) error { return nil }
func (f *fakePackStore) GetOperator(_ context.Context, _ string) (*models.Operator, error) {
	return nil, db.ErrNotFound
}
func (f *fakePackStore) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		CatalogSyncInterval: time.Minute,
		PackMargin:          "10",
	}
}

func TestSyncOnceUpsertsPacksWithMargin(t *testing.T) {
	store := newFakePackStore()
	source := &fakeSource{products: []models.ProviderProduct{
		{ProductID: "mlbb_86_diamond", Name: "86 Diamonds", Price: decimal.NewFromInt(100)},
		{ProductID: "mlbb_172_diamond", Name: "172 Diamonds", Price: decimal.RequireFromString("199.50")},
	}}

	syncer, err := NewSyncer(store, source, testConfig(), logging.GetSugaredLogger())
	if err != nil {
		t.Fatalf("failed to create syncer: %v", err)
	}

	syncer.SyncOnce(context.Background())

	pack, err := store.GetPack(context.Background(), "mlbb_86_diamond")
	if err != nil {
		t.Fatalf("expected pack to be upserted: %v", err)
	}
	if !pack.FinalPrice.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("expected final price 110, got %s", pack.FinalPrice)
	}
	if !pack.Active {
		t.Fatalf("expected synced pack to be active")
	}

	pack, err = store.GetPack(context.Background(), "mlbb_172_diamond")
	if err != nil {
		t.Fatalf("expected pack to be upserted: %v", err)
	}
	if !pack.FinalPrice.Equal(decimal.RequireFromString("209.50")) {
		t.Fatalf("expected final price 209.50, got %s", pack.FinalPrice)
	}
}

func TestSyncOnceProviderErrorLeavesCatalogAlone(t *testing.T) {
	store := newFakePackStore()
	source := &fakeSource{err: errors.New("provider down")}

	syncer, err := NewSyncer(store, source, testConfig(), logging.GetSugaredLogger())
	if err != nil {
		t.Fatalf("failed to create syncer: %v", err)
	}

	syncer.SyncOnce(context.Background())

	if len(store.packs) != 0 {
		t.Fatalf("expected no packs after a failed sync, got %d", len(store.packs))
	}
}

func TestNewSyncerRejectsBadMargin(t *testing.T) {
	cfg := testConfig()
	cfg.PackMargin = "not-a-number"

	_, err := NewSyncer(newFakePackStore(), &fakeSource{}, cfg, logging.GetSugaredLogger())
	if err == nil {
		t.Fatalf("expected an error for an unparsable margin")
	}
}
