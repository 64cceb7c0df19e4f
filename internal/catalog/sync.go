package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/caiuswebs/luxe-backend/config"
	"github.com/caiuswebs/luxe-backend/internal/db"
	"github.com/caiuswebs/luxe-backend/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductSource is the provider-side price list.
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]models.ProviderProduct, error)
}

// Syncer periodically pulls the provider product list and upserts catalog packs.
// It only touches the packs table; orders snapshot their price at submission, so
// a price change mid-flight never affects an existing order.
type Syncer struct {
	Database db.Database
	Source   ProductSource
	Config   *config.Config
	Logger   *zap.SugaredLogger
	margin   decimal.Decimal
}

func NewSyncer(database db.Database, source ProductSource, cfg *config.Config, logger *zap.SugaredLogger) (*Syncer, error) {
	margin, err := decimal.NewFromString(cfg.PackMargin)
	if err != nil {
		return nil, fmt.Errorf("invalid pack margin %q: %w", cfg.PackMargin, err)
	}

	return &Syncer{
		Database: database,
		Source:   source,
		Config:   cfg,
		Logger:   logger,
		margin:   margin,
	}, nil
}

func (s *Syncer) StartCatalogSync(ctx context.Context) {
	ticker := time.NewTicker(s.Config.CatalogSyncInterval)
	defer ticker.Stop()

	s.SyncOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("context done")
			return
		case <-ticker.C:
			s.SyncOnce(ctx)
		}
	}
}

func (s *Syncer) SyncOnce(ctx context.Context) {
	products, err := s.Source.FetchProducts(ctx)
	if err != nil {
		s.Logger.Warnw("failed to fetch provider products", "error", err)
		return
	}

	for _, product := range products {
		pack := models.Pack{
			PackID:            product.ProductID,
			Name:              product.Name,
			ProviderProductID: product.ProductID,
			ProviderPrice:     product.Price,
			MarginAmount:      s.margin,
			FinalPrice:        product.Price.Add(s.margin),
			Active:            true,
		}
		if err := s.Database.UpsertPack(ctx, pack); err != nil {
			s.Logger.Warnw("failed to upsert pack", "packId", pack.PackID, "error", err)
		}
	}

	s.Logger.Infow("catalog synced", "packs", len(products))
}
