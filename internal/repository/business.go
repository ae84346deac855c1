package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"bizbot/internal/entities"
)

// ErrBusinessNotFound covers both a missing row and an inactive business;
// the engine treats the two identically for routing.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessRepository is the read-through tenant store. Writes happen
// out-of-band through the admin tooling, so a short-TTL cache needs no
// invalidation path.
type BusinessRepository struct {
	db     *pgxpool.Pool
	cache  *expirable.LRU[string, *entities.BusinessConfig]
	logger *zap.Logger
}

func NewBusinessRepository(db *pgxpool.Pool, cacheTTL time.Duration, logger *zap.Logger) *BusinessRepository {
	return &BusinessRepository{
		db:     db,
		cache:  expirable.NewLRU[string, *entities.BusinessConfig](512, nil, cacheTTL),
		logger: logger,
	}
}

// Resolve looks up an active business by id. The settings JSONB is decoded
// here; callers never see a serialized blob.
func (r *BusinessRepository) Resolve(ctx context.Context, businessID string) (*entities.BusinessConfig, error) {
	if cached, ok := r.cache.Get(businessID); ok {
		return cached, nil
	}

	var (
		cfg         entities.BusinessConfig
		industry    string
		rawSettings []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, name, industry, settings
		FROM businesses
		WHERE id = $1 AND status = 'active'
	`, businessID).Scan(&cfg.ID, &cfg.Name, &industry, &rawSettings)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		// store unavailability is also "not found" for routing; the real
		// cause still reaches the logs
		r.logger.Warn("businesses query failed",
			zap.String("business_id", businessID),
			zap.Error(err))
		return nil, ErrBusinessNotFound
	}

	cfg.Industry = entities.ParseIndustry(industry)
	cfg.Active = true
	cfg.Settings = map[string]interface{}{}
	if len(rawSettings) > 0 {
		if err := json.Unmarshal(rawSettings, &cfg.Settings); err != nil {
			return nil, fmt.Errorf("decode settings for business %s: %w", businessID, err)
		}
	}

	r.cache.Add(businessID, &cfg)
	return &cfg, nil
}

// CacheLen reports current cache occupancy (ops visibility).
func (r *BusinessRepository) CacheLen() int {
	return r.cache.Len()
}
