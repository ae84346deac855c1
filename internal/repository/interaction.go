package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bizbot/internal/entities"
)

// InteractionRepository appends one row per routed message. The engine only
// writes here; aggregation belongs to the reporting side.
type InteractionRepository struct {
	db *pgxpool.Pool
}

func NewInteractionRepository(db *pgxpool.Pool) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) Record(ctx context.Context, rec entities.Interaction) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO interactions (business_id, customer_id, channel, intent, reply_len, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.BusinessID, rec.CustomerID, rec.Channel, rec.Intent, rec.ReplyLen, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}
