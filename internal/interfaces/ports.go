package interfaces

import (
	"context"

	"bizbot/internal/entities"
)

// BusinessConfigProvider resolves tenant configuration by business id.
// Implementations must return ErrBusinessNotFound (repository package) for
// missing or inactive businesses rather than a zero-value config.
type BusinessConfigProvider interface {
	Resolve(ctx context.Context, businessID string) (*entities.BusinessConfig, error)
}

// IndustryHandler turns a classified message into a reply for one industry.
type IndustryHandler interface {
	Handle(ctx context.Context, business *entities.BusinessConfig, customerID, rawText, intent string, bag entities.EntityBag) string
}

// Catalog is the optional product-search capability used by the ecommerce
// handler. Absent (nil) catalogs are valid; the handler falls back to the
// template chain.
type Catalog interface {
	SearchByColor(ctx context.Context, businessID, color string) ([]entities.Product, error)
	SearchByKeywords(ctx context.Context, businessID string, keywords []string) ([]entities.Product, error)
}

// Messenger sends a reply back over one outbound channel.
type Messenger interface {
	SendMessage(to, content string) error
}

// InteractionSink records one routed interaction for analytics. Best-effort;
// callers log failures and move on.
type InteractionSink interface {
	Record(ctx context.Context, rec entities.Interaction) error
}
