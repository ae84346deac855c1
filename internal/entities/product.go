package entities

import "time"

// Product is one catalog item of an ecommerce business.
type Product struct {
	ID          string
	BusinessID  string
	Name        string
	Description string
	Price       string
	Currency    string
	Color       string
	Size        string
}

// Interaction is the record emitted after each routed message. The engine
// does not own its analytics schema beyond this row.
type Interaction struct {
	BusinessID string
	CustomerID string
	Channel    string
	Intent     string
	ReplyLen   int
	CreatedAt  time.Time
}
