package entities

import "time"

// InboundMessage is one normalized customer message as delivered by a
// transport adapter (WhatsApp Cloud webhook, Telegram polling, web widget).
// Created once per webhook event and consumed once.
type InboundMessage struct {
	BusinessID string
	CustomerID string
	Text       string
	Channel    string // e.g., "whatsapp", "web", "telegram"
	ReceivedAt time.Time
}

// ClassificationResult is the intent label plus which tier produced it.
type ClassificationResult struct {
	Intent string
	Tier   string // "common" (trained classifier) or "industry" (regex patterns)
}

// IntentUnknown is the sentinel returned when neither classifier tier matches.
const IntentUnknown = "unknown"

// PriceRange is the parsed form of a "<min> a <max>" price expression.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// EntityBag holds extracted entities keyed by kind ("color", "product_type",
// "date", ...). Surface matches are string lists; price_range is kept as a
// parsed value. Kinds with no match are simply absent.
type EntityBag struct {
	Values map[string][]string
	Price  *PriceRange
}

func NewEntityBag() EntityBag {
	return EntityBag{Values: make(map[string][]string)}
}

// Get returns the matches for a kind, or nil when it was not extracted.
func (b EntityBag) Get(kind string) []string {
	return b.Values[kind]
}

// First returns the first match for a kind, or "" when absent.
func (b EntityBag) First(kind string) string {
	if v := b.Values[kind]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Add appends a matched surface string for a kind.
func (b EntityBag) Add(kind, value string) {
	b.Values[kind] = append(b.Values[kind], value)
}
