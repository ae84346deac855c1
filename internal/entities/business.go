package entities

// Industry is the closed category driving handler and intent selection.
type Industry string

const (
	IndustryEcommerce  Industry = "ecommerce"
	IndustryHealthcare Industry = "healthcare"
	IndustryEducation  Industry = "education"
	IndustryRestaurant Industry = "restaurant"
	IndustryRealEstate Industry = "realestate"
	IndustryOther      Industry = "other"
)

// ParseIndustry maps a stored industry string onto the closed enumeration.
// Anything unrecognized routes as IndustryOther, never an error.
func ParseIndustry(s string) Industry {
	switch Industry(s) {
	case IndustryEcommerce, IndustryHealthcare, IndustryEducation,
		IndustryRestaurant, IndustryRealEstate, IndustryOther:
		return Industry(s)
	}
	return IndustryOther
}

// BusinessConfig is the tenant record the engine reads per message. It is
// owned by the external admin tooling; the engine never writes it.
type BusinessConfig struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Industry Industry               `json:"industry"`
	Settings map[string]interface{} `json:"settings"` // decoded JSONB, never a raw string
	Active   bool                   `json:"active"`
}

// Setting returns a string-typed setting value, or "" when absent or not a
// string. Handlers treat missing settings as "not configured".
func (b *BusinessConfig) Setting(key string) string {
	if b == nil || b.Settings == nil {
		return ""
	}
	if s, ok := b.Settings[key].(string); ok {
		return s
	}
	return ""
}
