package usecases

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// FormatTemplate substitutes {key} placeholders. Placeholders with no
// matching variable stay verbatim so a missing variable never corrupts an
// otherwise valid message.
func FormatTemplate(template string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(ph string) string {
		key := ph[1 : len(ph)-1]
		if v, ok := vars[key]; ok {
			return v
		}
		return ph
	})
}

// TemplateBank resolves reply templates with the three-level fallback chain:
// (industry, intent) -> industry "fallback" -> global fallback. Lookup can
// never come back empty.
type TemplateBank struct {
	templates      map[string]map[string]string
	globalFallback string
}

func NewTemplateBank(cfg *EngineConfig) *TemplateBank {
	return &TemplateBank{
		templates:      cfg.Templates,
		globalFallback: cfg.GlobalFallback,
	}
}

// Lookup returns the template for (industry, intent), falling through the
// chain. The returned string is always non-empty.
func (t *TemplateBank) Lookup(industry, intent string) string {
	if byIntent, ok := t.templates[industry]; ok {
		if tmpl := strings.TrimSpace(byIntent[intent]); tmpl != "" {
			return tmpl
		}
		if tmpl := strings.TrimSpace(byIntent["fallback"]); tmpl != "" {
			return tmpl
		}
	}
	return t.globalFallback
}

// Render is Lookup plus placeholder substitution.
func (t *TemplateBank) Render(industry, intent string, vars map[string]string) string {
	return FormatTemplate(t.Lookup(industry, intent), vars)
}
