package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTemplate(t *testing.T) {
	vars := map[string]string{"business": "Zapatería Luna", "color": "rojo"}

	assert.Equal(t, "Bienvenido a Zapatería Luna", FormatTemplate("Bienvenido a {business}", vars))
	assert.Equal(t, "rojo y rojo", FormatTemplate("{color} y {color}", vars))

	// missing variables stay verbatim, never blanked
	assert.Equal(t, "Hola {customer}, soy Zapatería Luna",
		FormatTemplate("Hola {customer}, soy {business}", vars))

	// idempotent on missing keys
	once := FormatTemplate("Hola {customer}", vars)
	assert.Equal(t, once, FormatTemplate(once, vars))

	assert.Equal(t, "", FormatTemplate("", vars))
	assert.Equal(t, "sin variables", FormatTemplate("sin variables", nil))
}

func TestTemplateBankFallbackChain(t *testing.T) {
	bank := NewTemplateBank(&EngineConfig{
		Templates: map[string]map[string]string{
			"ecommerce":  {"greeting": "hola tienda", "fallback": "fallback tienda"},
			"restaurant": {"greeting": "hola restaurante"},
		},
		GlobalFallback: "fallback global",
	})

	// direct hit
	assert.Equal(t, "hola tienda", bank.Lookup("ecommerce", "greeting"))
	// intent miss -> industry fallback
	assert.Equal(t, "fallback tienda", bank.Lookup("ecommerce", "order_status"))
	// industry without fallback -> global
	assert.Equal(t, "fallback global", bank.Lookup("restaurant", "reservation"))
	// unknown industry -> global
	assert.Equal(t, "fallback global", bank.Lookup("bogus", "anything"))
	assert.Equal(t, "fallback global", bank.Lookup("", ""))
}

func TestTemplateBankNeverEmpty(t *testing.T) {
	bank := NewTemplateBank(&EngineConfig{GlobalFallback: "fallback global"})
	for _, industry := range []string{"ecommerce", "healthcare", "other", "???"} {
		for _, intent := range []string{"unknown", "greeting", ""} {
			assert.NotEmpty(t, bank.Lookup(industry, intent))
		}
	}
}
