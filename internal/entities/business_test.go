package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIndustry(t *testing.T) {
	assert.Equal(t, IndustryEcommerce, ParseIndustry("ecommerce"))
	assert.Equal(t, IndustryRealEstate, ParseIndustry("realestate"))
	assert.Equal(t, IndustryOther, ParseIndustry("other"))

	// anything unrecognized routes as other, never an error
	assert.Equal(t, IndustryOther, ParseIndustry(""))
	assert.Equal(t, IndustryOther, ParseIndustry("Ecommerce"))
	assert.Equal(t, IndustryOther, ParseIndustry("retail"))
}

func TestBusinessConfigSetting(t *testing.T) {
	var nilBiz *BusinessConfig
	assert.Equal(t, "", nilBiz.Setting("anything"))

	biz := &BusinessConfig{Settings: map[string]interface{}{
		"welcome": "hola",
		"count":   3,
	}}
	assert.Equal(t, "hola", biz.Setting("welcome"))
	assert.Equal(t, "", biz.Setting("count"), "non-string settings read as empty")
	assert.Equal(t, "", biz.Setting("missing"))
}

func TestEntityBag(t *testing.T) {
	bag := NewEntityBag()
	assert.Nil(t, bag.Get("color"))
	assert.Equal(t, "", bag.First("color"))

	bag.Add("color", "rojo")
	bag.Add("color", "azul")
	assert.Equal(t, []string{"rojo", "azul"}, bag.Get("color"))
	assert.Equal(t, "rojo", bag.First("color"))
}
