package usecases

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"bizbot/internal/entities"
	"bizbot/internal/interfaces"
)

// templateVars builds the substitution set every handler passes to the bank.
func templateVars(business *entities.BusinessConfig, bag entities.EntityBag) map[string]string {
	vars := map[string]string{
		"business": business.Name,
	}
	for kind := range bag.Values {
		vars[kind] = strings.Join(bag.Get(kind), ", ")
	}
	if bag.Price != nil {
		vars["price_min"] = strconv.Itoa(bag.Price.Min)
		vars["price_max"] = strconv.Itoa(bag.Price.Max)
	}
	return vars
}

// GenericHandler answers purely from the template bank. It is both the
// default arm of the dispatcher and the fallback target for every concrete
// industry handler.
type GenericHandler struct {
	bank   *TemplateBank
	logger *zap.Logger
}

func NewGenericHandler(bank *TemplateBank, logger *zap.Logger) *GenericHandler {
	return &GenericHandler{bank: bank, logger: logger}
}

func (h *GenericHandler) Handle(_ context.Context, business *entities.BusinessConfig, _, _, intent string, bag entities.EntityBag) string {
	return h.bank.Render(string(business.Industry), intent, templateVars(business, bag))
}

// EcommerceHandler delegates product inquiries to the catalog sub-service
// when one is wired; everything else, and every catalog failure, falls
// through to the generic handler silently.
type EcommerceHandler struct {
	bank    *TemplateBank
	catalog interfaces.Catalog // optional capability, may be nil
	generic interfaces.IndustryHandler
	logger  *zap.Logger
}

func NewEcommerceHandler(bank *TemplateBank, catalog interfaces.Catalog, generic interfaces.IndustryHandler, logger *zap.Logger) *EcommerceHandler {
	return &EcommerceHandler{bank: bank, catalog: catalog, generic: generic, logger: logger}
}

func (h *EcommerceHandler) Handle(ctx context.Context, business *entities.BusinessConfig, customerID, rawText, intent string, bag entities.EntityBag) string {
	if h.catalog != nil && h.wantsProducts(intent, bag) {
		reply, err := searchCatalog(ctx, h.catalog, business.ID, rawText, bag)
		if err == nil {
			return reply
		}
		h.logger.Warn("catalog search failed, using template fallback",
			zap.String("business_id", business.ID),
			zap.String("intent", intent),
			zap.Error(err))
	}
	return h.generic.Handle(ctx, business, customerID, rawText, intent, bag)
}

// wantsProducts decides whether the message is asking about products. A
// greeting or unclassified message that names a product or color still
// counts; customers lead with "hola quiero zapatos rojos" all the time.
func (h *EcommerceHandler) wantsProducts(intent string, bag entities.EntityBag) bool {
	switch intent {
	case "product_inquiry", "price_inquiry", "availability":
		return true
	}
	return len(bag.Get("product_type")) > 0 || len(bag.Get("color")) > 0
}

// BookingHandler covers healthcare and education: service_type plus
// date/time entities folded into appointment-style templates.
type BookingHandler struct {
	industry entities.Industry
	bank     *TemplateBank
	generic  interfaces.IndustryHandler
}

func NewBookingHandler(industry entities.Industry, bank *TemplateBank, generic interfaces.IndustryHandler) *BookingHandler {
	return &BookingHandler{industry: industry, bank: bank, generic: generic}
}

func (h *BookingHandler) Handle(ctx context.Context, business *entities.BusinessConfig, customerID, rawText, intent string, bag entities.EntityBag) string {
	if intent == "appointment" || intent == "schedule" {
		vars := templateVars(business, bag)
		if vars["service_type"] == "" {
			vars["service_type"] = "tu consulta"
		}
		return h.bank.Render(string(h.industry), intent, vars)
	}
	return h.generic.Handle(ctx, business, customerID, rawText, intent, bag)
}

// RestaurantHandler folds date/time entities into reservation replies.
type RestaurantHandler struct {
	bank    *TemplateBank
	generic interfaces.IndustryHandler
}

func NewRestaurantHandler(bank *TemplateBank, generic interfaces.IndustryHandler) *RestaurantHandler {
	return &RestaurantHandler{bank: bank, generic: generic}
}

func (h *RestaurantHandler) Handle(ctx context.Context, business *entities.BusinessConfig, customerID, rawText, intent string, bag entities.EntityBag) string {
	if intent == "reservation" && (bag.First("date") != "" || bag.First("time") != "") {
		return h.bank.Render("restaurant", "reservation_confirm", templateVars(business, bag))
	}
	return h.generic.Handle(ctx, business, customerID, rawText, intent, bag)
}

// RealEstateHandler folds a parsed price range into property replies.
type RealEstateHandler struct {
	bank    *TemplateBank
	generic interfaces.IndustryHandler
}

func NewRealEstateHandler(bank *TemplateBank, generic interfaces.IndustryHandler) *RealEstateHandler {
	return &RealEstateHandler{bank: bank, generic: generic}
}

func (h *RealEstateHandler) Handle(ctx context.Context, business *entities.BusinessConfig, customerID, rawText, intent string, bag entities.EntityBag) string {
	if intent == "property_inquiry" && bag.Price != nil {
		return h.bank.Render("realestate", "property_budget", templateVars(business, bag))
	}
	return h.generic.Handle(ctx, business, customerID, rawText, intent, bag)
}
