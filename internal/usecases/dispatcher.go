package usecases

import (
	"context"

	"go.uber.org/zap"

	"bizbot/internal/entities"
	"bizbot/internal/interfaces"
)

// IndustryDispatcher is the strategy table mapping each industry to its
// handler. Built once at startup; the generic handler is the mandatory
// default arm for IndustryOther and anything else unrecognized.
type IndustryDispatcher struct {
	handlers map[entities.Industry]interfaces.IndustryHandler
	generic  interfaces.IndustryHandler
	logger   *zap.Logger
}

// NewIndustryDispatcher wires the full handler table. catalog may be nil;
// the ecommerce handler then answers from templates only.
func NewIndustryDispatcher(bank *TemplateBank, catalog interfaces.Catalog, logger *zap.Logger) *IndustryDispatcher {
	generic := NewGenericHandler(bank, logger)
	return &IndustryDispatcher{
		handlers: map[entities.Industry]interfaces.IndustryHandler{
			entities.IndustryEcommerce:  NewEcommerceHandler(bank, catalog, generic, logger),
			entities.IndustryHealthcare: NewBookingHandler(entities.IndustryHealthcare, bank, generic),
			entities.IndustryEducation:  NewBookingHandler(entities.IndustryEducation, bank, generic),
			entities.IndustryRestaurant: NewRestaurantHandler(bank, generic),
			entities.IndustryRealEstate: NewRealEstateHandler(bank, generic),
		},
		generic: generic,
		logger:  logger,
	}
}

// Dispatch routes to the business's industry handler, defaulting to the
// generic handler for unknown or unset industries.
func (d *IndustryDispatcher) Dispatch(ctx context.Context, business *entities.BusinessConfig, customerID, rawText, intent string, bag entities.EntityBag) string {
	handler, ok := d.handlers[business.Industry]
	if !ok {
		handler = d.generic
	}
	return handler.Handle(ctx, business, customerID, rawText, intent, bag)
}
