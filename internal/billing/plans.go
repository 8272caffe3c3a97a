package billing

import (
	"github.com/newswire-api/internal/config"
	"github.com/newswire-api/internal/models"
)

// PlanCatalog maps internal subscription tiers to provider price ids and
// back. The reverse direction is what the webhook reconciler uses to turn
// an invoice or subscription price into a tier.
type PlanCatalog struct {
	priceByPlan map[string]string
	planByPrice map[string]string
}

// NewPlanCatalog builds the catalog from configuration
func NewPlanCatalog(cfg *config.BillingConfig) *PlanCatalog {
	c := &PlanCatalog{
		priceByPlan: make(map[string]string),
		planByPrice: make(map[string]string),
	}
	c.add(models.TierStandard, cfg.StandardPrice)
	c.add(models.TierPremium, cfg.PremiumPrice)
	c.add(models.TierPro, cfg.ProPrice)
	return c
}

func (c *PlanCatalog) add(plan, priceID string) {
	if priceID == "" {
		return
	}
	c.priceByPlan[plan] = priceID
	c.planByPrice[priceID] = plan
}

// PriceForPlan returns the provider price id for a paid plan
func (c *PlanCatalog) PriceForPlan(plan string) (string, bool) {
	price, ok := c.priceByPlan[plan]
	return price, ok
}

// PlanForPrice reverse-maps a provider price id to the internal tier
func (c *PlanCatalog) PlanForPrice(priceID string) (string, bool) {
	plan, ok := c.planByPrice[priceID]
	return plan, ok
}

// IsPaidPlan reports whether a plan can be checked out
func (c *PlanCatalog) IsPaidPlan(plan string) bool {
	_, ok := c.priceByPlan[plan]
	return ok
}
