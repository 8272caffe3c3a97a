package models

import (
	"time"
)

// Subscription tiers
const (
	TierFree     = "free"
	TierStandard = "standard"
	TierPremium  = "premium"
	TierPro      = "pro"
)

// ValidTiers defines allowed subscription tiers
var ValidTiers = map[string]bool{
	TierFree:     true,
	TierStandard: true,
	TierPremium:  true,
	TierPro:      true,
}

// PaymentRecord logs one successful charge. Records are append-only and
// keyed on the provider's transaction id so webhook redelivery cannot
// produce a duplicate.
type PaymentRecord struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	ProviderTxnID  string    `json:"provider_txn_id" db:"provider_txn_id"`
	Plan           string    `json:"plan" db:"plan"`
	Amount         int64     `json:"amount" db:"amount"` // smallest currency unit
	Currency       string    `json:"currency" db:"currency"`
	Method         string    `json:"method" db:"method"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CheckoutRequest is the payload for starting a subscription checkout
type CheckoutRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// CheckoutResponse carries the provider's hosted checkout URL
type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}
