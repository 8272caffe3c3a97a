package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newswire-api/internal/billing"
	"github.com/newswire-api/internal/config"
	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/notify"
	"github.com/newswire-api/internal/repository"
	"github.com/rs/zerolog"
)

// ErrBadEvent marks a webhook payload that is malformed beyond recovery.
// The provider does not retry 4xx payload errors, so these are rejected
// without any store interaction.
var ErrBadEvent = errors.New("malformed webhook event")

// billingService is the concrete implementation of BillingService
type billingService struct {
	repo     repository.BillingRepository
	users    repository.UserRepository
	catalog  *billing.PlanCatalog
	checkout billing.CheckoutClient
	mailer   notify.Mailer
	cfg      *config.BillingConfig
	log      zerolog.Logger
}

// newBillingService creates a new BillingService
func newBillingService(
	repo repository.BillingRepository,
	users repository.UserRepository,
	catalog *billing.PlanCatalog,
	checkout billing.CheckoutClient,
	mailer notify.Mailer,
	cfg *config.BillingConfig,
	log zerolog.Logger,
) BillingService {
	return &billingService{
		repo:     repo,
		users:    users,
		catalog:  catalog,
		checkout: checkout,
		mailer:   mailer,
		cfg:      cfg,
		log:      log.With().Str("service", "billing").Logger(),
	}
}

// CreateCheckoutSession starts a hosted checkout for a paid plan and records
// the provider customer ref on the user
func (s *billingService) CreateCheckoutSession(ctx context.Context, userID string, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	if !models.ValidTiers[req.Plan] {
		return nil, &ValidationError{Field: "plan", Message: "unknown plan"}
	}
	if !s.catalog.IsPaidPlan(req.Plan) {
		return nil, &ValidationError{Field: "plan", Message: "must be a paid plan"}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	priceID, _ := s.catalog.PriceForPlan(req.Plan)
	session, err := s.checkout.CreateSession(ctx, user.ID, user.Email, priceID)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	if session.CustomerRef != "" {
		if err := s.repo.SetCustomerRef(ctx, user.ID, session.CustomerRef); err != nil {
			return nil, fmt.Errorf("failed to record customer ref: %w", err)
		}
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("plan", req.Plan).
		Str("session_id", session.SessionID).
		Msg("Checkout session created")

	return &models.CheckoutResponse{SessionID: session.SessionID, URL: session.URL}, nil
}

// HandleWebhook verifies and applies one provider event.
//
// Error contract: billing.ErrInvalidSignature and ErrBadEvent mean the
// request was rejected with zero store writes (handler answers 4xx, the
// provider does not retry); any other error means the transaction failed
// and the handler answers 5xx so the provider retries. Unknown event types
// and events whose refs resolve to no user return nil; they are
// acknowledged so harmless deliveries cannot cause retry storms.
func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if err := billing.VerifySignature(payload, signatureHeader, s.cfg.WebhookSecret, s.cfg.SigTolerance, time.Now()); err != nil {
		return err
	}

	event, err := billing.ParseEvent(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}

	log := s.log.With().Str("event_id", event.ID).Str("event_type", event.Type).Logger()

	switch event.Type {
	case billing.EventCheckoutCompleted:
		return s.applyCheckoutCompleted(ctx, event, log)
	case billing.EventInvoicePaid:
		return s.applyInvoicePaid(ctx, event, log)
	case billing.EventSubscriptionUpdated:
		return s.applySubscriptionUpdated(ctx, event, log)
	case billing.EventSubscriptionDeleted:
		return s.applySubscriptionDeleted(ctx, event, log)
	default:
		log.Info().Msg("Ignoring unhandled webhook event type")
		return nil
	}
}

func (s *billingService) applyCheckoutCompleted(ctx context.Context, event *billing.Event, log zerolog.Logger) error {
	var session billing.CheckoutSession
	if err := billing.ParseObject(event, &session); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}

	userID := session.Metadata["user_id"]
	if userID == "" {
		return fmt.Errorf("%w: checkout session has no user_id metadata", ErrBadEvent)
	}

	err := s.repo.CompleteCheckout(ctx, userID, session.Customer, session.Subscription, "active")
	if err == repository.ErrNotFound {
		log.Warn().Str("user_id", userID).Msg("Checkout session references unknown user, acknowledging")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("user_id", userID).Msg("Checkout completed")
	return nil
}

func (s *billingService) applyInvoicePaid(ctx context.Context, event *billing.Event, log zerolog.Logger) error {
	var invoice billing.Invoice
	if err := billing.ParseObject(event, &invoice); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	if invoice.ID == "" || invoice.Customer == "" {
		return fmt.Errorf("%w: invoice missing id or customer", ErrBadEvent)
	}

	plan, ok := s.catalog.PlanForPrice(invoice.PriceID())
	if !ok {
		log.Warn().Str("price_id", invoice.PriceID()).Msg("Invoice references unknown price, acknowledging")
		return nil
	}

	method := invoice.PaymentMethodDetails.Type
	if method == "" {
		method = "card"
	}

	rec := &models.PaymentRecord{
		ID:            uuid.New().String(),
		ProviderTxnID: invoice.ID,
		Plan:          plan,
		Amount:        invoice.AmountPaid,
		Currency:      invoice.Currency,
		Method:        method,
		Status:        "succeeded",
		CreatedAt:     time.Now(),
	}

	inserted, err := s.repo.RecordInvoicePaid(ctx, invoice.Customer, plan, "active", rec)
	if err == repository.ErrNotFound {
		log.Warn().Str("customer_ref", invoice.Customer).Msg("Invoice references unknown customer, acknowledging")
		return nil
	}
	if err != nil {
		return err
	}
	if !inserted {
		log.Info().Str("provider_txn_id", invoice.ID).Msg("Payment already recorded, redelivery ignored")
		return nil
	}

	log.Info().
		Str("provider_txn_id", invoice.ID).
		Str("plan", plan).
		Int64("amount", invoice.AmountPaid).
		Msg("Payment recorded")

	if s.cfg.ReceiptsEnable {
		s.sendReceipt(ctx, invoice.Customer, rec, log)
	}
	return nil
}

func (s *billingService) applySubscriptionUpdated(ctx context.Context, event *billing.Event, log zerolog.Logger) error {
	var sub billing.Subscription
	if err := billing.ParseObject(event, &sub); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	if sub.ID == "" {
		return fmt.Errorf("%w: subscription missing id", ErrBadEvent)
	}

	tier := models.TierFree
	if sub.Status != "canceled" {
		plan, ok := s.catalog.PlanForPrice(sub.PriceID())
		if !ok {
			log.Warn().Str("price_id", sub.PriceID()).Msg("Subscription references unknown price, acknowledging")
			return nil
		}
		tier = plan
	}

	err := s.repo.UpdateSubscription(ctx, sub.ID, tier, sub.Status)
	if err == repository.ErrNotFound {
		log.Warn().Str("subscription_ref", sub.ID).Msg("Subscription update references unknown user, acknowledging")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("tier", tier).Str("status", sub.Status).Msg("Subscription updated")
	return nil
}

func (s *billingService) applySubscriptionDeleted(ctx context.Context, event *billing.Event, log zerolog.Logger) error {
	var sub billing.Subscription
	if err := billing.ParseObject(event, &sub); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	if sub.ID == "" {
		return fmt.Errorf("%w: subscription missing id", ErrBadEvent)
	}

	status := sub.Status
	if status == "" {
		status = "canceled"
	}

	err := s.repo.UpdateSubscription(ctx, sub.ID, models.TierFree, status)
	if err == repository.ErrNotFound {
		log.Warn().Str("subscription_ref", sub.ID).Msg("Subscription deletion references unknown user, acknowledging")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("status", status).Msg("Subscription deleted, user back on free tier")
	return nil
}

// ListPayments returns a user's payment history
func (s *billingService) ListPayments(ctx context.Context, userID string) ([]*models.PaymentRecord, error) {
	return s.repo.ListPayments(ctx, userID)
}

// sendReceipt mails a payment receipt best effort
func (s *billingService) sendReceipt(ctx context.Context, customerRef string, rec *models.PaymentRecord, log zerolog.Logger) {
	user, err := s.repo.GetUserByCustomerRef(ctx, customerRef)
	if err != nil || user == nil {
		return
	}

	subject := "Your Newswire payment receipt"
	body := fmt.Sprintf(
		"Thanks for subscribing to the %s plan.\n\nAmount: %.2f %s\nReference: %s\n",
		rec.Plan, float64(rec.Amount)/100, rec.Currency, rec.ProviderTxnID,
	)
	if err := s.mailer.Send(ctx, user.Email, user.Name, subject, body); err != nil {
		log.Warn().Err(err).Msg("Failed to send receipt mail")
	}
}
