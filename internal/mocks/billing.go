package mocks

import (
	"context"
	"sync"

	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/repository"
)

// MockBillingRepository is a mock implementation of BillingRepository.
// A single mutex stands in for the per-user row lock, so concurrent
// webhook deliveries apply their tier/status pairs one at a time.
type MockBillingRepository struct {
	mu       sync.Mutex
	Users    *MockUserRepository
	Payments map[string]*models.PaymentRecord
	TxError  error
}

func NewMockBillingRepository(users *MockUserRepository) *MockBillingRepository {
	return &MockBillingRepository{
		Users:    users,
		Payments: make(map[string]*models.PaymentRecord),
	}
}

func (m *MockBillingRepository) userByCustomerRef(customerRef string) *models.User {
	for _, u := range m.Users.Users {
		if u.BillingCustomerRef == customerRef {
			return u
		}
	}
	return nil
}

func (m *MockBillingRepository) userBySubscriptionRef(subscriptionRef string) *models.User {
	for _, u := range m.Users.Users {
		if u.BillingSubscriptionRef == subscriptionRef {
			return u
		}
	}
	return nil
}

func (m *MockBillingRepository) SetCustomerRef(ctx context.Context, userID, customerRef string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TxError != nil {
		return m.TxError
	}
	user, ok := m.Users.Users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.BillingCustomerRef = customerRef
	return nil
}

func (m *MockBillingRepository) CompleteCheckout(ctx context.Context, userID, customerRef, subscriptionRef, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TxError != nil {
		return m.TxError
	}
	user, ok := m.Users.Users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	if customerRef != "" {
		user.BillingCustomerRef = customerRef
	}
	user.BillingSubscriptionRef = subscriptionRef
	user.BillingStatus = status
	return nil
}

func (m *MockBillingRepository) RecordInvoicePaid(ctx context.Context, customerRef, tier, status string, rec *models.PaymentRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TxError != nil {
		return false, m.TxError
	}
	user := m.userByCustomerRef(customerRef)
	if user == nil {
		return false, repository.ErrNotFound
	}
	user.Tier = tier
	user.BillingStatus = status
	if _, ok := m.Payments[rec.ProviderTxnID]; ok {
		return false, nil
	}
	rec.UserID = user.ID
	m.Payments[rec.ProviderTxnID] = rec
	return true, nil
}

func (m *MockBillingRepository) UpdateSubscription(ctx context.Context, subscriptionRef, tier, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TxError != nil {
		return m.TxError
	}
	user := m.userBySubscriptionRef(subscriptionRef)
	if user == nil {
		return repository.ErrNotFound
	}
	user.Tier = tier
	user.BillingStatus = status
	return nil
}

func (m *MockBillingRepository) GetUserByCustomerRef(ctx context.Context, customerRef string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userByCustomerRef(customerRef), nil
}

func (m *MockBillingRepository) ListPayments(ctx context.Context, userID string) ([]*models.PaymentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var records []*models.PaymentRecord
	for _, rec := range m.Payments {
		if rec.UserID == userID {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (m *MockBillingRepository) PaymentCount(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Payments), nil
}
