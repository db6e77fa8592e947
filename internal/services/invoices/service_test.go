package invoices

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"invoice-dashboard-backend/internal/models"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type updateCall struct {
	id      string
	changes models.InvoiceChanges
}

type mockStore struct {
	err      error
	inserted []*models.Invoice
	updated  []updateCall
	deleted  []string
}

func (m *mockStore) Insert(_ context.Context, invoice *models.Invoice) error {
	if m.err != nil {
		return m.err
	}
	m.inserted = append(m.inserted, invoice)
	return nil
}

func (m *mockStore) Update(_ context.Context, id string, changes models.InvoiceChanges) error {
	if m.err != nil {
		return m.err
	}
	m.updated = append(m.updated, updateCall{id: id, changes: changes})
	return nil
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockStore) writes() int {
	return len(m.inserted) + len(m.updated) + len(m.deleted)
}

type mockInvalidator struct {
	paths []string
}

func (m *mockInvalidator) Invalidate(path string) {
	m.paths = append(m.paths, path)
}

var fixedNow = time.Date(2026, time.October, 15, 23, 30, 0, 0, time.UTC)

func setup(t *testing.T) (*Service, *mockStore, *mockInvalidator) {
	store := &mockStore{}
	pages := &mockInvalidator{}
	logger := log.New()
	logger.SetOutput(io.Discard)
	service := NewService(store, pages, NewSchema(),
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(logger),
	)
	return service, store, pages
}

func TestCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service, store, pages := setup(t)

		result := service.Create(context.Background(), form("c1", "45.00", "pending"))

		assert.Equal(t, Done, result.Kind)
		assert.Equal(t, ListingPath, result.Redirect)
		assert.Empty(t, result.Message)
		require.Len(t, store.inserted, 1)
		inv := store.inserted[0]
		assert.Equal(t, "c1", inv.CustomerID)
		assert.Equal(t, int64(4500), inv.Amount)
		assert.Equal(t, "pending", inv.Status)
		assert.Equal(t, "2026-10-15", time.Time(inv.Date).Format("2006-01-02"))
		assert.Equal(t, []string{ListingPath}, pages.paths)
	})

	t.Run("Date uses the UTC day", func(t *testing.T) {
		service, store, _ := setup(t)
		east := time.FixedZone("east", 10*60*60)
		service.now = func() time.Time { return time.Date(2026, time.October, 16, 5, 0, 0, 0, east) }

		service.Create(context.Background(), form("c1", "1", "paid"))

		require.Len(t, store.inserted, 1)
		assert.Equal(t, "2026-10-15", time.Time(store.inserted[0].Date).Format("2006-01-02"))
	})

	t.Run("Invalid form writes nothing", func(t *testing.T) {
		service, store, pages := setup(t)

		result := service.Create(context.Background(), form("", "0", "overdue"))

		assert.Equal(t, Invalid, result.Kind)
		assert.Equal(t, "Missing Fields. Failed to Create Invoice.", result.Message)
		assert.Equal(t, []string{"Please select a customer"}, result.Errors["customerId"])
		assert.Equal(t, []string{"Please enter an amount greater than 0"}, result.Errors["amount"])
		assert.Equal(t, []string{"Please select an invoice status"}, result.Errors["status"])
		assert.Empty(t, result.Redirect)
		assert.Zero(t, store.writes())
		assert.Empty(t, pages.paths)
	})

	t.Run("Storage failure is contained", func(t *testing.T) {
		service, store, pages := setup(t)
		store.err = errors.New("connection refused")

		result := service.Create(context.Background(), form("c1", "45.00", "pending"))

		assert.Equal(t, StorageFailed, result.Kind)
		assert.Equal(t, "Database Error: Failed to Create Invoice.", result.Message)
		assert.Empty(t, result.Redirect)
		assert.Empty(t, pages.paths)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service, store, pages := setup(t)
		values := form("c2", "12.34", "paid")
		values.Set("id", "other-id")
		values.Set("date", "2000-01-01")

		result := service.Update(context.Background(), "inv-1", values)

		assert.Equal(t, Done, result.Kind)
		assert.Equal(t, ListingPath, result.Redirect)
		require.Len(t, store.updated, 1)
		assert.Equal(t, "inv-1", store.updated[0].id)
		assert.Equal(t, models.InvoiceChanges{CustomerID: "c2", Amount: 1234, Status: "paid"}, store.updated[0].changes)
		assert.Equal(t, []string{ListingPath}, pages.paths)
	})

	t.Run("Invalid form writes nothing", func(t *testing.T) {
		service, store, pages := setup(t)

		result := service.Update(context.Background(), "inv-1", form("c2", "-1", "paid"))

		assert.Equal(t, Invalid, result.Kind)
		assert.Equal(t, "Missing Fields. Failed to Update Invoice", result.Message)
		assert.Equal(t, []string{"Please enter an amount greater than 0"}, result.Errors["amount"])
		assert.Zero(t, store.writes())
		assert.Empty(t, pages.paths)
	})

	t.Run("Storage failure is contained", func(t *testing.T) {
		service, store, pages := setup(t)
		store.err = errors.New("deadlock detected")

		result := service.Update(context.Background(), "inv-1", form("c2", "5", "paid"))

		assert.Equal(t, StorageFailed, result.Kind)
		assert.Equal(t, "Database Error: Failed to Update Invoice.", result.Message)
		assert.Empty(t, pages.paths)
	})
}

func TestDelete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service, store, pages := setup(t)

		result := service.Delete(context.Background(), "missing-id")

		assert.Equal(t, Done, result.Kind)
		assert.Equal(t, "Deleted Invoice.", result.Message)
		assert.Empty(t, result.Redirect)
		assert.Equal(t, []string{"missing-id"}, store.deleted)
		assert.Equal(t, []string{ListingPath}, pages.paths)
	})

	t.Run("Storage failure is contained", func(t *testing.T) {
		service, store, pages := setup(t)
		store.err = errors.New("timeout")

		result := service.Delete(context.Background(), "inv-1")

		assert.Equal(t, StorageFailed, result.Kind)
		assert.Equal(t, "Database Error: Failed to Delete Invoice.", result.Message)
		assert.Empty(t, pages.paths)
	})
}
