package invoices

import (
	"context"
	"net/url"
	"time"

	"invoice-dashboard-backend/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ListingPath is the invoices listing view that every write makes stale.
const ListingPath = "/dashboard/invoices"

const (
	msgCreateInvalid = "Missing Fields. Failed to Create Invoice."
	msgUpdateInvalid = "Missing Fields. Failed to Update Invoice"
	msgCreateFailed  = "Database Error: Failed to Create Invoice."
	msgUpdateFailed  = "Database Error: Failed to Update Invoice."
	msgDeleteFailed  = "Database Error: Failed to Delete Invoice."
	msgDeleted       = "Deleted Invoice."
)

type Store interface {
	Insert(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, id string, changes models.InvoiceChanges) error
	Delete(ctx context.Context, id string) error
}

// Invalidator marks a cached view stale.
type Invalidator interface {
	Invalidate(path string)
}

type Option func(*Service)

// WithClock replaces time.Now as the source of the invoice date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger log.FieldLogger) Option {
	return func(s *Service) { s.log = logger }
}

type Service struct {
	store  Store
	pages  Invalidator
	schema *Schema
	now    func() time.Time
	log    log.FieldLogger
}

func NewService(store Store, pages Invalidator, schema *Schema, opts ...Option) *Service {
	s := &Service{
		store:  store,
		pages:  pages,
		schema: schema,
		now:    time.Now,
		log:    log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, form url.Values) Result {
	fields, errs := s.schema.Validate(form)
	if errs != nil {
		return Result{Kind: Invalid, Errors: errs, Message: msgCreateInvalid}
	}

	invoice := &models.Invoice{
		CustomerID: fields.CustomerID,
		Amount:     fields.AmountInCents(),
		Status:     fields.Status,
		Date:       today(s.now()),
	}
	if err := s.store.Insert(ctx, invoice); err != nil {
		s.log.WithError(err).WithField("customer_id", fields.CustomerID).Error("create invoice")
		return Result{Kind: StorageFailed, Message: msgCreateFailed}
	}

	s.pages.Invalidate(ListingPath)
	return Result{Kind: Done, Redirect: ListingPath}
}

func (s *Service) Update(ctx context.Context, id string, form url.Values) Result {
	fields, errs := s.schema.Validate(form)
	if errs != nil {
		return Result{Kind: Invalid, Errors: errs, Message: msgUpdateInvalid}
	}

	changes := models.InvoiceChanges{
		CustomerID: fields.CustomerID,
		Amount:     fields.AmountInCents(),
		Status:     fields.Status,
	}
	if err := s.store.Update(ctx, id, changes); err != nil {
		s.log.WithError(err).WithField("invoice_id", id).Error("update invoice")
		return Result{Kind: StorageFailed, Message: msgUpdateFailed}
	}

	s.pages.Invalidate(ListingPath)
	return Result{Kind: Done, Redirect: ListingPath}
}

func (s *Service) Delete(ctx context.Context, id string) Result {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.WithError(err).WithField("invoice_id", id).Error("delete invoice")
		return Result{Kind: StorageFailed, Message: msgDeleteFailed}
	}

	s.pages.Invalidate(ListingPath)
	return Result{Kind: Done, Message: msgDeleted}
}

// today truncates t to its UTC calendar day.
func today(t time.Time) datatypes.Date {
	y, m, d := t.UTC().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
