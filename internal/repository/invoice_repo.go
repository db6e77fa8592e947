package repository

import (
	"context"

	"invoice-dashboard-backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ItemsPerPage is the page size of the invoices listing.
const ItemsPerPage = 6

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Insert stores a new invoice. The ID is assigned by the database and
// written back into invoice.
func (r *InvoiceRepository) Insert(ctx context.Context, invoice *models.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return errors.Wrap(err, "insert invoice")
	}
	return nil
}

// Update rewrites customer, amount and status of one invoice. Date is left alone.
func (r *InvoiceRepository) Update(ctx context.Context, id string, changes models.InvoiceChanges) error {
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"customer_id": changes.CustomerID,
			"amount":      changes.Amount,
			"status":      changes.Status,
		}).Error
	if err != nil {
		return errors.Wrapf(err, "update invoice %s", id)
	}
	return nil
}

// Delete removes the invoice. A missing row is not an error.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
		return errors.Wrapf(err, "delete invoice %s", id)
	}
	return nil
}

// GetByID returns a single invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "get invoice %s", id)
	}
	return &invoice, nil
}

// Search returns one page of invoices whose customer, amount, date or
// status matches query. Pages start at 1.
func (r *InvoiceRepository) Search(ctx context.Context, query string, page int) ([]models.InvoiceRow, error) {
	if page < 1 {
		page = 1
	}

	var rows []models.InvoiceRow
	err := r.filtered(ctx, query).
		Select("invoices.id, invoices.customer_id, invoices.amount, invoices.date, invoices.status, " +
			"customers.name, customers.email, customers.image_url").
		Order("invoices.date DESC").
		Limit(ItemsPerPage).
		Offset((page - 1) * ItemsPerPage).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "search invoices")
	}
	return rows, nil
}

// CountPages returns how many listing pages query produces.
func (r *InvoiceRepository) CountPages(ctx context.Context, query string) (int, error) {
	var count int64
	if err := r.filtered(ctx, query).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count invoices")
	}
	return int((count + ItemsPerPage - 1) / ItemsPerPage), nil
}

// Latest returns the newest invoices with their customers.
func (r *InvoiceRepository) Latest(ctx context.Context, limit int) ([]models.InvoiceRow, error) {
	var rows []models.InvoiceRow
	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Joins("JOIN customers ON invoices.customer_id = customers.id").
		Select("invoices.id, invoices.customer_id, invoices.amount, invoices.date, invoices.status, " +
			"customers.name, customers.email, customers.image_url").
		Order("invoices.date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "latest invoices")
	}
	return rows, nil
}

type InvoiceStats struct {
	Count        int64 `json:"count"`
	TotalPaid    int64 `json:"total_paid"`
	TotalPending int64 `json:"total_pending"`
}

type statRow struct {
	Status string
	Count  int64
	Sum    int64
}

// Stats aggregates invoice counts and cent totals per status.
func (r *InvoiceRepository) Stats(ctx context.Context) (InvoiceStats, error) {
	var stats InvoiceStats
	var rows []statRow

	err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS sum").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return stats, errors.Wrap(err, "invoice stats")
	}

	for _, row := range rows {
		stats.Count += row.Count
		switch row.Status {
		case models.StatusPaid:
			stats.TotalPaid = row.Sum
		case models.StatusPending:
			stats.TotalPending = row.Sum
		}
	}
	return stats, nil
}

func (r *InvoiceRepository) filtered(ctx context.Context, query string) *gorm.DB {
	like := "%" + query + "%"
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Joins("JOIN customers ON invoices.customer_id = customers.id").
		Where("customers.name ILIKE ? OR customers.email ILIKE ? OR CAST(invoices.amount AS TEXT) ILIKE ? "+
			"OR CAST(invoices.date AS TEXT) ILIKE ? OR invoices.status ILIKE ?",
			like, like, like, like, like)
}
