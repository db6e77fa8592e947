package repository

import (
	"context"

	"invoice-dashboard-backend/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// List returns all customers ordered by name, for the invoice form selector.
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error; err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return customers, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count customers")
	}
	return count, nil
}
