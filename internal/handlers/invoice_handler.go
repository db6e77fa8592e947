package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/invoices"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxFormMemory = 32 << 20

type InvoiceReader interface {
	Search(ctx context.Context, query string, page int) ([]models.InvoiceRow, error)
	CountPages(ctx context.Context, query string) (int, error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	Latest(ctx context.Context, limit int) ([]models.InvoiceRow, error)
	Stats(ctx context.Context) (repository.InvoiceStats, error)
}

type CustomerReader interface {
	List(ctx context.Context) ([]models.Customer, error)
	Count(ctx context.Context) (int64, error)
}

type InvoiceHandler struct {
	service   *invoices.Service
	invoices  InvoiceReader
	customers CustomerReader
}

func NewInvoiceHandler(s *invoices.Service, reader InvoiceReader, customers CustomerReader) *InvoiceHandler {
	return &InvoiceHandler{service: s, invoices: reader, customers: customers}
}

type invoiceView struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	Amount     string `json:"amount"`
	Date       string `json:"date,omitempty"`
	Status     string `json:"status"`
}

type customerView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// dollars renders an amount in cents as a fixed two-decimal string.
func dollars(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func rowViews(rows []models.InvoiceRow) []invoiceView {
	views := make([]invoiceView, 0, len(rows))
	for _, row := range rows {
		views = append(views, invoiceView{
			ID:         row.ID.String(),
			CustomerID: row.CustomerID,
			Name:       row.Name,
			Email:      row.Email,
			ImageURL:   row.ImageURL,
			Amount:     dollars(row.Amount),
			Date:       time.Time(row.Date).Format("2006-01-02"),
			Status:     row.Status,
		})
	}
	return views
}

func customerViews(customers []models.Customer) []customerView {
	views := make([]customerView, 0, len(customers))
	for _, customer := range customers {
		views = append(views, customerView{ID: customer.ID.String(), Name: customer.Name})
	}
	return views
}

// List renders one page of the filtered invoices listing.
func (h *InvoiceHandler) List(c *gin.Context) {
	query := c.Query("query")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	rows, err := h.invoices.Search(c.Request.Context(), query, page)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices."})
		return
	}
	totalPages, err := h.invoices.CountPages(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch total number of invoices."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"page":        page,
		"total_pages": totalPages,
		"items":       rowViews(rows),
	})
}

// CreateForm returns what the create form needs to render.
func (h *InvoiceHandler) CreateForm(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch all customers."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customerViews(customers)})
}

// EditForm returns the invoice, amount in dollars, and the customer list.
func (h *InvoiceHandler) EditForm(c *gin.Context) {
	id := c.Param("id")
	invoice, err := h.invoices.GetByID(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice."})
		return
	}
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch all customers."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice": invoiceView{
			ID:         invoice.ID.String(),
			CustomerID: invoice.CustomerID,
			Amount:     dollars(invoice.Amount),
			Status:     invoice.Status,
		},
		"customers": customerViews(customers),
	})
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	renderResult(c, h.service.Create(c.Request.Context(), postedForm(c)))
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	renderResult(c, h.service.Update(c.Request.Context(), c.Param("id"), postedForm(c)))
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	renderResult(c, h.service.Delete(c.Request.Context(), c.Param("id")))
}

// postedForm reads url-encoded and multipart bodies alike. A body that
// cannot be parsed yields an empty form, which then fails validation.
func postedForm(c *gin.Context) url.Values {
	err := c.Request.ParseMultipartForm(maxFormMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return url.Values{}
	}
	return c.Request.PostForm
}

func renderResult(c *gin.Context, result invoices.Result) {
	switch result.Kind {
	case invoices.Invalid:
		c.JSON(http.StatusUnprocessableEntity, result)
	case invoices.StorageFailed:
		c.JSON(http.StatusInternalServerError, result)
	default:
		if result.Redirect != "" {
			c.Redirect(http.StatusSeeOther, result.Redirect)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
