package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const latestInvoices = 5

type DashboardHandler struct {
	invoices  InvoiceReader
	customers CustomerReader
}

func NewDashboardHandler(invoices InvoiceReader, customers CustomerReader) *DashboardHandler {
	return &DashboardHandler{invoices: invoices, customers: customers}
}

// Overview returns the dashboard cards and the latest invoices.
func (h *DashboardHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.invoices.Stats(ctx)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card data."})
		return
	}
	customerCount, err := h.customers.Count(ctx)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card data."})
		return
	}
	latest, err := h.invoices.Latest(ctx, latestInvoices)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch the latest invoices."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cards": gin.H{
			"number_of_invoices":  stats.Count,
			"number_of_customers": customerCount,
			"total_paid":          dollars(stats.TotalPaid),
			"total_pending":       dollars(stats.TotalPending),
		},
		"latest_invoices": rowViews(latest),
	})
}
