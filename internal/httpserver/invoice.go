package httpserver

import (
	"net/http"
	"time"

	"invoicewizard/internal/domain"
	invoicesvc "invoicewizard/internal/service/invoice"
	"github.com/gin-gonic/gin"
)

type invoiceSummary struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoiceNumber"`
	CustomerID    string    `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	InvoiceDate   string    `json:"invoiceDate"`
	DueDate       string    `json:"dueDate"`
	Status        string    `json:"status"`
	StatusColor   string    `json:"statusColor"`
	Total         float64   `json:"total"`
	TotalDisplay  string    `json:"totalDisplay"`
	CreatedAt     time.Time `json:"createdAt"`
}

type lineItemView struct {
	ID           string  `json:"id"`
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"totalDisplay"`
}

type invoiceDetail struct {
	invoiceSummary
	TaxRate          float64        `json:"taxRate"`
	Notes            *string        `json:"notes,omitempty"`
	Subtotal         float64        `json:"subtotal"`
	SubtotalDisplay  string         `json:"subtotalDisplay"`
	TaxAmount        float64        `json:"taxAmount"`
	TaxAmountDisplay string         `json:"taxAmountDisplay"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	LineItems        []lineItemView `json:"lineItems"`
}

func toInvoiceSummary(inv domain.Invoice) invoiceSummary {
	return invoiceSummary{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  displayCustomerName(inv.CustomerName),
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Status:        string(inv.Status),
		StatusColor:   statusColor(inv.Status),
		Total:         inv.Total,
		TotalDisplay:  formatMYR(inv.Total),
		CreatedAt:     inv.CreatedAt,
	}
}

func toInvoiceDetail(inv domain.Invoice) invoiceDetail {
	lines := make([]lineItemView, 0, len(inv.Lines))
	for _, li := range inv.Lines {
		lines = append(lines, lineItemView{
			ID:           li.ID,
			Description:  li.Description,
			Quantity:     li.Quantity,
			UnitPrice:    li.UnitPrice,
			Total:        li.Total,
			TotalDisplay: formatMYR(li.Total),
		})
	}
	return invoiceDetail{
		invoiceSummary:   toInvoiceSummary(inv),
		TaxRate:          inv.TaxRate,
		Notes:            inv.Notes,
		Subtotal:         inv.Subtotal,
		SubtotalDisplay:  formatMYR(inv.Subtotal),
		TaxAmount:        inv.TaxAmount,
		TaxAmountDisplay: formatMYR(inv.TaxAmount),
		UpdatedAt:        inv.UpdatedAt,
		LineItems:        lines,
	}
}

func listInvoicesHandler(svc InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		invoices, err := svc.List(c.Request.Context(), u.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]invoiceSummary, 0, len(invoices))
		for _, inv := range invoices {
			out = append(out, toInvoiceSummary(inv))
		}
		c.JSON(http.StatusOK, gin.H{"invoices": out, "total": len(out)})
	}
}

func createInvoiceHandler(svc InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		var req invoicesvc.Input
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		created, err := svc.Create(c.Request.Context(), u.ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"invoice": toInvoiceDetail(*created)})
	}
}

func getInvoiceHandler(svc InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		found, err := svc.Get(c.Request.Context(), u.ID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"invoice": toInvoiceDetail(*found)})
	}
}

func updateInvoiceHandler(svc InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		var req invoicesvc.Input
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		updated, err := svc.Update(c.Request.Context(), u.ID, c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"invoice": toInvoiceDetail(*updated)})
	}
}

func deleteInvoiceHandler(svc InvoiceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if err := svc.Delete(c.Request.Context(), u.ID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
