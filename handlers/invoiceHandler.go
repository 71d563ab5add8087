package handlers

import (
	"net/http"

	"bitbucket.org/indofreight/freight_backend/models"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/gin-gonic/gin"
)

type invoiceResponse struct {
	*models.Invoice
	DisplayStatus models.InvoiceStatus `json:"display_status"`
}

func ListInvoices(c *gin.Context) {
	today := utils.Today()
	filter := models.InvoiceFilter{Search: queryString(c, "search")}
	if v := c.Query("status"); v != "" {
		status := models.InvoiceStatus(v)
		filter.Status = &status
	}

	invoices, err := models.GetInvoices(c.Request.Context(), filter, today)
	if err != nil {
		respondError(c, "invoice", "ListInvoices", err)
		return
	}

	responses := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		responses = append(responses, invoiceResponse{Invoice: inv, DisplayStatus: inv.DisplayStatus(today)})
	}
	c.JSON(http.StatusOK, responses)
}

func GetInvoice(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	invoice, err := models.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", "GetInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{Invoice: invoice, DisplayStatus: invoice.DisplayStatus(utils.Today())})
}

func GetInvoiceByShipment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	invoice, err := models.GetInvoiceByShipment(c.Request.Context(), id)
	if err != nil {
		respondError(c, "invoice", "GetInvoiceByShipment", err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{Invoice: invoice, DisplayStatus: invoice.DisplayStatus(utils.Today())})
}

// SaveInvoice handles both first save and edits; the model layer decides
// by shipment key.
func SaveInvoice(c *gin.Context) {
	var input models.NewInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	invoice, err := models.SaveInvoice(c.Request.Context(), &input, utils.Today())
	if err != nil {
		respondError(c, "invoice", "SaveInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{Invoice: invoice, DisplayStatus: invoice.DisplayStatus(utils.Today())})
}

type invoiceStatusInput struct {
	Status models.InvoiceStatus `json:"status" binding:"required"`
}

func UpdateInvoiceStatus(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input invoiceStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	invoice, err := models.UpdateInvoiceStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		respondError(c, "invoice", "UpdateInvoiceStatus", err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{Invoice: invoice, DisplayStatus: invoice.DisplayStatus(utils.Today())})
}

func DeleteInvoice(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	if err := models.DeleteInvoice(c.Request.Context(), id); err != nil {
		respondError(c, "invoice", "DeleteInvoice", err)
		return
	}
	// best-effort: an already-missing invoice is a successful delete
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
