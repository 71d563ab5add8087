package handlers

import (
	"net/http"

	"bitbucket.org/indofreight/freight_backend/models"
	"bitbucket.org/indofreight/freight_backend/models/reports"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func ReceivableAgingSummary(c *gin.Context) {
	summary, err := reports.GetReceivableAgingSummary(c.Request.Context(), utils.Today())
	if err != nil {
		respondError(c, "reports", "ReceivableAgingSummary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func ReceivableAgingDetail(c *gin.Context) {
	rows, err := reports.GetReceivableAgingDetail(c.Request.Context(), utils.Today())
	if err != nil {
		respondError(c, "reports", "ReceivableAgingDetail", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func setAttachment(c *gin.Context, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename="+filename)
}

// ExportResourceExcel serves /exports/:resource.xlsx.
func ExportResourceExcel(c *gin.Context) {
	ctx := c.Request.Context()
	today := utils.Today()
	resource := c.Param("resource")

	setAttachment(c, xlsxContentType, reports.ExcelFilename(resource, today))

	var err error
	switch resource {
	case "categories":
		err = reports.ExportProductCategoriesExcel(ctx, c.Writer)
	case "products":
		err = reports.ExportProductsExcel(ctx, c.Writer)
	case "customers":
		err = reports.ExportCustomersExcel(ctx, c.Writer)
	case "fleet":
		err = reports.ExportFleetExcel(ctx, c.Writer)
	case "invoices":
		err = reports.ExportInvoicesExcel(ctx, c.Writer, today)
	case "audit-logs":
		err = reports.ExportAuditLogsExcel(ctx, c.Writer, auditFilter(c))
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown export resource"})
		return
	}
	if err != nil {
		respondError(c, "reports", "ExportResourceExcel", err)
	}
}

// ExportResourceCsv serves /exports/:resource.csv.
func ExportResourceCsv(c *gin.Context) {
	ctx := c.Request.Context()
	today := utils.Today()
	resource := c.Param("resource")

	setAttachment(c, "text/csv", reports.CsvFilename(resource, today))

	var err error
	switch resource {
	case "customers":
		err = reports.ExportCustomersCsv(ctx, c.Writer)
	case "products":
		err = reports.ExportProductsCsv(ctx, c.Writer)
	case "audit-logs":
		err = reports.ExportAuditLogsCsv(ctx, c.Writer, auditFilter(c))
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown export resource"})
		return
	}
	if err != nil {
		respondError(c, "reports", "ExportResourceCsv", err)
	}
}

func auditFilter(c *gin.Context) models.AuditLogFilter {
	return models.AuditLogFilter{
		EntityType: queryString(c, "entity_type"),
		EntityId:   queryInt(c, "entity_id"),
		UserId:     queryInt(c, "user_id"),
	}
}

func ListAuditLogs(c *gin.Context) {
	limit := 200
	if v := queryInt(c, "limit"); v != nil {
		limit = *v
	}
	logs, err := models.GetAuditLogs(c.Request.Context(), auditFilter(c), limit)
	if err != nil {
		respondError(c, "auditLog", "ListAuditLogs", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
