package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"bitbucket.org/indofreight/freight_backend/models"
)

func writeCsv(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCustomersCsv(ctx context.Context, w io.Writer) error {
	customers, err := models.GetCustomers(ctx, nil)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.Itoa(c.ID), c.Name, c.Gstin, c.ContactPerson,
			c.Phone, c.Email, c.City, strconv.Itoa(c.CreditDays),
		})
	}
	return writeCsv(w,
		[]string{"id", "name", "gstin", "contact_person", "phone", "email", "city", "credit_days"}, rows)
}

func ExportProductsCsv(ctx context.Context, w io.Writer) error {
	products, err := models.GetProducts(ctx, nil, nil)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		rows = append(rows, []string{
			strconv.Itoa(p.ID), p.Name, p.HsnCode, p.Unit,
			p.DefaultTaxRate.StringFixed(2), categoryName,
		})
	}
	return writeCsv(w, []string{"id", "name", "hsn_code", "unit", "tax_rate", "category"}, rows)
}

func ExportAuditLogsCsv(ctx context.Context, w io.Writer, filter models.AuditLogFilter) error {
	logs, err := models.GetAuditLogs(ctx, filter, 1000)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			strconv.Itoa(l.ID), l.Username, l.Action, l.EntityType,
			strconv.Itoa(l.EntityId), l.CreatedAt.Format(time.RFC3339), l.CorrelationId,
		})
	}
	return writeCsv(w,
		[]string{"id", "user", "action", "entity", "entity_id", "at", "correlation_id"}, rows)
}

func CsvFilename(resource string, today time.Time) string {
	return fmt.Sprintf("%s-%s.csv", resource, today.Format("20060102"))
}
