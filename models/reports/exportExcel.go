package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"bitbucket.org/indofreight/freight_backend/models"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

func writeSheet(w io.Writer, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(exportSheet, cell, value)
		}
	}
	return f.Write(w)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func ExportProductCategoriesExcel(ctx context.Context, w io.Writer) error {
	categories, err := models.GetProductCategories(ctx, nil)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []interface{}{c.ID, c.Name, c.ParentCategoryId, *c.IsActive})
	}
	return writeSheet(w, []string{"ID", "Name", "ParentCategoryID", "Active"}, rows)
}

func ExportProductsExcel(ctx context.Context, w io.Writer) error {
	products, err := models.GetProducts(ctx, nil, nil)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		rows = append(rows, []interface{}{
			p.ID, p.Name, p.HsnCode, p.Unit, p.DefaultTaxRate.StringFixed(2), categoryName,
		})
	}
	return writeSheet(w, []string{"ID", "Name", "HSN", "Unit", "TaxRate", "Category"}, rows)
}

func ExportCustomersExcel(ctx context.Context, w io.Writer) error {
	customers, err := models.GetCustomers(ctx, nil)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []interface{}{
			c.ID, c.Name, c.Gstin, c.ContactPerson, c.Phone, c.Email, c.City, c.CreditDays,
		})
	}
	return writeSheet(w,
		[]string{"ID", "Name", "GSTIN", "ContactPerson", "Phone", "Email", "City", "CreditDays"}, rows)
}

// ExportFleetExcel dumps vehicles and drivers into one sheet, vehicles
// first, the way the office circulates its fleet register.
func ExportFleetExcel(ctx context.Context, w io.Writer) error {
	vehicles, err := models.GetVehicles(ctx, nil)
	if err != nil {
		return err
	}
	drivers, err := models.GetDrivers(ctx, nil)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(vehicles)+len(drivers))
	for _, v := range vehicles {
		rows = append(rows, []interface{}{
			"VEHICLE", v.Registration, v.VehicleType, v.CapacityKg.StringFixed(2),
			formatDate(v.PermitExpiry), formatDate(v.FitnessExpiry), formatDate(v.InsuranceExpiry),
		})
	}
	for _, d := range drivers {
		rows = append(rows, []interface{}{
			"DRIVER", d.Name, d.LicenceNumber, "", formatDate(d.LicenceExpiry), "", d.Phone,
		})
	}
	return writeSheet(w,
		[]string{"Kind", "NameOrRegistration", "TypeOrLicence", "CapacityKg", "Expiry1", "Expiry2", "PhoneOrInsurance"}, rows)
}

func ExportAuditLogsExcel(ctx context.Context, w io.Writer, filter models.AuditLogFilter) error {
	logs, err := models.GetAuditLogs(ctx, filter, 1000)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []interface{}{
			l.ID, l.Username, l.Action, l.EntityType, l.EntityId,
			l.CreatedAt.Format("2006-01-02 15:04:05"), l.CorrelationId,
		})
	}
	return writeSheet(w,
		[]string{"ID", "User", "Action", "Entity", "EntityID", "At", "CorrelationID"}, rows)
}

// ExportInvoicesExcel renders money with the ASCII currency prefix so the
// sheet never carries Unicode currency symbols downstream.
func ExportInvoicesExcel(ctx context.Context, w io.Writer, today time.Time) error {
	invoices, err := models.GetInvoices(ctx, models.InvoiceFilter{}, today)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []interface{}{
			inv.InvoiceNumber,
			inv.CustomerName,
			inv.IssueDate.Format("2006-01-02"),
			formatDate(inv.DueDate),
			string(inv.DisplayStatus(today)),
			utils.FormatMoney(inv.CurrencyCode, inv.Subtotal),
			utils.FormatMoney(inv.CurrencyCode, inv.TotalTax),
			utils.FormatMoney(inv.CurrencyCode, inv.TdsAmount),
			utils.FormatMoney(inv.CurrencyCode, inv.NetPayable),
		})
	}
	return writeSheet(w,
		[]string{"InvoiceNumber", "Customer", "IssueDate", "DueDate", "Status", "Subtotal", "Tax", "TDS", "NetPayable"}, rows)
}

// ExcelFilename builds the attachment name for an export download.
func ExcelFilename(resource string, today time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", resource, today.Format("20060102"))
}
