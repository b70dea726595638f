package services

import (
	"bytes"
	"fmt"

	"pos-backend/internal/config"
	"pos-backend/internal/models"
	"pos-backend/internal/timeutil"
	"pos-backend/pkg/utils"

	"github.com/jung-kurt/gofpdf/v2"
)

// DocumentService renders invoices and customer statements as PDFs.
// Generation is a post-commit side effect; callers treat failures as
// warnings, never as transaction errors.
type DocumentService struct {
	cfg *config.Config
}

func NewDocumentService(cfg *config.Config) *DocumentService {
	return &DocumentService{cfg: cfg}
}

// GenerateInvoicePDF renders the receipt for a committed sale
func (s *DocumentService) GenerateInvoicePDF(sale *models.Sale) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, s.cfg.Business.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if s.cfg.Business.Address != "" {
		pdf.CellFormat(190, 6, s.cfg.Business.Address, "", 1, "C", false, 0, "")
	}
	if s.cfg.Business.Phone != "" {
		pdf.CellFormat(190, 6, fmt.Sprintf("Tel: %s", s.cfg.Business.Phone), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// Invoice meta box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Invoice", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Invoice No: %s", sale.InvoiceID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", timeutil.FormatWAT(sale.CreatedAt, timeutil.DisplayLayout)), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Customer: %s", sale.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Payment: %s", sale.PaymentMethod), "RB", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 7, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Subtotal", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range sale.Items {
		pdf.CellFormat(70, 6, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, item.ModeName, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, trimFloat(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, utils.FormatNaira(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, utils.FormatNaira(item.Subtotal), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// Totals
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(120, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, utils.FormatNaira(sale.Total), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(120, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Paid", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, utils.FormatNaira(sale.AmountPaid), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(120, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Balance Due", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, utils.FormatNaira(sale.Balance), "1", 1, "R", false, 0, "")

	// Payment details when a balance remains
	if sale.Balance > 0 && s.cfg.Business.AccountNumber != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(190, 8, "Payment Information", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(190, 6, fmt.Sprintf("Bank: %s", s.cfg.Business.BankName), "LR", 1, "L", false, 0, "")
		pdf.CellFormat(190, 6, fmt.Sprintf("Account Name: %s", s.cfg.Business.AccountName), "LR", 1, "L", false, 0, "")
		pdf.CellFormat(190, 6, fmt.Sprintf("Account Number: %s", s.cfg.Business.AccountNumber), "LRB", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(190, 6, "Thank you for your patronage!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", sale.InvoiceID, err)
	}
	return buf.Bytes(), nil
}

// StatementData bundles everything a customer statement shows
type StatementData struct {
	Customer *models.Customer
	Sales    []*models.Sale
	Payments []*models.Payment
}

// GenerateStatementPDF renders a customer's purchase and payment history
// with their current outstanding debt
func (s *DocumentService) GenerateStatementPDF(data *StatementData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Customer Statement", s.cfg.Business.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.FormatWAT(timeutil.Now(), timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer Information", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", data.Customer.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", data.Customer.Phone), "RB", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Purchases
	if len(data.Sales) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Purchases", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 7, "Invoice", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Total", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Paid", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Balance", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, sale := range data.Sales {
			pdf.CellFormat(45, 6, sale.InvoiceID, "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, timeutil.FormatWAT(sale.CreatedAt, "02-Jan-2006"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, utils.FormatNaira(sale.Total), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, utils.FormatNaira(sale.AmountPaid), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, utils.FormatNaira(sale.Balance), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	// Payments
	if len(data.Payments) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Payments", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Method", "1", 0, "C", true, 0, "")
		pdf.CellFormat(45, 7, "Amount", "1", 0, "C", true, 0, "")
		pdf.CellFormat(65, 7, "Balance After", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, p := range data.Payments {
			pdf.CellFormat(45, 6, timeutil.FormatWAT(p.CreatedAt, "02-Jan-2006"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, p.Method, "1", 0, "C", false, 0, "")
			pdf.CellFormat(45, 6, utils.FormatNaira(p.Amount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(65, 6, utils.FormatNaira(p.BalanceAfter), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	// Outstanding balance banner
	pdf.SetFont("Arial", "B", 14)
	if data.Customer.Debt > 0 {
		pdf.SetFillColor(255, 230, 230)
		pdf.CellFormat(190, 10, fmt.Sprintf("Outstanding Debt: %s", utils.FormatNaira(data.Customer.Debt)), "1", 1, "C", true, 0, "")
	} else {
		pdf.SetFillColor(230, 255, 230)
		pdf.CellFormat(190, 10, "No Outstanding Debt", "1", 1, "C", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render statement for customer %d: %w", data.Customer.ID, err)
	}
	return buf.Bytes(), nil
}

// trimFloat renders 2 as "2" and 1.5 as "1.5"
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
