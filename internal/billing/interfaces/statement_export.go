package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"nebenkosten/internal/billing/application"
)

// BuildStatementPDF renders a minimal PDF for a statement.
func BuildStatementPDF(details *application.StatementDetails) ([]byte, error) {
	title := details.Meta.Title
	if title == "" {
		title = "Nebenkostenabrechnung"
	}
	currency := details.Meta.Currency
	if currency == "" {
		currency = "EUR"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, translator(title))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if details.Meta.LandlordName != "" {
		pdf.Cell(0, 6, translator(details.Meta.LandlordName))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, translator(fmt.Sprintf("Mieter: %s", details.Tenant.Name)))
	pdf.Ln(5)
	pdf.Cell(0, 6, translator(fmt.Sprintf("Personen: %d", details.Tenant.NumberOfPersons)))
	pdf.Ln(5)
	pdf.Cell(0, 6, translator(fmt.Sprintf("Abrechnungszeitraum: %s bis %s",
		details.Period.StartDate.Format("2006-01-02"),
		details.Period.EndDate.Format("2006-01-02"))))
	pdf.Ln(5)
	pdf.Cell(0, 6, translator(fmt.Sprintf("Erstellt: %s", details.Statement.GeneratedAt.Format("2006-01-02"))))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, translator(fmt.Sprintf("Gesamtbetrag: %.2f %s", details.Statement.TotalAmount, currency)))
	pdf.Ln(8)

	if details.Meta.FooterNote != "" {
		pdf.SetFont("Arial", "", 8)
		pdf.Cell(0, 5, translator(details.Meta.FooterNote))
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildStatementXLSX renders a minimal XLSX for a statement.
func BuildStatementXLSX(details *application.StatementDetails) ([]byte, error) {
	currency := details.Meta.Currency
	if currency == "" {
		currency = "EUR"
	}

	f := excelize.NewFile()
	sheet := "statement"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Nebenkostenabrechnung")
	_ = f.SetCellValue(sheet, "A3", "Mieter")
	_ = f.SetCellValue(sheet, "B3", details.Tenant.Name)
	_ = f.SetCellValue(sheet, "A4", "Personen")
	_ = f.SetCellValue(sheet, "B4", details.Tenant.NumberOfPersons)
	_ = f.SetCellValue(sheet, "A5", "Zeitraum von")
	_ = f.SetCellValue(sheet, "B5", details.Period.StartDate.Format("2006-01-02"))
	_ = f.SetCellValue(sheet, "A6", "Zeitraum bis")
	_ = f.SetCellValue(sheet, "B6", details.Period.EndDate.Format("2006-01-02"))
	_ = f.SetCellValue(sheet, "A7", "Abrechnungsperiode")
	_ = f.SetCellValue(sheet, "B7", details.Period.Name)
	_ = f.SetCellValue(sheet, "A8", "Erstellt")
	_ = f.SetCellValue(sheet, "B8", details.Statement.GeneratedAt.Format("2006-01-02"))
	_ = f.SetCellValue(sheet, "A9", "Gesamtbetrag")
	_ = f.SetCellValue(sheet, "B9", details.Statement.TotalAmount)
	_ = f.SetCellValue(sheet, "A10", "Währung")
	_ = f.SetCellValue(sheet, "B10", currency)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
