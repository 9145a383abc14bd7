package interfaces

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	masterdata "nebenkosten/internal/masterdata/domain"
)

// BuildReadingsXLSX renders a meter's reading history as a spreadsheet.
func BuildReadingsXLSX(meter *masterdata.Meter, readings []masterdata.ReadingWithConsumption) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "readings"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("%s (%s)", meter.Name, meter.Unit))
	_ = f.SetCellValue(sheet, "A3", "Datum")
	_ = f.SetCellValue(sheet, "B3", "Zählerstand")
	_ = f.SetCellValue(sheet, "C3", "Verbrauch")
	_ = f.SetCellValue(sheet, "D3", "Notizen")
	for i, reading := range readings {
		row := i + 4
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), reading.ReadingDate.Format("2006-01-02"))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), reading.Value)
		if reading.Consumption != nil {
			_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), *reading.Consumption)
		}
		if reading.Notes != nil {
			_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), *reading.Notes)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
