// Package export renders the submission log as an xlsx spreadsheet.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the submission rows.
const SheetName = "Objednávky"

// ContentType of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Headers are the column titles of the sheet in order.
var Headers = []string{
	"Číslo objednávky", "Vytvořeno", "Služba", "Zákazník", "E-mail", "Telefon",
	"Firma", "IČO", "PSČ", "Region", "Cena za měsíc", "Celkem", "Hodinová sazba",
	"Měna", "Zahájení", "Poznámka k poptávce", "Poznámka k objednávce", "Dokument",
}

// SubmissionWorkbook writes submissions into a single-sheet workbook.
// Timestamps are shown in loc.
func SubmissionWorkbook(submissions []domain.Submission, loc *time.Location) (*bytes.Buffer, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(Headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, style); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for row, s := range submissions {
		for col, value := range rowValues(s, loc) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func rowValues(s domain.Submission, loc *time.Location) []interface{} {
	var hourly interface{} = ""
	if s.HourlyRate != nil {
		hourly = *s.HourlyRate
	}
	start := ""
	if s.StartDate != nil {
		start = s.StartDate.Format("2006-01-02")
	}
	return []interface{}{
		s.OrderID,
		s.CreatedAt.In(loc).Format("2006-01-02 15:04"),
		s.ServiceTitle,
		s.CustomerName,
		s.CustomerEmail,
		s.CustomerPhone,
		s.CompanyName,
		s.CompanyID,
		s.PostalCode,
		s.Region,
		s.RegularPrice,
		s.TotalPrice,
		hourly,
		s.Currency,
		start,
		s.OriginFormNote,
		s.ConfirmationStepNote,
		s.DocumentPath,
	}
}

// FileName names the export covering the day that starts at day.
func FileName(day time.Time) string {
	return fmt.Sprintf("exports/submissions-%s.xlsx", day.Format("2006-01-02"))
}
