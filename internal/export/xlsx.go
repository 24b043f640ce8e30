// Package export renders submission listings as spreadsheets for admins.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/lead-intake/internal/domain"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const timestampLayout = "2006-01-02 15:04:05"

type column struct {
	header string
	width  float64
}

var contactColumns = []column{
	{"ID", 38}, {"Name", 22}, {"Email", 30}, {"Phone", 16}, {"Company", 22}, {"Subject", 30},
	{"Message", 50}, {"Service", 24}, {"Status", 14}, {"Priority", 10}, {"Notes", 30},
	{"Created At", 20}, {"Updated At", 20},
}

var demoColumns = []column{
	{"ID", 38}, {"Name", 22}, {"Email", 30}, {"Phone", 16}, {"Company", 22}, {"Service", 24},
	{"Preferred Date", 16}, {"Preferred Time", 14}, {"Project Description", 50}, {"Budget", 12},
	{"Timeline", 12}, {"Status", 12}, {"Notes", 30}, {"Created At", 20}, {"Updated At", 20},
}

// Contacts builds a workbook with one row per contact.
func Contacts(contacts []domain.Contact) ([]byte, error) {
	rows := make([][]any, len(contacts))
	for i, c := range contacts {
		priority := ""
		if c.Priority != nil {
			priority = string(*c.Priority)
		}
		rows[i] = []any{
			c.ID, c.Name, c.Email, c.Phone, c.Company, c.Subject, c.Message, string(c.Service),
			string(c.Status), priority, c.Notes, stamp(c.CreatedAt), stamp(c.UpdatedAt),
		}
	}
	return workbook("Contacts", contactColumns, rows)
}

// Demos builds a workbook with one row per demo booking.
func Demos(demos []domain.Demo) ([]byte, error) {
	rows := make([][]any, len(demos))
	for i, d := range demos {
		rows[i] = []any{
			d.ID, d.Name, d.Email, d.Phone, d.Company, string(d.Service),
			d.PreferredDate.Format("2006-01-02"), string(d.PreferredTime), d.ProjectDescription,
			d.Budget, d.Timeline, string(d.Status), d.Notes, stamp(d.CreatedAt), stamp(d.UpdatedAt),
		}
	}
	return workbook("Demos", demoColumns, rows)
}

// Filename returns a timestamped download name such as contacts-20250601-153000.xlsx.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, now.UTC().Format("20060102-150405"))
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func workbook(sheet string, columns []column, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, col.width); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
