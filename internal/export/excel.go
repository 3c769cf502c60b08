// Package export renders event history as Excel workbooks and mirrors it
// to Google Sheets when configured.
package export

import (
	"fmt"
	"time"

	"babycarebot/internal/model"

	"github.com/xuri/excelize/v2"
)

var historyColumns = []string{"Time", "Event", "Logged by", "Role"}

// EventsWorkbook renders the entries into a single-sheet xlsx workbook.
// Timestamps are formatted in loc.
func EventsWorkbook(entries []model.EventEntry, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "History"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range historyColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		start, _ := excelize.CoordinatesToCellName(1, 1)
		end, _ := excelize.CoordinatesToCellName(len(historyColumns), 1)
		_ = f.SetCellStyle(sheet, start, end, style)
	}

	for i, e := range entries {
		values := eventRowValues(&e, loc)
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "D", 15)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// eventRowValues flattens one entry into a spreadsheet row. Shared by the
// xlsx and Sheets writers so both surfaces stay identical.
func eventRowValues(e *model.EventEntry, loc *time.Location) []interface{} {
	name := e.AuthorName
	if name == "" {
		name = fmt.Sprintf("user %d", e.AuthorID)
	}
	return []interface{}{
		e.Timestamp.In(loc).Format("2006-01-02 15:04:05"),
		string(e.Kind),
		name,
		e.AuthorRole,
	}
}
