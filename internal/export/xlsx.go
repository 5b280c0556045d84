// Package export renders an aggregated record set to a styled XLSX workbook.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jeffery5bai/pdf2excel/internal/parse"
)

const sheetName = "Orders"

// Header and data styling mirrors the report the planners already use.
const (
	headerFillColor = "F2DCDC"
	fontFamily      = "Arial"
	fontSize        = 12.0
)

// DateFormat couples the workbook number format of date cells with the Go
// layout used when the same date is rendered as text (previews, widths).
// Both forms occurred historically; the choice is now one explicit setting.
type DateFormat struct {
	NumFmt string
	Layout string
}

var (
	DateFormatDash  = DateFormat{NumFmt: "mm-dd-yyyy", Layout: "01-02-2006"}
	DateFormatSlash = DateFormat{NumFmt: "mm/dd/yyyy", Layout: "01/02/2006"}
)

// Writer renders records to workbook bytes following a fixed column schema.
type Writer struct {
	schema      []parse.Column
	dateFormat  DateFormat
	widthOffset float64
	logger      *slog.Logger
}

// NewWriter creates a writer for one output schema. widthOffset is the fixed
// padding added to the auto-sized column widths.
func NewWriter(schema []parse.Column, dateFormat DateFormat, widthOffset float64, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		schema:      schema,
		dateFormat:  dateFormat,
		widthOffset: widthOffset,
		logger:      logger,
	}
}

// Filename returns the download name for a run of the given family.
func Filename(family string, runDate time.Time) string {
	return fmt.Sprintf("%s_orders_%s.xlsx", family, runDate.Format("20060102"))
}

// Write renders the record set into workbook bytes: one sheet, a styled
// header row, per-type cell formats and auto-sized columns.
func (w *Writer) Write(records []parse.Record) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := w.buildStyles(f)
	if err != nil {
		return nil, err
	}

	for colIdx, col := range w.schema {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell %d: %w", colIdx, err)
		}
		if err := f.SetCellValue(sheetName, cell, col.Name); err != nil {
			return nil, fmt.Errorf("write header %q: %w", col.Name, err)
		}
	}

	for rowIdx, rec := range records {
		for colIdx, col := range w.schema {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("cell %d,%d: %w", colIdx, rowIdx, err)
			}
			value, ok := rec[col.Name]
			if !ok {
				continue
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	if err := w.applyStyles(f, styles, len(records)); err != nil {
		return nil, err
	}
	if err := w.sizeColumns(f, records); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("export.xlsx.ok",
		"rows", len(records),
		"columns", len(w.schema),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

type styleSet struct {
	header  int
	text    int
	date    int
	integer int
	decimal int
}

func (w *Writer) buildStyles(f *excelize.File) (*styleSet, error) {
	dataFont := &excelize.Font{Family: fontFamily, Size: fontSize}

	header, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		Font: &excelize.Font{Family: fontFamily, Size: fontSize, Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	text, err := f.NewStyle(&excelize.Style{Font: dataFont})
	if err != nil {
		return nil, fmt.Errorf("text style: %w", err)
	}

	dateFmt := w.dateFormat.NumFmt
	date, err := f.NewStyle(&excelize.Style{Font: dataFont, CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, fmt.Errorf("date style: %w", err)
	}

	intFmt := "0"
	integer, err := f.NewStyle(&excelize.Style{Font: dataFont, CustomNumFmt: &intFmt})
	if err != nil {
		return nil, fmt.Errorf("integer style: %w", err)
	}

	decFmt := "0.00"
	decimal, err := f.NewStyle(&excelize.Style{Font: dataFont, CustomNumFmt: &decFmt})
	if err != nil {
		return nil, fmt.Errorf("decimal style: %w", err)
	}

	return &styleSet{header: header, text: text, date: date, integer: integer, decimal: decimal}, nil
}

func (w *Writer) applyStyles(f *excelize.File, styles *styleSet, rows int) error {
	lastCol, err := excelize.ColumnNumberToName(len(w.schema))
	if err != nil {
		return fmt.Errorf("last column: %w", err)
	}

	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", styles.header); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}
	if rows == 0 {
		return nil
	}

	for colIdx, col := range w.schema {
		name, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", colIdx, err)
		}

		style := styles.text
		switch col.Type {
		case parse.ColumnDate:
			style = styles.date
		case parse.ColumnInteger:
			style = styles.integer
		case parse.ColumnDecimal:
			style = styles.decimal
		}

		first := fmt.Sprintf("%s2", name)
		last := fmt.Sprintf("%s%d", name, rows+1)
		if err := f.SetCellStyle(sheetName, first, last, style); err != nil {
			return fmt.Errorf("style column %s: %w", col.Name, err)
		}
	}
	return nil
}

// sizeColumns widens each column to its longest rendered value or its
// header, plus the fixed padding.
func (w *Writer) sizeColumns(f *excelize.File, records []parse.Record) error {
	for colIdx, col := range w.schema {
		longest := len(col.Name)
		for _, rec := range records {
			if n := len(w.displayString(rec[col.Name])); n > longest {
				longest = n
			}
		}

		name, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", colIdx, err)
		}
		if err := f.SetColWidth(sheetName, name, name, float64(longest)+w.widthOffset); err != nil {
			return fmt.Errorf("size column %s: %w", col.Name, err)
		}
	}
	return nil
}

func (w *Writer) displayString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(w.dateFormat.Layout)
	case float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
