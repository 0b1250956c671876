package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/timeline-chart/internal/dto"
	"github.com/GregMSThompson/timeline-chart/internal/errs"
)

var xlsxColumns = []string{"start", "end", "color", "label"}

// LoadXLSX reads ranges from the first sheet of a workbook.
func LoadXLSX(path string) (dto.TimelineRequest, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dto.TimelineRequest{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadXLSX(f)
}

// DecodeXLSX reads a workbook streamed from r, such as an upload body.
func DecodeXLSX(r io.Reader) (dto.TimelineRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return dto.TimelineRequest{}, errs.NewValidationError(fmt.Sprintf("invalid XLSX workbook: %v", err))
	}
	defer f.Close()

	return ReadXLSX(f)
}

// ReadXLSX expects a header row naming start, end, color and label in any
// order; every following non-blank row is one range. The sheet name becomes
// the title and the chart bounds are left for the caller to derive.
func ReadXLSX(f *excelize.File) (dto.TimelineRequest, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dto.TimelineRequest{}, errs.NewValidationError("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return dto.TimelineRequest{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dto.TimelineRequest{}, errs.NewValidationError(fmt.Sprintf("sheet %s is empty", sheet))
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return dto.TimelineRequest{}, err
	}

	req := dto.TimelineRequest{Title: sheet}
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rowNum := i + 2
		start, err := cellDate(row, cols["start"], rowNum)
		if err != nil {
			return dto.TimelineRequest{}, err
		}
		end, err := cellDate(row, cols["end"], rowNum)
		if err != nil {
			return dto.TimelineRequest{}, err
		}
		req.Ranges = append(req.Ranges, dto.RangeRequest{
			Start: start,
			End:   end,
			Color: cell(row, cols["color"]),
			Label: cell(row, cols["label"]),
		})
	}
	return req, nil
}

func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(xlsxColumns))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range xlsxColumns {
		if _, ok := cols[name]; !ok {
			return nil, errs.NewValidationError(fmt.Sprintf("header row is missing the %q column", name))
		}
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// cellDate accepts YYYY-MM-DD text or an Excel date serial.
func cellDate(row []string, idx, rowNum int) (string, error) {
	v := cell(row, idx)
	if _, err := time.Parse(dto.DateLayout, v); err == nil {
		return v, nil
	}
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "", errs.NewValidationError(fmt.Sprintf("row %d: %q is not a date", rowNum, v))
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", errs.NewValidationError(fmt.Sprintf("row %d: %q is not a date", rowNum, v))
	}
	return t.Format(dto.DateLayout), nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
