package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads one worksheet of the workbook at path into a Table.
// An empty sheet name selects the first sheet of the workbook.
func ReadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return readWorkbook(f, path, sheet)
}

func readWorkbook(f *excelize.File, source, sheet string) (*Table, error) {
	name, err := resolveSheet(f, sheet)
	if err != nil {
		return nil, err
	}

	// Raw values keep numbers free of the cell's display format
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrMissingHeader
	}

	table := NewTable(source, rows[0])
	table.Sheet = name

	for i := 1; i < len(rows); i++ {
		lineNumber := i + 1
		cells := make([]Value, len(rows[i]))
		for j, raw := range rows[i] {
			cells[j], err = cellValue(f, name, j+1, lineNumber, raw)
			if err != nil {
				return nil, err
			}
		}
		table.appendRecord(lineNumber, cells)
	}

	return table, nil
}

func resolveSheet(f *excelize.File, sheet string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrSheetNotFound
	}
	if sheet == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == sheet {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, sheet, strings.Join(sheets, ", "))
}

// cellValue types a raw cell according to the workbook's cell type
func cellValue(f *excelize.File, sheet string, col, row int, raw string) (Value, error) {
	if raw == "" {
		return Missing(), nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Value{}, err
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return Value{}, fmt.Errorf("failed to read cell %s: %w", axis, err)
	}

	switch cellType {
	case excelize.CellTypeBool:
		return BoolValue(raw == "1" || strings.EqualFold(raw, "true")), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return StringValue(raw), nil
	default:
		// Numeric cells are usually written without an explicit type
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return NumberValue(n), nil
		}
		return StringValue(raw), nil
	}
}
