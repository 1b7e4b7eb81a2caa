// Package tabular loads row-oriented datasets from CSV files and XLSX
// workbooks into an in-memory Table of named columns.
package tabular

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

// Format is the tabular file format, selected by extension
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat returns FormatCSV for a .csv extension and FormatXLSX otherwise
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatXLSX
}

// Load reads the file at path into a Table. The sheet selector only
// applies to workbooks; empty means the first sheet.
//
// A path that does not resolve to a readable regular file yields a
// FILE_NOT_FOUND domain error before any parse attempt. Parser failures
// yield PARSE_ERROR.
func Load(path, sheet string) (*Table, error) {
	if !isReadableFile(path) {
		return nil, shared.FileNotFound(path)
	}

	var (
		table *Table
		err   error
	)
	switch DetectFormat(path) {
	case FormatCSV:
		table, err = loadCSV(path)
	default:
		table, err = ReadXLSX(path, sheet)
	}
	if err != nil {
		return nil, shared.ParseError(path, err)
	}
	return table, nil
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	parser, err := NewCSVParser(f)
	if err != nil {
		return nil, err
	}
	return parser.ReadTable(path)
}

func isReadableFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() {
		_ = f.Close()
	}()
	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}
