package importapp

import (
	"fmt"
	"sort"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/catalog"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
	tabular "github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/infrastructure/import"
)

// maxReportedIssues bounds the skipped-row and warning reports
const maxReportedIssues = 100

// NormalizeResult is the outcome of validating and normalizing a table
type NormalizeResult struct {
	// Parts holds the accepted records in source order
	Parts     []*catalog.Part
	TotalRows int
	// Skipped records why rows were dropped
	Skipped *tabular.ErrorCollection
	// Warnings records ignored optional values and id collisions
	Warnings *tabular.ErrorCollection
	// Collisions lists ids produced by more than one row, sorted
	Collisions []string
}

// ValidRows returns the number of accepted rows
func (r *NormalizeResult) ValidRows() int {
	return len(r.Parts)
}

// SkippedRows returns the number of dropped rows
func (r *NormalizeResult) SkippedRows() int {
	return r.TotalRows - len(r.Parts)
}

// Normalize validates the table header, then turns each row into a part.
// Rows with an empty code, description or unit, or without a usable id, are
// skipped and reported in Skipped; they never fail the batch. A missing
// required column fails before any row is read, and a table where no row
// survives fails with NO_VALID_ROWS.
//
// Rows that sanitize to the same id are all kept, so the last one wins when
// written. They are listed in Collisions.
func Normalize(table *tabular.Table) (*NormalizeResult, error) {
	if missing := table.MissingColumns(catalog.RequiredColumns); len(missing) > 0 {
		return nil, shared.MissingColumn(missing[0])
	}

	result := &NormalizeResult{
		Parts:     make([]*catalog.Part, 0, table.Len()),
		TotalRows: table.Len(),
		Skipped:   tabular.NewErrorCollection(maxReportedIssues),
		Warnings:  tabular.NewErrorCollection(maxReportedIssues),
	}
	hasPrice := table.HasColumn(catalog.ColumnReferencePrice)
	hasSupplier := table.HasColumn(catalog.ColumnSupplierID)

	firstRow := make(map[string]int)
	collided := make(map[string]struct{})

	for _, row := range table.Rows {
		part := normalizeRow(row, hasPrice, hasSupplier, result)
		if part == nil {
			continue
		}

		if prev, seen := firstRow[part.ID]; seen {
			collided[part.ID] = struct{}{}
			result.Warnings.Add(tabular.NewRowErrorWithValue(row.LineNumber, catalog.ColumnCode,
				tabular.ErrCodeImportDuplicateID,
				fmt.Sprintf("id already produced by row %d, last row wins", prev), part.ID))
		} else {
			firstRow[part.ID] = row.LineNumber
		}
		result.Parts = append(result.Parts, part)
	}

	if len(result.Parts) == 0 {
		return nil, shared.NoValidRows(table.Source)
	}

	for id := range collided {
		result.Collisions = append(result.Collisions, id)
	}
	sort.Strings(result.Collisions)

	return result, nil
}

// normalizeRow returns nil when the row must be skipped, after recording why
func normalizeRow(row *tabular.Row, hasPrice, hasSupplier bool, result *NormalizeResult) *catalog.Part {
	code := row.Get(catalog.ColumnCode).Trimmed()
	description := row.Get(catalog.ColumnDescription).Trimmed()
	unit := row.Get(catalog.ColumnUnit).Trimmed()

	valid := true
	for _, f := range []struct{ column, value string }{
		{catalog.ColumnCode, code},
		{catalog.ColumnDescription, description},
		{catalog.ColumnUnit, unit},
	} {
		if f.value == "" {
			result.Skipped.AddRequiredError(row.LineNumber, f.column)
			valid = false
		}
	}
	if !valid {
		return nil
	}

	part, err := catalog.NewPart(code, description, unit)
	if err != nil {
		result.Skipped.Add(tabular.NewRowError(row.LineNumber, "", tabular.ErrCodeImportInvalidID,
			"no usable identifier in code or description"))
		return nil
	}

	part.SetActive(catalog.ParseActive(row.Get(catalog.ColumnActive)))

	if hasPrice {
		cell := row.Get(catalog.ColumnReferencePrice)
		if price, ok := catalog.ParseReferencePrice(cell); ok {
			part.SetReferencePrice(price)
		} else if !cell.IsMissing() {
			result.Warnings.AddTypeError(row.LineNumber, catalog.ColumnReferencePrice, "number", cell.String())
		}
	}

	if hasSupplier {
		if supplier, ok := catalog.ParseSupplierID(row.Get(catalog.ColumnSupplierID)); ok {
			part.SetSupplierID(supplier)
		}
	}

	return part
}
