package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowError_Error(t *testing.T) {
	t.Run("with column", func(t *testing.T) {
		err := NewRowError(3, "codigo", ErrCodeImportRequiredField, "field 'codigo' is required")
		assert.Equal(t, "row 3, column 'codigo': field 'codigo' is required", err.Error())
	})

	t.Run("without column", func(t *testing.T) {
		err := NewRowError(7, "", ErrCodeImportInvalidID, "no usable identifier")
		assert.Equal(t, "row 7: no usable identifier", err.Error())
	})

	t.Run("with value", func(t *testing.T) {
		err := NewRowErrorWithValue(4, "precoRefOpcional", ErrCodeImportInvalidType, "expected number", "x")
		assert.Equal(t, "x", err.Value)
	})
}

func TestErrorCollection(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		ec := NewErrorCollection(0)
		for i := 0; i < 100; i++ {
			ec.AddRequiredError(i+2, "codigo")
		}
		assert.False(t, ec.IsTruncated())
		assert.Empty(t, NewErrorCollection(0).ErrorSummary())
	})

	t.Run("truncates beyond limit", func(t *testing.T) {
		ec := NewErrorCollection(2)
		ec.AddRequiredError(2, "codigo")
		ec.AddRequiredError(3, "unidade")
		ec.AddTypeError(4, "precoRefOpcional", "number", "abc")

		assert.Len(t, ec.Errors(), 2)
		assert.Equal(t, 3, ec.TotalCount())
		assert.True(t, ec.IsTruncated())
		assert.Equal(t, map[string]int{
			ErrCodeImportRequiredField: 2,
			ErrCodeImportInvalidType:   1,
		}, ec.ErrorSummary())
	})
}
