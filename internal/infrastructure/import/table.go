package tabular

import (
	"strconv"
	"strings"
)

// Kind identifies the scalar type of a raw cell value
type Kind int

const (
	KindMissing Kind = iota
	KindString
	KindNumber
	KindBool
)

// String returns a readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// Value is one raw cell as read from the source file
type Value struct {
	Kind Kind
	str  string
	num  float64
	b    bool
}

// Missing returns the absent-value marker
func Missing() Value {
	return Value{Kind: KindMissing}
}

// StringValue wraps a text cell
func StringValue(s string) Value {
	return Value{Kind: KindString, str: s}
}

// NumberValue wraps a numeric cell
func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, num: n}
}

// BoolValue wraps a boolean cell
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, b: b}
}

// IsMissing reports whether the cell is empty or absent
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Float returns the numeric payload and whether the value is a number
func (v Value) Float() (float64, bool) {
	return v.num, v.Kind == KindNumber
}

// Bool returns the boolean payload and whether the value is a boolean
func (v Value) Bool() (bool, bool) {
	return v.b, v.Kind == KindBool
}

// String renders the value as text. Missing values render as "".
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Trimmed renders the value as text with surrounding whitespace removed
func (v Value) Trimmed() string {
	return strings.TrimSpace(v.String())
}

// Row is a single data row keyed by column name
type Row struct {
	LineNumber int
	Data       map[string]Value
}

// Get returns the value for a column, Missing if the column is absent
func (r *Row) Get(column string) Value {
	if v, ok := r.Data[column]; ok {
		return v
	}
	return Missing()
}

// IsEmpty returns true if the row has no non-missing values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if !v.IsMissing() {
			return false
		}
	}
	return true
}

// Table is an ordered set of rows sharing one header
type Table struct {
	Source  string
	Sheet   string
	Headers []string
	Rows    []*Row
	columns map[string]struct{}
}

// NewTable creates a table from trimmed header names
func NewTable(source string, headers []string) *Table {
	t := &Table{
		Source:  source,
		Headers: make([]string, len(headers)),
		columns: make(map[string]struct{}, len(headers)),
	}
	for i, h := range headers {
		h = trimSpaces(h)
		t.Headers[i] = h
		t.columns[h] = struct{}{}
	}
	return t
}

// HasColumn checks if a column exists in the header
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// MissingColumns returns the required columns absent from the header, in
// the order they were requested
func (t *Table) MissingColumns(required []string) []string {
	var missing []string
	for _, c := range required {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// appendRecord maps positional cells onto the header and appends the row.
// Completely empty rows are dropped.
func (t *Table) appendRecord(lineNumber int, cells []Value) {
	row := &Row{
		LineNumber: lineNumber,
		Data:       make(map[string]Value, len(t.Headers)),
	}
	for i, h := range t.Headers {
		if h == "" {
			continue
		}
		if i < len(cells) {
			row.Data[h] = cells[i]
		} else {
			row.Data[h] = Missing()
		}
	}
	if row.IsEmpty() {
		return
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}
