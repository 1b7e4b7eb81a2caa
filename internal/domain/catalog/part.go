package catalog

import (
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

// PartsCollection is the catalog collection under the data root
const PartsCollection = "diversey_pecas"

// Source column names of the parts spreadsheet
const (
	ColumnCode           = "codigo"
	ColumnDescription    = "descricao"
	ColumnUnit           = "unidade"
	ColumnActive         = "ativo"
	ColumnReferencePrice = "precoRefOpcional"
	ColumnSupplierID     = "fornecedorIdOpcional"
)

// RequiredColumns must all be present in the source header
var RequiredColumns = []string{ColumnCode, ColumnDescription, ColumnUnit}

// MaxIDLength bounds the sanitized record key
const MaxIDLength = 120

// negativeWords are the values of the active column read as false
var negativeWords = map[string]struct{}{
	"0":     {},
	"false": {},
	"não":   {},
	"nao":   {},
	"n":     {},
	"off":   {},
}

// Cell is a raw scalar read from a source row
type Cell interface {
	IsMissing() bool
	Bool() (bool, bool)
	Float() (float64, bool)
	String() string
}

// Part is a parts catalog entry as stored under /data/diversey_pecas/<id>.
// Optional fields are omitted from the document when absent.
type Part struct {
	ID             string   `json:"id"`
	Code           string   `json:"codigo"`
	Description    string   `json:"descricao"`
	Unit           string   `json:"unidade"`
	Active         bool     `json:"ativo"`
	ReferencePrice *float64 `json:"precoRefOpcional,omitempty"`
	SupplierID     string   `json:"fornecedorIdOpcional,omitempty"`
}

// NewPart creates an active part from trimmed code, description and unit.
// The id is the sanitized code, falling back to the sanitized description.
func NewPart(code, description, unit string) (*Part, error) {
	code = strings.TrimSpace(code)
	description = collapseSpaces(description)
	unit = strings.TrimSpace(unit)

	if code == "" {
		return nil, shared.InvalidInput("code cannot be empty")
	}
	if description == "" {
		return nil, shared.InvalidInput("description cannot be empty")
	}
	if unit == "" {
		return nil, shared.InvalidInput("unit cannot be empty")
	}

	id := DeriveID(code, description)
	if id == "" {
		return nil, shared.InvalidInput("no usable identifier in code or description")
	}

	return &Part{
		ID:          id,
		Code:        code,
		Description: description,
		Unit:        unit,
		Active:      true,
	}, nil
}

// SetActive sets the active flag
func (p *Part) SetActive(active bool) {
	p.Active = active
}

// SetReferencePrice sets the optional reference price
func (p *Part) SetReferencePrice(price float64) {
	p.ReferencePrice = &price
}

// SetSupplierID sets the optional supplier id; blank clears it
func (p *Part) SetSupplierID(id string) {
	p.SupplierID = strings.TrimSpace(id)
}

// Path returns the document path of the part below root
func (p *Part) Path(root string) string {
	return shared.JoinPath(root, PartsCollection, p.ID)
}

// DeriveID returns SanitizeID(code), or SanitizeID(description) when the
// code sanitizes to empty. Empty means neither yields a usable key.
func DeriveID(code, description string) string {
	if id := SanitizeID(code); id != "" {
		return id
	}
	return SanitizeID(description)
}

// SanitizeID turns free text into a database key: whitespace runs become a
// single hyphen, characters outside [A-Za-z0-9_.-] are dropped and the
// result is cut to MaxIDLength. Case is preserved. SanitizeID is idempotent.
func SanitizeID(value string) string {
	v := strings.Join(strings.FieldsFunc(value, unicode.IsSpace), "-")

	var sb strings.Builder
	sb.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if isIDByte(v[i]) {
			sb.WriteByte(v[i])
		}
	}

	id := sb.String()
	if len(id) > MaxIDLength {
		id = id[:MaxIDLength]
	}
	return id
}

func isIDByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '.':
		return true
	}
	return false
}

// ParseActive reads the active column. Missing means true, booleans are
// taken as-is and any other value is false only when it is one of the
// negative words (0, false, não, nao, n, off), compared case-insensitively.
func ParseActive(c Cell) bool {
	if c == nil || c.IsMissing() {
		return true
	}
	if b, ok := c.Bool(); ok {
		return b
	}
	s := strings.ToLower(strings.TrimSpace(norm.NFC.String(c.String())))
	_, negative := negativeWords[s]
	return !negative
}

// ParseReferencePrice reads the optional price column. The second result
// is false when the value is missing or not a finite number.
func ParseReferencePrice(c Cell) (float64, bool) {
	if c == nil || c.IsMissing() {
		return 0, false
	}
	f, ok := c.Float()
	if !ok {
		d, err := decimal.NewFromString(strings.TrimSpace(c.String()))
		if err != nil {
			return 0, false
		}
		f, _ = d.Float64()
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseSupplierID reads the optional supplier column. Blank values are absent.
func ParseSupplierID(c Cell) (string, bool) {
	if c == nil || c.IsMissing() {
		return "", false
	}
	s := strings.TrimSpace(c.String())
	return s, s != ""
}

// collapseSpaces trims s and folds internal whitespace runs to one space
func collapseSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
