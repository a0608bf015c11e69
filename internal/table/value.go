package table

import (
	"strconv"
	"strings"
)

// Kind identifies what a cell holds
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "empty"
	}
}

// Value is a single scalar cell value. The zero Value is empty.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Empty returns a missing cell value
func Empty() Value {
	return Value{}
}

// Text wraps a string cell value. An empty string is still a text value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number wraps a numeric cell value
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// ParseValue turns a raw cell string into a Value. Strings that parse as a
// number become numbers only when numeric is set, so text cells holding
// digits keep their text form.
func ParseValue(raw string, numeric bool) Value {
	if raw == "" {
		return Empty()
	}
	if numeric {
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return Number(f)
		}
	}
	return Text(raw)
}

func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether the cell is missing altogether
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

// IsBlank reports whether the cell is missing or holds only whitespace
func (v Value) IsBlank() bool {
	return strings.TrimSpace(v.String()) == ""
}

// Float returns the numeric content, if any
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String returns the textual representation used for keys, aggregation and
// display. Numbers use the shortest decimal form, so 3 and 3.0 both give "3".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Equal compares kind and content
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	default:
		return true
	}
}
