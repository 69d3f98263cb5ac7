package table

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the type of a cell or column.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindMixed
)

// String returns the dtype-style name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int64"
	case KindFloat:
		return "float64"
	case KindString:
		return "string"
	case KindMixed:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf returns the kind of a single cell value.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case string:
		return KindString
	default:
		return KindInvalid
	}
}

// normalize widens Go numeric types to the cell set. Unknown types pass
// through unchanged so Validate can report them.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case float32:
		return float64(n)
	}
	return v
}

// ParseCell converts a text cell to its inferred value:
//
//	""              -> nil
//	"42", "-7"      -> int64
//	"1.5", "3.0"    -> float64 (also "nan", "inf")
//	"true", "FALSE" -> bool
//	anything else   -> string
func ParseCell(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

// FormatCell renders a cell for text encodings. Floats always carry a decimal
// point or exponent so ParseCell reads them back as floats.
func FormatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case bool:
		if c {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		switch {
		case math.IsNaN(c):
			return ""
		case math.IsInf(c, 1):
			return "inf"
		case math.IsInf(c, -1):
			return "-inf"
		}
		s := strconv.FormatFloat(c, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case string:
		return c
	default:
		return ""
	}
}
