package tabular

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// isoLayout matches the ISO-8601 form used for filtering dates, always in UTC
// with millisecond precision.
const isoLayout = "2006-01-02T15:04:05.000Z"

// valueKind orders values of different runtime types against each other.
type valueKind int

const (
	kindNull valueKind = iota
	kindBool
	kindNumber
	kindString
	kindTime
	kindOther
)

// classified is a value reduced to one comparable representation.
type classified struct {
	kind valueKind
	num  float64
	str  string
	b    bool
	t    time.Time
}

// classify maps a raw cell value onto its comparable form.
//
//nolint:gocyclo,cyclop // One case per supported Go kind.
func classify(v any) classified {
	switch x := v.(type) {
	case nil:
		return classified{kind: kindNull}
	case string:
		return classified{kind: kindString, str: x}
	case bool:
		return classified{kind: kindBool, b: x}
	case int:
		return classified{kind: kindNumber, num: float64(x)}
	case int8:
		return classified{kind: kindNumber, num: float64(x)}
	case int16:
		return classified{kind: kindNumber, num: float64(x)}
	case int32:
		return classified{kind: kindNumber, num: float64(x)}
	case int64:
		return classified{kind: kindNumber, num: float64(x)}
	case uint:
		return classified{kind: kindNumber, num: float64(x)}
	case uint8:
		return classified{kind: kindNumber, num: float64(x)}
	case uint16:
		return classified{kind: kindNumber, num: float64(x)}
	case uint32:
		return classified{kind: kindNumber, num: float64(x)}
	case uint64:
		return classified{kind: kindNumber, num: float64(x)}
	case float32:
		return classified{kind: kindNumber, num: float64(x)}
	case float64:
		return classified{kind: kindNumber, num: x}
	case time.Time:
		return classified{kind: kindTime, t: x}
	case *time.Time:
		if x == nil {
			return classified{kind: kindNull}
		}
		return classified{kind: kindTime, t: *x}
	case fmt.Stringer:
		return classified{kind: kindOther, str: x.String()}
	default:
		return classified{kind: kindOther, str: fmt.Sprint(x)}
	}
}

// IsNull reports whether v is treated as a missing value.
func IsNull(v any) bool {
	return classify(v).kind == kindNull
}

// SearchText returns the lower-cased text form of v used for filter matching.
// The second return value is false for nil values, which never match a filter.
func SearchText(v any) (string, bool) {
	c := classify(v)
	switch c.kind {
	case kindNull:
		return "", false
	case kindBool:
		return strconv.FormatBool(c.b), true
	case kindNumber:
		return numberText(v), true
	case kindTime:
		return strings.ToLower(c.t.UTC().Format(isoLayout)), true
	default:
		return strings.ToLower(c.str), true
	}
}

// numberText renders a numeric value in its canonical decimal form.
func numberText(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// CompareValues orders two non-null values. Strings compare case-insensitively,
// numbers numerically, false before true, and times by instant. Values of
// different kinds are ordered bool < number < string < time < other.
// Null handling is the caller's concern.
func CompareValues(a, b any) int {
	ca, cb := classify(a), classify(b)
	if ca.kind != cb.kind {
		return cmp.Compare(ca.kind, cb.kind)
	}

	switch ca.kind {
	case kindNull:
		return 0
	case kindBool:
		switch {
		case ca.b == cb.b:
			return 0
		case !ca.b:
			return -1
		default:
			return 1
		}
	case kindNumber:
		return cmp.Compare(ca.num, cb.num)
	case kindTime:
		return ca.t.Compare(cb.t)
	default:
		return strings.Compare(strings.ToLower(ca.str), strings.ToLower(cb.str))
	}
}

// NumberText returns the canonical decimal text of a numeric value. The second
// result is false when v is not a Go numeric type.
func NumberText(v any) (string, bool) {
	if classify(v).kind != kindNumber {
		return "", false
	}
	return numberText(v), true
}
