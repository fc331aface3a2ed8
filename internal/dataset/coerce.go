package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rshade/tablekit/internal/tabular"
)

const dateOnly = "2006-01-02"

// coerceRows converts every cell in place according to its column type.
func coerceRows(cols []tabular.Column, rows []tabular.Row) error {
	for i, row := range rows {
		for _, c := range cols {
			v, ok := row[c.Key]
			if !ok {
				continue
			}
			cv, err := coerce(v, c.Type)
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", i+1, c.Key, err)
			}
			row[c.Key] = cv
		}
	}
	return nil
}

// coerce converts a raw decoded value to the Go type matching t.
// Empty strings become nil for every non-string type.
func coerce(v any, t tabular.ColumnType) (any, error) {
	if v == nil {
		return nil, nil
	}
	s, isString := v.(string)
	if isString && t != tabular.TypeString && t != tabular.TypeAuto && strings.TrimSpace(s) == "" {
		return nil, nil
	}

	switch t {
	case tabular.TypeAuto:
		return v, nil
	case tabular.TypeString:
		if isString {
			return s, nil
		}
		return fmt.Sprint(v), nil
	case tabular.TypeNumber:
		return toNumber(v)
	case tabular.TypeBool:
		return toBool(v)
	case tabular.TypeDate:
		return toTime(v)
	default:
		return v, nil
	}
}

func toNumber(v any) (any, error) {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32:
		return n, nil
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, n)
		}
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f), nil
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a number", ErrInvalidValue, v)
	}
}

func toBool(v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, b)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a boolean", ErrInvalidValue, v)
	}
}

func toTime(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, ok := parseDate(t)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a date", ErrInvalidValue, t)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a date", ErrInvalidValue, v)
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, dateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// inferTypes assigns a type to every TypeAuto column whose non-empty cells
// all parse as the same number, bool or date kind. Used for text sources
// (CSV, XLSX) where every cell arrives as a string.
func inferTypes(cols []tabular.Column, rows []tabular.Row) {
	for i := range cols {
		if cols[i].Type != tabular.TypeAuto {
			continue
		}
		cols[i].Type = inferType(cols[i].Key, rows)
	}
}

func inferType(key string, rows []tabular.Row) tabular.ColumnType {
	isNum, isBool, isDate := true, true, true
	seen := false
	for _, r := range rows {
		s, _ := r[key].(string)
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		seen = true
		if isNum {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				isNum = false
			}
		}
		if isBool {
			if _, err := strconv.ParseBool(s); err != nil || isBinaryDigit(s) {
				isBool = false
			}
		}
		if isDate {
			if _, ok := parseDate(s); !ok {
				isDate = false
			}
		}
		if !isNum && !isBool && !isDate {
			return tabular.TypeString
		}
	}

	switch {
	case !seen:
		return tabular.TypeString
	case isNum:
		return tabular.TypeNumber
	case isBool:
		return tabular.TypeBool
	case isDate:
		return tabular.TypeDate
	default:
		return tabular.TypeString
	}
}

// isBinaryDigit reports whether s is "0" or "1", which ParseBool accepts but which
// read more naturally as numbers.
func isBinaryDigit(s string) bool {
	return s == "0" || s == "1"
}
