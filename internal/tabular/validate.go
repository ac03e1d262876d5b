// Coerces loosely typed input into tagged values.

package tabular

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Input comes from encoding/json decoded with UseNumber, or from YAML seed
// manifests. The accepted kinds per column type are:
//
//	integer       JSON integer, whole number, numeric string or bool, within int32
//	real          any finite number, numeric string or bool
//	char          string of exactly one character
//	string        any string
//	date          string parsed with dateLayouts, or time.Time
//	dateInterval  "<date> - <date>", or "<date>-<date>" when neither date
//	              contains a dash
//
// Bools map to 0 and 1. Anything else is a type mismatch.
//
// Undeclared keys are never rejected: strings and numbers get the matching
// tag, every other JSON kind is kept verbatim as TypeJSON.

// dateLayouts are tried in order.
var dateLayouts = []string{
	dateLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

var (
	errNotNumber    = errors.New("not a number")
	errNotWhole     = errors.New("not a whole number")
	errOutOfRange   = errors.New("out of 32-bit integer range")
	errNotFinite    = errors.New("not a finite number")
	errNotString    = errors.New("not a string")
	errNotOneChar   = errors.New("not exactly one character")
	errNotDate      = errors.New("not a recognized date")
	errIntervalForm = errors.New("not two dates separated by '-'")
	errNull         = errors.New("null value")
)

// ValidateRow checks raw against columns and returns the typed row.
//
// Every column must be present and coercible to its type. Keys that are not
// columns are kept with an inferred type. raw is not modified.
func ValidateRow(columns []Column, raw map[string]any) (Row, error) {
	row := make(Row, len(raw))
	for _, col := range columns {
		v, ok := raw[col.Name]
		if !ok {
			return nil, &Error{Kind: ErrMissingField, Column: col.Name, Index: -1}
		}
		val, err := coerce(v, col.Type)
		if err != nil {
			return nil, &Error{Kind: ErrTypeMismatch, Column: col.Name, Type: col.Type, Index: -1, Err: err}
		}
		row[col.Name] = val
	}
	for k, v := range raw {
		if _, ok := row[k]; ok {
			continue
		}
		val, err := infer(v)
		if err != nil {
			return nil, &Error{Kind: ErrTypeMismatch, Column: k, Index: -1, Msg: fmt.Sprintf("value of extra key %q is not representable as JSON", k), Err: err}
		}
		row[k] = val
	}
	return row, nil
}

// ValidateColumns checks that a column list is usable for a table.
func ValidateColumns(columns []Column) error {
	seen := make(map[string]struct{}, len(columns))
	for i, col := range columns {
		if strings.TrimSpace(col.Name) == "" {
			return InvalidSchema("", "column %d: name is required", i)
		}
		if !col.Type.Valid() {
			return InvalidSchema("", "column %q: unknown type %q", col.Name, col.Type)
		}
		if _, ok := seen[col.Name]; ok {
			return InvalidSchema("", "column %q is declared twice", col.Name)
		}
		seen[col.Name] = struct{}{}
	}
	return nil
}

// coerce converts v to a value of type dt.
func coerce(v any, dt DataType) (Value, error) {
	if v == nil {
		return Value{}, errNull
	}
	switch dt {
	case TypeInteger:
		i, err := toInt32(v)
		if err != nil {
			return Value{}, err
		}
		return IntegerValue(i), nil
	case TypeReal:
		f, err := toFloat64(v)
		if err != nil {
			return Value{}, err
		}
		return RealValue(f), nil
	case TypeChar:
		s, ok := v.(string)
		if !ok {
			return Value{}, errNotString
		}
		if utf8.RuneCountInString(s) != 1 {
			return Value{}, errNotOneChar
		}
		return Value{Type: TypeChar, Text: s}, nil
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return Value{}, errNotString
		}
		return StringValue(s), nil
	case TypeDate:
		if t, ok := v.(time.Time); ok {
			return DateValue(t), nil
		}
		s, ok := v.(string)
		if !ok {
			return Value{}, errNotString
		}
		t, err := parseDate(s)
		if err != nil {
			return Value{}, err
		}
		return DateValue(t), nil
	case TypeDateInterval:
		s, ok := v.(string)
		if !ok {
			return Value{}, errNotString
		}
		start, end, err := parseInterval(s)
		if err != nil {
			return Value{}, err
		}
		return IntervalValue(start, end), nil
	}
	return Value{}, fmt.Errorf("unknown data type %q", dt)
}

// infer types an undeclared key from its JSON kind.
func infer(v any) (Value, error) {
	switch t := v.(type) {
	case string:
		return StringValue(t), nil
	case json.Number, float64, float32, int, int64, int32:
		if i, err := toInt32(v); err == nil {
			return IntegerValue(i), nil
		}
		if f, err := toFloat64(v); err == nil {
			return RealValue(f), nil
		}
	}
	return JSONValue(v)
}

func toInt32(v any) (int32, error) {
	var i int64
	switch t := v.(type) {
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			if ferr != nil {
				return 0, errNotNumber
			}
			return floatToInt32(f)
		}
		i = n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, errNotNumber
		}
		i = n
	case float64:
		return floatToInt32(t)
	case float32:
		return floatToInt32(float64(t))
	case int:
		i = int64(t)
	case int64:
		i = t
	case int32:
		return t, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errNotNumber
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, errOutOfRange
	}
	return int32(i), nil
}

func floatToInt32(f float64) (int32, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	if f != math.Trunc(f) {
		return 0, errNotWhole
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, errOutOfRange
	}
	return int32(f), nil
}

func toFloat64(v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, errNotNumber
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, errNotNumber
		}
		f = n
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errNotNumber
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errNotDate
}

// parseInterval splits on " - " when present so ISO dates keep their dashes,
// otherwise on a bare '-'. There must be exactly two parts. No ordering is
// enforced.
func parseInterval(s string) (time.Time, time.Time, error) {
	sep := "-"
	if strings.Contains(s, intervalSep) {
		sep = intervalSep
	}
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, errIntervalForm
	}
	start, err := parseDate(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
