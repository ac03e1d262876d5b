// Tagged cell values and their JSON encoding.

package tabular

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	intervalSep    = " - "
	dateTimeLayout = time.RFC3339Nano
)

// TypeJSON tags the value of an undeclared key whose JSON kind maps to no
// column type: bool, null, array or object. It is never a column type.
const TypeJSON DataType = "json"

// Value is one cell. Only the fields matching Type are meaningful; the others
// stay at their zero values.
type Value struct {
	Type DataType

	Int  int32     // TypeInteger
	Real float64   // TypeReal
	Text string    // TypeChar, TypeString, compact JSON for TypeJSON
	Date time.Time // TypeDate, start of TypeDateInterval
	End  time.Time // end of TypeDateInterval
}

// IntegerValue returns an integer cell.
func IntegerValue(i int32) Value {
	return Value{Type: TypeInteger, Int: i}
}

// RealValue returns a real cell.
func RealValue(f float64) Value {
	return Value{Type: TypeReal, Real: f}
}

// CharValue returns a single character cell.
func CharValue(r rune) Value {
	return Value{Type: TypeChar, Text: string(r)}
}

// StringValue returns a text cell.
func StringValue(s string) Value {
	return Value{Type: TypeString, Text: s}
}

// DateValue returns a date cell.
func DateValue(t time.Time) Value {
	return Value{Type: TypeDate, Date: t}
}

// JSONValue returns an opaque cell holding v encoded as JSON.
func JSONValue(v any) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Value{}, err
	}
	return Value{Type: TypeJSON, Text: string(data)}, nil
}

// IntervalValue returns a date interval cell. start need not precede end.
func IntervalValue(start, end time.Time) Value {
	return Value{Type: TypeDateInterval, Date: start, End: end}
}

// Equal reports whether both values have the same type and content.
//
// Dates compare as instants. Intervals compare start and end independently.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeInteger:
		return v.Int == o.Int
	case TypeReal:
		return v.Real == o.Real
	case TypeChar, TypeString, TypeJSON:
		return v.Text == o.Text
	case TypeDate:
		return v.Date.Equal(o.Date)
	case TypeDateInterval:
		return v.Date.Equal(o.Date) && v.End.Equal(o.End)
	}
	return false
}

// Plain returns the untagged representation used by the HTTP API.
func (v Value) Plain() any {
	switch v.Type {
	case TypeInteger:
		return v.Int
	case TypeReal:
		return v.Real
	case TypeChar, TypeString:
		return v.Text
	case TypeDate, TypeDateInterval:
		return v.String()
	case TypeJSON:
		return json.RawMessage(v.Text)
	}
	return nil
}

// String formats the value.
func (v Value) String() string {
	switch v.Type {
	case TypeInteger:
		return fmt.Sprint(v.Int)
	case TypeReal:
		return fmt.Sprint(v.Real)
	case TypeChar, TypeString, TypeJSON:
		return v.Text
	case TypeDate:
		return formatDate(v.Date)
	case TypeDateInterval:
		return formatDate(v.Date) + intervalSep + formatDate(v.End)
	}
	return ""
}

// formatDate drops the time of day when it is midnight UTC.
func formatDate(t time.Time) string {
	if t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}

// taggedValue is the on-disk form of a Value. The explicit type keeps
// integers and reals apart across a round trip.
type taggedValue struct {
	Type  DataType        `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Type.Valid() && v.Type != TypeJSON {
		return nil, fmt.Errorf("cannot marshal value of unknown type %q", v.Type)
	}
	if v.Type == TypeReal && (math.IsNaN(v.Real) || math.IsInf(v.Real, 0)) {
		return nil, errors.New("cannot marshal non-finite real")
	}
	raw, err := json.Marshal(v.Plain())
	if err != nil {
		return nil, err
	}
	return json.Marshal(taggedValue{Type: v.Type, Value: raw})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var tv taggedValue
	if err := json.Unmarshal(data, &tv); err != nil {
		return fmt.Errorf("invalid tagged value: %w", err)
	}
	if !tv.Type.Valid() && tv.Type != TypeJSON {
		return fmt.Errorf("invalid tagged value: unknown type %q", tv.Type)
	}
	if len(tv.Value) == 0 {
		return fmt.Errorf("invalid %s value: missing", tv.Type)
	}
	var raw any
	d := json.NewDecoder(bytes.NewReader(tv.Value))
	d.UseNumber()
	if err := d.Decode(&raw); err != nil {
		return fmt.Errorf("invalid %s value: %w", tv.Type, err)
	}
	if tv.Type == TypeJSON {
		out, err := JSONValue(raw)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", tv.Type, err)
		}
		*v = out
		return nil
	}
	out, err := coerce(raw, tv.Type)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", tv.Type, err)
	}
	*v = out
	return nil
}

// Row maps column names to values. Key order is irrelevant.
type Row map[string]Value

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Equal reports whether both rows hold the same set of (column, value) pairs.
func (r Row) Equal(o Row) bool {
	return maps.EqualFunc(r, o, Value.Equal)
}

// Plain returns the untagged representation used by the HTTP API.
func (r Row) Plain() map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v.Plain()
	}
	return out
}

// Conforms checks that the row has a value of the declared type for every
// column.
func (r Row) Conforms(columns []Column) error {
	for _, col := range columns {
		v, ok := r[col.Name]
		if !ok {
			return &Error{Kind: ErrMissingField, Column: col.Name, Index: -1}
		}
		if v.Type != col.Type {
			return &Error{Kind: ErrTypeMismatch, Column: col.Name, Type: col.Type, Index: -1}
		}
	}
	return nil
}
