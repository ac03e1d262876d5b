package tabular

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// decodeRow decodes s the same way the HTTP layer does.
func decodeRow(t *testing.T, s string) map[string]any {
	t.Helper()
	d := json.NewDecoder(strings.NewReader(s))
	d.UseNumber()
	var raw map[string]any
	if err := d.Decode(&raw); err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return raw
}

func TestValidateRow(t *testing.T) {
	t.Run("Types", func(t *testing.T) {
		tests := []struct {
			name  string
			typ   DataType
			input string
			ok    bool
		}{
			{"integer", TypeInteger, `42`, true},
			{"integer negative", TypeInteger, `-7`, true},
			{"integer whole float", TypeInteger, `3.0`, true},
			{"integer numeric string", TypeInteger, `"12"`, true},
			{"integer bool", TypeInteger, `true`, true},
			{"integer fraction", TypeInteger, `3.5`, false},
			{"integer overflow", TypeInteger, `2147483648`, false},
			{"integer min", TypeInteger, `-2147483648`, true},
			{"integer text", TypeInteger, `"abc"`, false},
			{"integer null", TypeInteger, `null`, false},
			{"real", TypeReal, `3.14`, true},
			{"real integer", TypeReal, `3`, true},
			{"real string", TypeReal, `"2.5e3"`, true},
			{"real NaN string", TypeReal, `"NaN"`, false},
			{"real text", TypeReal, `"x"`, false},
			{"char", TypeChar, `"a"`, true},
			{"char multibyte", TypeChar, `"é"`, true},
			{"char empty", TypeChar, `""`, false},
			{"char long", TypeChar, `"ab"`, false},
			{"char number", TypeChar, `1`, false},
			{"string", TypeString, `"hello"`, true},
			{"string empty", TypeString, `""`, true},
			{"string number", TypeString, `5`, false},
			{"date iso", TypeDate, `"2024-01-01"`, true},
			{"date rfc3339", TypeDate, `"2024-01-01T10:00:00Z"`, true},
			{"date us", TypeDate, `"01/31/2024"`, true},
			{"date dotted", TypeDate, `"31.01.2024"`, true},
			{"date bad", TypeDate, `"not-a-date"`, false},
			{"date number", TypeDate, `20240101`, false},
			{"interval iso", TypeDateInterval, `"2024-01-01 - 2024-01-31"`, true},
			{"interval slashes", TypeDateInterval, `"01/01/2024-01/31/2024"`, true},
			{"interval reversed", TypeDateInterval, `"2024-02-01 - 2024-01-01"`, true},
			{"interval not a date", TypeDateInterval, `"not-a-date"`, false},
			{"interval single", TypeDateInterval, `"2024-01-01"`, false},
			{"interval three", TypeDateInterval, `"2024-01-01 - 2024-01-02 - 2024-01-03"`, false},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cols := []Column{{Name: "v", Type: tt.typ}}
				row, err := ValidateRow(cols, decodeRow(t, `{"v":`+tt.input+`}`))
				if tt.ok {
					if err != nil {
						t.Fatalf("ValidateRow(%s) returned error: %v", tt.input, err)
					}
					if got := row["v"].Type; got != tt.typ {
						t.Errorf("expected type %s, got %s", tt.typ, got)
					}
					return
				}
				if !errors.Is(err, ErrTypeMismatch) {
					t.Fatalf("expected ErrTypeMismatch for %s, got %v", tt.input, err)
				}
				var e *Error
				if !errors.As(err, &e) || e.Column != "v" || e.Type != tt.typ {
					t.Errorf("unexpected error fields: %+v", e)
				}
			})
		}
	})

	t.Run("MissingField", func(t *testing.T) {
		cols := []Column{{Name: "id", Type: TypeInteger}, {Name: "name", Type: TypeString}}
		_, err := ValidateRow(cols, decodeRow(t, `{"id":1}`))
		if !errors.Is(err, ErrMissingField) {
			t.Fatalf("expected ErrMissingField, got %v", err)
		}
		if !strings.Contains(err.Error(), `"name"`) {
			t.Errorf("error should name the column: %v", err)
		}
	})

	t.Run("ExtraKeys", func(t *testing.T) {
		cols := []Column{{Name: "id", Type: TypeInteger}}
		row, err := ValidateRow(cols, decodeRow(t, `{"id":1,"note":"x","n":7,"f":1.5}`))
		if err != nil {
			t.Fatal(err)
		}
		if row["note"] != StringValue("x") {
			t.Errorf("note = %+v", row["note"])
		}
		if row["n"] != IntegerValue(7) {
			t.Errorf("n = %+v", row["n"])
		}
		if row["f"] != RealValue(1.5) {
			t.Errorf("f = %+v", row["f"])
		}
	})

	t.Run("ExtraKeysAnyKind", func(t *testing.T) {
		cols := []Column{{Name: "id", Type: TypeInteger}}
		row, err := ValidateRow(cols, decodeRow(t, `{"id":1,"active":true,"note":null,"tags":["a",2],"meta":{"b":1.50,"a":{}},"big":1e400}`))
		if err != nil {
			t.Fatalf("extra keys must be accepted: %v", err)
		}
		want := map[string]string{
			"active": `true`,
			"note":   `null`,
			"tags":   `["a",2]`,
			"meta":   `{"a":{},"b":1.50}`,
			"big":    `1e400`,
		}
		for k, text := range want {
			if v := row[k]; v.Type != TypeJSON || v.Text != text {
				t.Errorf("%s = %+v, want json %s", k, v, text)
			}
		}
		data, err := json.Marshal(row)
		if err != nil {
			t.Fatal(err)
		}
		var got Row
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if !got.Equal(row) {
			t.Errorf("round trip changed the row: %v != %v", got, row)
		}
		if p := got.Plain(); string(p["tags"].(json.RawMessage)) != `["a",2]` {
			t.Errorf("plain tags = %#v", p["tags"])
		}
	})

	t.Run("NullColumn", func(t *testing.T) {
		cols := []Column{{Name: "id", Type: TypeInteger}}
		if _, err := ValidateRow(cols, decodeRow(t, `{"id":null}`)); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("declared columns still reject null, got %v", err)
		}
	})

	t.Run("InputUnchanged", func(t *testing.T) {
		cols := []Column{{Name: "id", Type: TypeInteger}}
		raw := decodeRow(t, `{"id":"5"}`)
		if _, err := ValidateRow(cols, raw); err != nil {
			t.Fatal(err)
		}
		if raw["id"] != "5" {
			t.Errorf("input was modified: %#v", raw["id"])
		}
	})

	t.Run("IntervalValue", func(t *testing.T) {
		cols := []Column{{Name: "span", Type: TypeDateInterval}}
		row, err := ValidateRow(cols, decodeRow(t, `{"span":"2024-01-01 - 2024-01-31"}`))
		if err != nil {
			t.Fatal(err)
		}
		want := IntervalValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
		if !row["span"].Equal(want) {
			t.Errorf("span = %v, want %v", row["span"], want)
		}
		if got := row["span"].String(); got != "2024-01-01 - 2024-01-31" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestValidateColumns(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
		ok   bool
	}{
		{"empty", nil, true},
		{"valid", []Column{{"id", TypeInteger}, {"name", TypeString}}, true},
		{"blank name", []Column{{" ", TypeInteger}}, false},
		{"unknown type", []Column{{"id", DataType("blob")}}, false},
		{"duplicate", []Column{{"id", TypeInteger}, {"id", TypeReal}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumns(tt.cols)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidSchema) {
				t.Errorf("expected ErrInvalidSchema, got %v", err)
			}
		})
	}
}

func TestDataTypeUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want DataType
	}{
		{`"integer"`, TypeInteger},
		{`"Integer"`, TypeInteger},
		{`"REAL"`, TypeReal},
		{`"DateInterval"`, TypeDateInterval},
		{`"DataInterval"`, TypeDateInterval},
		{`0`, TypeInteger},
		{`5`, TypeDateInterval},
	}
	for _, tt := range tests {
		var got DataType
		if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Unmarshal(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{`"blob"`, `6`, `-1`, `true`} {
		var got DataType
		if err := json.Unmarshal([]byte(bad), &got); err == nil {
			t.Errorf("Unmarshal(%s) succeeded with %s", bad, got)
		}
	}
}
