package tabular

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"
)

func TestValueJSON(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	values := []Value{
		IntegerValue(3),
		RealValue(3),
		RealValue(-0.25),
		CharValue('z'),
		StringValue("3"),
		DateValue(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)),
		DateValue(time.Date(2024, 2, 29, 13, 4, 5, 0, loc)),
		IntervalValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)),
		mustJSON(t, true),
		mustJSON(t, nil),
		mustJSON(t, []any{"a", 1}),
		mustJSON(t, map[string]any{"k": []any{}}),
	}
	for _, v := range values {
		t.Run(string(v.Type)+"/"+v.String(), func(t *testing.T) {
			data, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var got Value
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", data, err)
			}
			if got.Type != v.Type {
				t.Errorf("type changed from %s to %s via %s", v.Type, got.Type, data)
			}
			if !got.Equal(v) {
				t.Errorf("value changed from %v to %v via %s", v, got, data)
			}
		})
	}

	t.Run("TaggedJSON", func(t *testing.T) {
		data, err := json.Marshal(Row{"ok": mustJSON(t, false)})
		if err != nil {
			t.Fatal(err)
		}
		if want := `{"ok":{"type":"json","value":false}}`; string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})

	t.Run("Tagged", func(t *testing.T) {
		data, err := json.Marshal(Row{"n": RealValue(2)})
		if err != nil {
			t.Fatal(err)
		}
		if want := `{"n":{"type":"real","value":2}}`; string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, in := range []string{
			`{"type":"integer","value":"x"}`,
			`{"type":"blob","value":1}`,
			`{"type":"char","value":"ab"}`,
			`{"type":"date","value":null}`,
			`{"type":"json"}`,
			`{"type":"json","value":[1,}`,
			`42`,
		} {
			var v Value
			if err := json.Unmarshal([]byte(in), &v); err == nil {
				t.Errorf("Unmarshal(%s) succeeded: %+v", in, v)
			}
		}
	})
}

func mustJSON(t *testing.T, v any) Value {
	t.Helper()
	out, err := JSONValue(v)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestValuePlain(t *testing.T) {
	row := Row{
		"i":    IntegerValue(1),
		"r":    RealValue(1.5),
		"d":    DateValue(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		"span": IntervalValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
	}
	p := row.Plain()
	if p["i"] != int32(1) {
		t.Errorf("i = %#v", p["i"])
	}
	if p["r"] != 1.5 {
		t.Errorf("r = %#v", p["r"])
	}
	if p["d"] != "2024-01-02" {
		t.Errorf("d = %#v", p["d"])
	}
	if p["span"] != "2024-01-01 - 2024-01-31" {
		t.Errorf("span = %#v", p["span"])
	}
}

func TestJSONSchema(t *testing.T) {
	tbl := &Table{Name: "Users", Columns: []Column{
		{Name: "id", Type: TypeInteger},
		{Name: "initial", Type: TypeChar},
		{Name: "born", Type: TypeDate},
	}}
	s := JSONSchema(tbl)
	if s.Title != "Users" || s.Type != "object" {
		t.Errorf("unexpected schema header: %+v", s)
	}
	if len(s.Required) != 3 || s.Required[0] != "id" {
		t.Errorf("required = %v", s.Required)
	}
	id, ok := s.Properties.Get("id")
	if !ok || id.Type != "integer" {
		t.Errorf("id schema = %+v", id)
	}
	initial, ok := s.Properties.Get("initial")
	if !ok || initial.MaxLength == nil || *initial.MaxLength != 1 {
		t.Errorf("initial schema = %+v", initial)
	}
	born, ok := s.Properties.Get("born")
	if !ok || born.Format != "date" {
		t.Errorf("born schema = %+v", born)
	}
	if _, err := json.Marshal(s); err != nil {
		t.Errorf("Marshal: %v", err)
	}
}

func TestIntervalPattern(t *testing.T) {
	re := regexp.MustCompile(intervalPattern)
	tests := []struct {
		in   string
		want bool
	}{
		{"2024-01-01 - 2024-01-31", true},
		{"01/01/2024-01/31/2024", true},
		{"Jan 1, 2024 - Jan 31, 2024", true},
		{"2024-01-01-2024-01-31", false},
		{"2024-01-01", false},
		{"not-a-date-at-all", false},
	}
	for _, tt := range tests {
		if got := re.MatchString(tt.in); got != tt.want {
			t.Errorf("pattern match %q = %v, want %v", tt.in, got, tt.want)
		}
		if tt.want {
			if _, _, err := parseInterval(tt.in); err != nil {
				t.Errorf("pattern accepts %q but the validator rejects it: %v", tt.in, err)
			}
		} else if _, _, err := parseInterval(tt.in); err == nil {
			t.Errorf("validator accepts %q but the pattern rejects it", tt.in)
		}
	}
}
