package tabular

import (
	"errors"
	"testing"
	"time"
)

func idTable(name string, ids ...int32) *Table {
	t := &Table{Name: name, Columns: []Column{{Name: "id", Type: TypeInteger}}}
	for _, id := range ids {
		t.Rows = append(t.Rows, Row{"id": IntegerValue(id)})
	}
	return t
}

func TestDifference(t *testing.T) {
	t.Run("Equal", func(t *testing.T) {
		got, err := Difference(idTable("A", 1), idTable("B", 1), "C")
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "C" {
			t.Errorf("expected name C, got %q", got.Name)
		}
		if len(got.Rows) != 0 {
			t.Errorf("expected 0 rows, got %d", len(got.Rows))
		}
	})

	t.Run("Disjoint", func(t *testing.T) {
		got, err := Difference(idTable("A", 1), idTable("B", 2), "C")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Rows) != 1 || !got.Rows[0].Equal(Row{"id": IntegerValue(1)}) {
			t.Errorf("expected [{id:1}], got %v", got.Rows)
		}
	})

	t.Run("Self", func(t *testing.T) {
		a := idTable("A", 1, 2, 3)
		got, err := Difference(a, a, "C")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Rows) != 0 {
			t.Errorf("difference(A, A) should be empty, got %v", got.Rows)
		}
	})

	t.Run("NotSymmetric", func(t *testing.T) {
		a := idTable("A", 1, 2, 3)
		b := idTable("B", 2, 4)
		ab, err := Difference(a, b, "AB")
		if err != nil {
			t.Fatal(err)
		}
		ba, err := Difference(b, a, "BA")
		if err != nil {
			t.Fatal(err)
		}
		if len(ab.Rows) != 2 || ab.Rows[0]["id"].Int != 1 || ab.Rows[1]["id"].Int != 3 {
			t.Errorf("A-B = %v", ab.Rows)
		}
		if len(ba.Rows) != 1 || ba.Rows[0]["id"].Int != 4 {
			t.Errorf("B-A = %v", ba.Rows)
		}
	})

	t.Run("Duplicates", func(t *testing.T) {
		got, err := Difference(idTable("A", 1, 1, 2), idTable("B", 2), "C")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Rows) != 2 {
			t.Errorf("left duplicates are kept, got %v", got.Rows)
		}
	})

	t.Run("StructureMismatch", func(t *testing.T) {
		b := &Table{Name: "B", Columns: []Column{{Name: "id", Type: TypeReal}}}
		_, err := Difference(idTable("A", 1), b, "C")
		if !errors.Is(err, ErrStructureMismatch) {
			t.Fatalf("expected ErrStructureMismatch, got %v", err)
		}
	})

	t.Run("NoAliasing", func(t *testing.T) {
		a := idTable("A", 1)
		got, err := Difference(a, idTable("B"), "C")
		if err != nil {
			t.Fatal(err)
		}
		got.Columns[0].Name = "changed"
		got.Rows[0]["id"] = IntegerValue(9)
		if a.Columns[0].Name != "id" {
			t.Error("result columns alias the left table")
		}
		if a.Rows[0]["id"].Int != 1 {
			t.Error("result rows alias the left table")
		}
	})

	t.Run("Intervals", func(t *testing.T) {
		d := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }
		cols := []Column{{Name: "span", Type: TypeDateInterval}}
		a := &Table{Name: "A", Columns: cols, Rows: []Row{{"span": IntervalValue(d(1), d(31))}, {"span": IntervalValue(d(2), d(3))}}}
		b := &Table{Name: "B", Columns: cols, Rows: []Row{{"span": IntervalValue(d(1), d(31))}, {"span": IntervalValue(d(3), d(2))}}}
		got, err := Difference(a, b, "C")
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Rows) != 1 || !got.Rows[0]["span"].Equal(IntervalValue(d(2), d(3))) {
			t.Errorf("expected the 2..3 interval only, got %v", got.Rows)
		}
	})
}

func TestStructureEqual(t *testing.T) {
	base := []Column{{Name: "id", Type: TypeInteger}, {Name: "name", Type: TypeString}}
	tests := []struct {
		name string
		cols []Column
		want bool
	}{
		{"same", []Column{{Name: "id", Type: TypeInteger}, {Name: "name", Type: TypeString}}, true},
		{"reordered", []Column{{Name: "name", Type: TypeString}, {Name: "id", Type: TypeInteger}}, false},
		{"renamed", []Column{{Name: "ID", Type: TypeInteger}, {Name: "name", Type: TypeString}}, false},
		{"retyped", []Column{{Name: "id", Type: TypeReal}, {Name: "name", Type: TypeString}}, false},
		{"shorter", []Column{{Name: "id", Type: TypeInteger}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StructureEqual(&Table{Columns: base}, &Table{Columns: tt.cols}); got != tt.want {
				t.Errorf("StructureEqual = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowEqual(t *testing.T) {
	a := Row{"id": IntegerValue(1), "name": StringValue("Ann")}
	if !a.Equal(Row{"name": StringValue("Ann"), "id": IntegerValue(1)}) {
		t.Error("key order must not matter")
	}
	if a.Equal(Row{"id": IntegerValue(1)}) {
		t.Error("rows with different key sets must differ")
	}
	if a.Equal(Row{"id": RealValue(1), "name": StringValue("Ann")}) {
		t.Error("integer and real must differ")
	}
	if (Row{"c": {Type: TypeChar, Text: "a"}}).Equal(Row{"c": StringValue("a")}) {
		t.Error("char and string must differ")
	}
}
