package tabular

import (
	"slices"
)

// StructureEqual reports whether both tables declare the same columns, in the
// same order, with the same types.
func StructureEqual(a, b *Table) bool {
	return slices.Equal(a.Columns, b.Columns)
}

// Difference returns a new table named name holding the rows of left that
// have no equal row in right. Row order follows left.
//
// Both tables must have the same structure. The result shares no memory with
// either input.
func Difference(left, right *Table, name string) (*Table, error) {
	if !StructureEqual(left, right) {
		return nil, &Error{Kind: ErrStructureMismatch, Table: left.Name, Other: right.Name, Index: -1}
	}
	out := &Table{
		Name:    name,
		Columns: slices.Clone(left.Columns),
		Rows:    []Row{},
	}
	for _, r := range left.Rows {
		if !slices.ContainsFunc(right.Rows, r.Equal) {
			out.Rows = append(out.Rows, r.Clone())
		}
	}
	return out, nil
}
