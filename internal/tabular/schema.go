// Describes a table's rows as a JSON Schema document.

package tabular

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/invopop/jsonschema"
)

// JSONSchema returns the schema a row must satisfy to be accepted by t, in
// its plain API form. Undeclared keys are allowed.
func JSONSchema(t *Table) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	required := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		props.Set(col.Name, columnSchema(col.Type))
		required = append(required, col.Name)
	}
	return &jsonschema.Schema{
		Version:    jsonschema.Version,
		Title:      t.Name,
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// intervalPattern matches the two accepted interval forms: one bare dash
// between dash-free dates, or " - " between dates that may contain dashes.
const intervalPattern = `^(?:[^-]+-[^-]+|.+ - .+)$`

func columnSchema(dt DataType) *jsonschema.Schema {
	switch dt {
	case TypeInteger:
		return &jsonschema.Schema{
			Type:    "integer",
			Minimum: json.Number(strconv.Itoa(math.MinInt32)),
			Maximum: json.Number(strconv.Itoa(math.MaxInt32)),
		}
	case TypeReal:
		return &jsonschema.Schema{Type: "number"}
	case TypeChar:
		one := uint64(1)
		return &jsonschema.Schema{Type: "string", MinLength: &one, MaxLength: &one}
	case TypeString:
		return &jsonschema.Schema{Type: "string"}
	case TypeDate:
		return &jsonschema.Schema{Type: "string", Format: "date"}
	case TypeDateInterval:
		return &jsonschema.Schema{
			Type:        "string",
			Pattern:     intervalPattern,
			Description: `Two dates separated by " - ", e.g. 2024-01-01 - 2024-01-31. A bare "-" is only accepted when neither date contains a dash, e.g. 01/01/2024-01/31/2024.`,
		}
	}
	return &jsonschema.Schema{}
}
