package query

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/alt-27/pharmaverse-roche/internal/schema"
)

func TestRepair_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	s := schema.Default()

	properties.Property("repaired target is always a dictionary column", prop.ForAll(
		func(target, value, question string) bool {
			res := Repair(StructuredQuery{TargetColumn: target, FilterValue: value}, question, s)
			return s.Contains(res.Query.TargetColumn)
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("repair is idempotent", prop.ForAll(
		func(target, value, question string) bool {
			first := Repair(StructuredQuery{TargetColumn: target, FilterValue: value}, question, s)
			second := Repair(first.Query, question, s)
			return first.Query == second.Query && len(second.Repairs) == 0
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
