package validate_test

import (
	"fmt"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
	"github.com/matzehuels/taxocheck/pkg/validate"
)

func ExampleValidate() {
	report := validate.Validate(validate.Input{
		Description: []code.Code{"1", "2", "3"},
		Composition: []dag.Pair{
			{Parent: 0, Child: 1},
			{Parent: 1, Child: 2},
			{Parent: 2, Child: 1},
			{Parent: 0, Child: 4.0},
		},
	}, validate.Names{Description: "description.csv", Composition: "composition.csv"})

	fmt.Println("OK:", report.OK())
	for _, f := range report.Findings {
		fmt.Println(f.Rule+":", f.Message)
	}
	// Output:
	// OK: false
	// cycle: cycle detected in composition.csv: 1 -> 2, 2 -> 1
	// orphaned-codes: codes used in composition.csv are missing from description.csv: 4
	// undeclared-codes: codes declared in description.csv are not used in composition.csv: 3
}
