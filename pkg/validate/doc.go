// Package validate certifies that a description table and a composition table
// jointly encode a sound indicator hierarchy.
//
// [Validate] is the single entry point. It builds the code graph, runs the
// cycle, connectivity and referential integrity checks, and collects every
// defect as a [Finding] in a [Report]. Structural defects are data, not
// errors: Validate never fails and never prints.
//
// Findings appear in a fixed rule order (cycle, disconnected, orphaned codes,
// undeclared codes) and every list inside them is sorted, so validating the
// same input twice yields byte-identical JSON.
//
//	report := validate.Validate(validate.Input{
//	    Description: []code.Code{"1", "2"},
//	    Composition: []dag.Pair{{Parent: 0, Child: 1}, {Parent: 1, Child: 2}},
//	}, validate.Names{})
//	if !report.OK() {
//	    for _, f := range report.Findings {
//	        fmt.Println(f.Message)
//	    }
//	}
package validate
