package merge

import (
	"fmt"

	"sheetMerge/internal/table"
)

// Rule names the validation check a request failed
type Rule string

const (
	RuleSourceSelfReference Rule = "source_self_reference"
	RuleTargetSelfReference Rule = "target_self_reference"
	RuleMissingColumn       Rule = "missing_column"
)

// ValidationError reports an unusable column selection
type ValidationError struct {
	Rule   Rule
	Table  string
	Column table.Column
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid column selection (%s): %s", e.Rule, e.Reason)
}
