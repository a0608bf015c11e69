// Package merge fills a column of a target table from a source table, joining
// the two on a key column.
package merge

import (
	"fmt"
	"strings"

	"sheetMerge/internal/table"
)

// DefaultOutputPath is where merged workbooks go unless told otherwise
const DefaultOutputPath = "output/merged.xlsx"

// Request describes one merge. Source provides the values, Target receives
// them. TargetColumn may name a column Target does not have yet.
type Request struct {
	Source *table.Table
	Target *table.Table

	SourceKey    table.Column
	TargetKey    table.Column
	SourceColumn table.Column
	TargetColumn table.Column

	OutputPath string
}

// Result is the merged target table and the number of cells filled in
type Result struct {
	Table  *table.Table
	Filled int
}

// resolved holds the column positions of a validated request. targetCol is
// -1 when the destination column has to be appended.
type resolved struct {
	sourceKey, sourceCol int
	targetKey, targetCol int
}

// Validate checks the request in a fixed order and reports the first rule
// it breaks
func (r Request) Validate() error {
	_, err := r.resolve()
	return err
}

// checkSelfReference needs no tables, so callers can reject a selection
// before loading anything
func (r Request) checkSelfReference() error {
	if r.SourceKey == r.SourceColumn {
		return &ValidationError{
			Rule:   RuleSourceSelfReference,
			Table:  "source",
			Column: r.SourceKey,
			Reason: fmt.Sprintf("the source key and the source column are both %q", r.SourceKey),
		}
	}
	if r.TargetKey == r.TargetColumn {
		return &ValidationError{
			Rule:   RuleTargetSelfReference,
			Table:  "target",
			Column: r.TargetKey,
			Reason: fmt.Sprintf("the target key and the target column are both %q", r.TargetKey),
		}
	}
	return nil
}

func (r Request) resolve() (resolved, error) {
	if err := r.checkSelfReference(); err != nil {
		return resolved{}, err
	}
	if r.Source == nil || r.Target == nil {
		return resolved{}, fmt.Errorf("merge request needs both a source and a target table")
	}

	var res resolved
	checks := []struct {
		tbl   *table.Table
		name  string
		label string
		col   table.Column
		dest  *int
	}{
		{r.Source, "source", "source key", r.SourceKey, &res.sourceKey},
		{r.Target, "target", "target key", r.TargetKey, &res.targetKey},
		{r.Source, "source", "source column", r.SourceColumn, &res.sourceCol},
	}
	for _, c := range checks {
		i, ok := c.tbl.Lookup(c.col)
		if !ok {
			return resolved{}, &ValidationError{
				Rule:   RuleMissingColumn,
				Table:  c.name,
				Column: c.col,
				Reason: fmt.Sprintf("column %q (%s) not found in the %s table", c.col, c.label, c.name),
			}
		}
		*c.dest = i
	}

	if strings.TrimSpace(string(r.TargetColumn)) == "" {
		return resolved{}, &ValidationError{
			Rule:   RuleMissingColumn,
			Table:  "target",
			Column: r.TargetColumn,
			Reason: "no target column selected",
		}
	}

	res.targetCol = -1
	if i, ok := r.Target.Lookup(r.TargetColumn); ok {
		res.targetCol = i
	}
	return res, nil
}
