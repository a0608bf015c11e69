package merge

import (
	"context"
	"fmt"

	"sheetMerge/internal/excel"
	"sheetMerge/internal/table"

	"golang.org/x/sync/errgroup"
)

const previewGroups = 5

// Merge fills the blank cells of the target column with the aggregated
// source values of the matching key. It returns a new table and leaves the
// request's tables untouched. Each target row appears exactly once in the
// result; its key column holds the normalized key. Cells that already hold
// a non-blank value are never overwritten.
func Merge(req Request, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	cols, err := req.resolve()
	if err != nil {
		return nil, err
	}

	o.logger.Info("Merging tables",
		"source_columns", req.Source.Columns(),
		"target_columns", req.Target.Columns(),
		"source_key", req.SourceKey,
		"target_key", req.TargetKey,
		"source_column", req.SourceColumn,
		"target_column", req.TargetColumn)

	norm := newKeyNormalizer()
	groups, keys := aggregate(req.Source, cols.sourceKey, cols.sourceCol, norm)

	o.logger.Info("Grouped source rows", "source_rows", req.Source.Len(), "keys", len(keys))
	for _, key := range keys[:min(len(keys), previewGroups)] {
		o.logger.Debug("Grouped key", "key", key, "value", groups[key])
	}

	columns := req.Target.Columns()
	destCol := cols.targetCol
	if destCol < 0 {
		columns = append(columns, req.TargetColumn)
		destCol = len(columns) - 1
	}

	rows := make(table.Grid, req.Target.Len())
	filled := 0
	for i := range rows {
		row := make([]table.Value, len(columns))
		copy(row, req.Target.Row(i))

		key := norm.Key(row[cols.targetKey])
		if key == "" {
			row[cols.targetKey] = table.Empty()
		} else {
			row[cols.targetKey] = table.Text(key)
		}

		if value, ok := groups[key]; ok && value != "" && row[destCol].IsBlank() {
			row[destCol] = table.Text(value)
			filled++
		}
		rows[i] = row
	}

	out, err := table.New(columns, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build merged table: %w", err)
	}

	o.logger.Info("Filled target cells", "filled", filled, "target_rows", out.Len())
	return &Result{Table: out, Filled: filled}, nil
}

// Run merges and writes the result to req.OutputPath, or DefaultOutputPath
// when none is set
func Run(req Request, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	res, err := Merge(req, opts...)
	if err != nil {
		return nil, err
	}

	output := req.OutputPath
	if output == "" {
		output = DefaultOutputPath
	}
	if err := excel.WriteTable(output, res.Table, excel.WithLogger(o.logger)); err != nil {
		return nil, err
	}
	return res, nil
}

// Files names two workbooks and the columns to merge them on
type Files struct {
	SourcePath string
	TargetPath string

	SourceKey    table.Column
	TargetKey    table.Column
	SourceColumn table.Column
	TargetColumn table.Column

	OutputPath string
}

// MergeFiles loads both workbooks, merges them and writes the output. The
// two loads run concurrently; each works on its own file and table. A
// cancelled ctx stops the run before any load starts and before the output
// is written.
func MergeFiles(ctx context.Context, f Files, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	o.logger.Info("Starting merge", "source_file", f.SourcePath, "target_file", f.TargetPath)

	req := Request{
		SourceKey:    f.SourceKey,
		TargetKey:    f.TargetKey,
		SourceColumn: f.SourceColumn,
		TargetColumn: f.TargetColumn,
		OutputPath:   f.OutputPath,
	}
	if err := req.checkSelfReference(); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		t, err := excel.Load(f.SourcePath, excel.WithLogger(o.logger))
		req.Source = t
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		t, err := excel.Load(f.TargetPath, excel.WithLogger(o.logger))
		req.Target = t
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// a cancellation that lands after both loads still stops the write
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := Run(req, opts...)
	if err != nil {
		return nil, err
	}

	o.logger.Info("Merge finished", "filled", res.Filled)
	return res, nil
}
