package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sheetMerge/internal/config"
	"sheetMerge/internal/excel"
	"sheetMerge/internal/logger"
	"sheetMerge/internal/mapping"
	"sheetMerge/internal/merge"
	"sheetMerge/internal/table"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	cfg, closeLog, err := setup(configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	switch command {
	case "columns":
		err = runColumns(args)
	case "preview":
		err = runPreview(cfg, args)
	case "scan":
		err = runScan(args)
	case "merge":
		err = runMerge(cfg, args)
	case "pick":
		err = runPick(cfg, args)
	case "rerun":
		err = runRerun(cfg)
	case "suggest":
		err = runSuggest(cfg, args)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		return
	}

	if err != nil {
		logger.Error("Command failed", "command", command, "error", err)
		fmt.Printf("❌ %s\n", describeError(err))
		closeLog()
		os.Exit(1)
	}
}

const configPath = "configs/config.toml"

// setup loads the config, points the logger at the configured log file and
// then records where the config came from
func setup(path string) (*config.Config, func() error, error) {
	_, statErr := os.Stat(path)
	created := os.IsNotExist(statErr)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	closeLog, err := logger.Init(cfg.Log.Directory, cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up logging: %w", err)
	}

	if created {
		logger.Info("Created default config file", "path", path)
	} else {
		logger.Info("Loaded configuration", "path", path)
	}
	return cfg, closeLog, nil
}

func printUsage() {
	fmt.Println("SheetMerge - fill a column of one Excel file from another")
	fmt.Println("\nUsage:")
	fmt.Println("  sheetmerge columns <file>                 - List detected columns with sample values")
	fmt.Println("  sheetmerge preview <file> [rows]          - Show the first rows of a cleaned sheet")
	fmt.Println("  sheetmerge scan <directory>               - List the columns of every .xlsx file in a directory")
	fmt.Println("  sheetmerge merge <source> <target> <source_key> <target_key> <source_col> <target_col> [output]")
	fmt.Println("                                            - Merge with explicit columns")
	fmt.Println("  sheetmerge pick <source> <target>         - Choose columns interactively, then merge")
	fmt.Println("  sheetmerge rerun                          - Merge again with the last saved selection")
	fmt.Println("  sheetmerge suggest <source> <target>      - Ask Gemini which key columns match (needs GEMINI_API_KEY)")
}

// describeError turns the core error kinds into operator friendly text
func describeError(err error) string {
	var formatErr *excel.FormatError
	var validationErr *merge.ValidationError
	var ioErr *excel.IOError

	switch {
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid column choice: %s", validationErr.Reason)
	case errors.As(err, &formatErr):
		return fmt.Sprintf("Could not read %s: %v", formatErr.Path, formatErr.Err)
	case errors.As(err, &ioErr):
		return fmt.Sprintf("Could not write %s: %v", ioErr.Path, ioErr.Err)
	case errors.Is(err, mapping.ErrPickerAborted):
		return "Selection cancelled, nothing was merged"
	default:
		return err.Error()
	}
}

func runColumns(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("columns command requires a file path\nUsage: sheetmerge columns <file>")
	}

	t, err := excel.Load(args[0], excel.WithLogger(logger.Get()))
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d rows, %d columns\n", filepath.Base(args[0]), t.Len(), t.Width())
	renderProfiles(os.Stdout, table.Profile(t))
	return nil
}

func runPreview(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("preview command requires a file path\nUsage: sheetmerge preview <file> [rows]")
	}

	rows := cfg.UI.PreviewRows
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid row count %q", args[1])
		}
		rows = n
	}

	t, err := excel.Load(args[0], excel.WithLogger(logger.Get()))
	if err != nil {
		return err
	}

	renderTable(os.Stdout, t.Head(rows), t.Len())
	return nil
}

func runScan(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("scan command requires a directory\nUsage: sheetmerge scan <directory>")
	}

	logger.Info("Starting scan operation", "directory", args[0])
	scans, err := excel.ScanDirectory(args[0], excel.WithLogger(logger.Get()))
	if err != nil {
		return err
	}

	if len(scans) == 0 {
		fmt.Printf("No .xlsx files found in directory: %s\n", args[0])
		return nil
	}

	for _, scan := range scans {
		fmt.Printf("\n%s\n", scan.Path)
		if scan.Err != nil {
			fmt.Printf("  ❌ %s\n", describeError(scan.Err))
			continue
		}
		fmt.Printf("  %d rows, %d columns\n", scan.Rows, len(scan.Columns))
		renderProfiles(os.Stdout, scan.Columns)
	}
	return nil
}

func runMerge(cfg *config.Config, args []string) error {
	if len(args) < 6 {
		return fmt.Errorf("merge command requires 6 arguments\n" +
			"Usage: sheetmerge merge <source> <target> <source_key> <target_key> <source_col> <target_col> [output]")
	}

	selection := mapping.Selection{
		SourceFile:   args[0],
		TargetFile:   args[1],
		SourceKey:    table.Column(args[2]),
		TargetKey:    table.Column(args[3]),
		SourceColumn: table.Column(args[4]),
		TargetColumn: table.Column(args[5]),
		OutputPath:   cfg.Merge.OutputPath,
	}
	if len(args) > 6 {
		selection.OutputPath = args[6]
	}

	return mergeSelection(cfg, selection)
}

func runRerun(cfg *config.Config) error {
	selection, err := mapping.LoadFromFile(cfg.Merge.SelectionFile)
	if err != nil {
		return fmt.Errorf("no saved selection (run 'sheetmerge pick' first): %w", err)
	}
	if selection.OutputPath == "" {
		selection.OutputPath = cfg.Merge.OutputPath
	}

	fmt.Printf("Using saved selection from %s\n", cfg.Merge.SelectionFile)
	return mergeSelection(cfg, *selection)
}

// mergeSelection runs the merge, reports the outcome and remembers the
// selection for rerun
func mergeSelection(cfg *config.Config, selection mapping.Selection) error {
	logger.Info("Starting merge operation",
		"source_file", selection.SourceFile,
		"target_file", selection.TargetFile,
		"output", selection.OutputPath)

	res, err := merge.MergeFiles(context.Background(), selection.Files(), merge.WithLogger(logger.Get()))
	if err != nil {
		return err
	}

	if err := selection.SaveToFile(cfg.Merge.SelectionFile); err != nil {
		logger.Warn("Failed to save selection", "path", cfg.Merge.SelectionFile, "error", err)
	}

	fmt.Printf("✓ Merge complete: %d cells filled\n", res.Filled)
	fmt.Printf("✓ Output written to %s\n", selection.OutputPath)
	return nil
}

// loadPair loads the source and target workbooks side by side
func loadPair(sourcePath, targetPath string) (*table.Table, *table.Table, error) {
	var source, target *table.Table

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		source, err = excel.Load(sourcePath, excel.WithLogger(logger.Get()))
		return err
	})
	g.Go(func() error {
		var err error
		target, err = excel.Load(targetPath, excel.WithLogger(logger.Get()))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return source, target, nil
}

func runPick(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("pick command requires two files\nUsage: sheetmerge pick <source> <target>")
	}

	source, target, err := loadPair(args[0], args[1])
	if err != nil {
		return err
	}

	// Seed the picker with the last selection made for the same files
	var prev mapping.Selection
	if saved, err := mapping.LoadFromFile(cfg.Merge.SelectionFile); err == nil &&
		saved.SourceFile == args[0] && saved.TargetFile == args[1] {
		prev = *saved
		fmt.Printf("📂 Loaded previous selection from %s\n", cfg.Merge.SelectionFile)
	}

	selection, err := mapping.RunPickerTUI(source, target, prev, mapping.UIConfig{
		ColumnsPerRow: cfg.UI.ColumnsPerRow,
		RowsPerPage:   cfg.UI.RowsPerPage,
	})
	if err != nil {
		return err
	}

	selection.SourceFile = args[0]
	selection.TargetFile = args[1]
	selection.OutputPath = cfg.Merge.OutputPath

	res, err := merge.Run(selection.Request(source, target), merge.WithLogger(logger.Get()))
	if err != nil {
		return err
	}

	if err := selection.SaveToFile(cfg.Merge.SelectionFile); err != nil {
		logger.Warn("Failed to save selection", "path", cfg.Merge.SelectionFile, "error", err)
	}

	fmt.Printf("✓ Merge complete: %d cells filled\n", res.Filled)
	fmt.Printf("✓ Output written to %s\n", selection.OutputPath)
	return nil
}

func runSuggest(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("suggest command requires two files\nUsage: sheetmerge suggest <source> <target>")
	}

	apiKey := mapping.GetGeminiAPIKey()
	if apiKey == "" {
		return fmt.Errorf("set GEMINI_API_KEY to use key suggestions")
	}

	source, target, err := loadPair(args[0], args[1])
	if err != nil {
		return err
	}

	ctx := context.Background()
	suggester, err := mapping.NewKeySuggester(ctx, apiKey, mapping.SuggesterConfig{
		Model:         cfg.AI.Model,
		Timeout:       time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		MinConfidence: cfg.AI.MinConfidence,
	})
	if err != nil {
		return err
	}
	defer suggester.Close()

	fmt.Println("Asking Gemini for matching key columns...")
	suggestions, err := suggester.SuggestKeys(ctx, source, target)
	if err != nil {
		return err
	}

	renderSuggestions(os.Stdout, suggestions)
	return nil
}
