package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"sheetMerge/internal/table"
	"time"
)

// debugDir receives one dump per suggestion request
var debugDir = filepath.Join("logs", "ai_debug")

func saveSuggestionsToFile(source, target []table.ColumnProfile, suggestions []KeySuggestion, err error) {
	os.MkdirAll(debugDir, 0755)

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	debugFile := filepath.Join(debugDir, fmt.Sprintf("key_suggestion_%s.txt", timestamp))

	file, fileErr := os.Create(debugFile)
	if fileErr != nil {
		return
	}
	defer file.Close()

	fmt.Fprintf(file, "Key Suggestion Debug - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "===========================================\n\n")

	fmt.Fprintf(file, "SOURCE COLUMNS (%d):\n", len(source))
	for i, p := range source {
		fmt.Fprintf(file, "%d. %s [%s]\n", i+1, p.Column, p.Hint())
	}

	fmt.Fprintf(file, "\nTARGET COLUMNS (%d):\n", len(target))
	for i, p := range target {
		fmt.Fprintf(file, "%d. %s [%s]\n", i+1, p.Column, p.Hint())
	}

	fmt.Fprintf(file, "\nAI RESPONSE:\n")
	if err != nil {
		fmt.Fprintf(file, "ERROR: %v\n", err)
	} else {
		fmt.Fprintf(file, "SUCCESS - Generated %d suggestions:\n", len(suggestions))
		for i, s := range suggestions {
			fmt.Fprintf(file, "%d. '%s' ↔ '%s' (%.2f confidence)\n",
				i+1, s.SourceKey, s.TargetKey, s.Confidence)
		}

		if len(suggestions) == 0 {
			fmt.Fprintf(file, "No suggestions (NO_MATCH or low confidence)\n")
		}
	}

	fmt.Fprintf(file, "\n===========================================\n")
}
