package mapping

import (
	"context"
	"fmt"
	"os"
	"sheetMerge/internal/logger"
	"sheetMerge/internal/table"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// KeySuggestion is an AI-suggested pair of key columns with confidence
type KeySuggestion struct {
	SourceKey  table.Column `json:"source_key"`
	TargetKey  table.Column `json:"target_key"`
	Confidence float64      `json:"confidence"`
}

// SuggesterConfig tunes the Gemini request
type SuggesterConfig struct {
	Model         string
	Timeout       time.Duration
	MinConfidence float64
}

// KeySuggester asks Gemini which columns of two tables identify the same rows
type KeySuggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
	cfg    SuggesterConfig
}

// NewKeySuggester creates a new AI suggester instance
func NewKeySuggester(ctx context.Context, apiKey string, cfg SuggesterConfig) (*KeySuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash-exp"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = 0.8
	}

	logger.Info("Initializing key suggester with Gemini API")
	logger.Debug("API key length", "length", len(apiKey))

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("Failed to create Gemini client", "error", err)
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0.1) // Low temperature for consistent results

	logger.Info("Key suggester initialized", "model", cfg.Model, "temperature", 0.1)

	return &KeySuggester{
		client: client,
		model:  model,
		cfg:    cfg,
	}, nil
}

// Close cleans up the AI client resources
func (ks *KeySuggester) Close() error {
	if ks.client != nil {
		logger.Debug("Closing key suggester client")
		return ks.client.Close()
	}
	return nil
}

// SuggestKeys proposes key column pairs for joining target onto source,
// best first
func (ks *KeySuggester) SuggestKeys(ctx context.Context, source, target *table.Table) ([]KeySuggestion, error) {
	if source.Width() == 0 || target.Width() == 0 {
		return nil, fmt.Errorf("both tables must have columns")
	}

	sourceProfiles := table.Profile(source)
	targetProfiles := table.Profile(target)

	logger.Info("=== KEY SUGGESTION REQUEST START ===")
	logger.Info("Generating key suggestions",
		"source_columns", len(sourceProfiles),
		"target_columns", len(targetProfiles))

	prompt := buildKeyPrompt(sourceProfiles, targetProfiles)
	logger.Debug("AI Prompt", "length", len(prompt), "content", prompt)

	ctx, cancel := context.WithTimeout(ctx, ks.cfg.Timeout)
	defer cancel()

	logger.Info("Sending request to Gemini API", "timeout", ks.cfg.Timeout)
	apiStartTime := time.Now()

	resp, err := ks.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		logger.Error("Gemini API request failed", "error", err, "duration", time.Since(apiStartTime))
		saveSuggestionsToFile(sourceProfiles, targetProfiles, nil, err)
		return nil, fmt.Errorf("failed to generate AI response: %w", err)
	}
	logger.Info("Received response from Gemini API", "duration", time.Since(apiStartTime))

	text, err := responseText(resp)
	if err != nil {
		saveSuggestionsToFile(sourceProfiles, targetProfiles, nil, err)
		return nil, err
	}

	suggestions := parseKeySuggestions(text, source, target, ks.cfg.MinConfidence)
	saveSuggestionsToFile(sourceProfiles, targetProfiles, suggestions, nil)

	logger.Info("=== KEY SUGGESTION REQUEST END ===", "suggestions", len(suggestions))
	return suggestions, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		logger.Error("No response candidates received from Gemini API")
		return "", fmt.Errorf("no response generated from AI")
	}

	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		logger.Error("No content parts in AI response")
		return "", fmt.Errorf("no response generated from AI")
	}

	// Extract text from response
	var b strings.Builder
	for i, part := range content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			b.WriteString(string(textPart))
		} else {
			logger.Warn("Non-text part in response", "index", i, "type", fmt.Sprintf("%T", part))
		}
	}

	logger.Info("AI Response", "content", b.String())
	return b.String(), nil
}

// buildKeyPrompt creates a prompt asking for key column pairs
func buildKeyPrompt(source, target []table.ColumnProfile) string {
	var b strings.Builder

	b.WriteString(`You are an expert data analyst helping to join two spreadsheets.

TASK: Find the columns that identify the same entity in both files, so rows of the TARGET file can be matched to rows of the SOURCE file.

Column names are positional; judge them by their sample values.

SOURCE COLUMNS (name: distinct values / non-empty cells: samples):
`)
	writeProfiles(&b, source)

	b.WriteString(`
TARGET COLUMNS (name: distinct values / non-empty cells: samples):
`)
	writeProfiles(&b, target)

	b.WriteString(`
INSTRUCTIONS:
1. Only suggest pairs you are confident about (>80% certainty)
2. Good keys hold identifiers or codes with many distinct values
3. Matching ignores case and surrounding spaces
4. If nothing fits, answer "NO_MATCH"

OUTPUT FORMAT (one line per pair, best first):
SourceColumn|TargetColumn|Confidence

EXAMPLES:
col_0|col_2|0.95
col_3|col_1|0.85

Now provide the key pairs:`)

	return b.String()
}

func writeProfiles(b *strings.Builder, profiles []table.ColumnProfile) {
	for _, p := range profiles {
		fmt.Fprintf(b, "- %s: %d / %d: %s\n", p.Column, p.Distinct, p.NonEmpty, p.Hint())
	}
}

// parseKeySuggestions parses the AI response, keeping pairs whose columns
// exist in their tables and whose confidence reaches minConfidence
func parseKeySuggestions(response string, source, target *table.Table, minConfidence float64) []KeySuggestion {
	var suggestions []KeySuggestion
	skipped := 0

	for lineNum, line := range strings.Split(strings.TrimSpace(response), "\n") {
		line = strings.Trim(strings.TrimSpace(line), "`")
		if line == "" || strings.HasPrefix(line, "SourceColumn|") || line == "NO_MATCH" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			skipped++
			logger.Debug("Skipping line", "line_num", lineNum+1, "reason", "invalid format", "content", line)
			continue
		}

		sourceKey := table.Column(strings.TrimSpace(parts[0]))
		targetKey := table.Column(strings.TrimSpace(parts[1]))

		var confidence float64
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[2]), "%f", &confidence); err != nil {
			logger.Debug("Failed to parse confidence", "line_num", lineNum+1, "error", err)
			confidence = 0.0
		}

		if !source.Has(sourceKey) || !target.Has(targetKey) {
			skipped++
			logger.Debug("Skipping unknown columns", "source", sourceKey, "target", targetKey)
			continue
		}
		if confidence < minConfidence {
			skipped++
			logger.Debug("Skipping low confidence", "source", sourceKey, "target", targetKey, "confidence", confidence)
			continue
		}

		suggestions = append(suggestions, KeySuggestion{
			SourceKey:  sourceKey,
			TargetKey:  targetKey,
			Confidence: confidence,
		})
	}

	logger.Info("Response parsing completed", "suggestions", len(suggestions), "skipped", skipped)
	return suggestions
}

// GetGeminiAPIKey gets the API key from environment variable
func GetGeminiAPIKey() string {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY environment variable not set")
	} else {
		logger.Debug("GEMINI_API_KEY found", "length", len(apiKey))
	}
	return apiKey
}
