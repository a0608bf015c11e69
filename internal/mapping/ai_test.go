package mapping

import (
	"context"
	"testing"

	"sheetMerge/internal/table"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestionTables() (*table.Table, *table.Table) {
	src := table.FromGrid(table.Grid{
		{table.Text("A1"), table.Text("red"), table.Number(1)},
		{table.Text("B2"), table.Text("blue"), table.Number(2)},
	})
	dst := table.FromGrid(table.Grid{
		{table.Text("x"), table.Text("a1")},
		{table.Text("y"), table.Text("b2")},
	})
	return src, dst
}

func TestParseKeySuggestions(t *testing.T) {
	src, dst := suggestionTables()

	response := "```\nSourceColumn|TargetColumn|Confidence\n" +
		"col_0|col_1|0.95\n" +
		"col_2|col_0|0.50\n" +
		"col_9|col_1|0.99\n" +
		"garbage line\n" +
		"col_1|col_0|abc\n" +
		"NO_MATCH\n```"

	got := parseKeySuggestions(response, src, dst, 0.8)
	require.Len(t, got, 1)
	assert.Equal(t, KeySuggestion{SourceKey: "col_0", TargetKey: "col_1", Confidence: 0.95}, got[0])

	got = parseKeySuggestions(response, src, dst, 0.4)
	assert.Len(t, got, 2)
}

func TestBuildKeyPrompt(t *testing.T) {
	src, dst := suggestionTables()

	prompt := buildKeyPrompt(table.Profile(src), table.Profile(dst))
	assert.Contains(t, prompt, "- col_0: 2 / 2: A1, B2")
	assert.Contains(t, prompt, "- col_1: 2 / 2: a1, b2")
	assert.Contains(t, prompt, "SourceColumn|TargetColumn|Confidence")
}

func TestResponseText(t *testing.T) {
	_, err := responseText(nil)
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.Error(t, err)

	text, err := responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("col_0|"), genai.Text("col_1|0.9")}},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "col_0|col_1|0.9", text)
}

func TestNewKeySuggester_RequiresKey(t *testing.T) {
	_, err := NewKeySuggester(context.Background(), "", SuggesterConfig{})
	assert.ErrorContains(t, err, "API key is required")
}
