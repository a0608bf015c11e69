package mapping

import (
	"testing"
	"unicode/utf8"

	"sheetMerge/internal/table"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}
	return m
}

func pickerTables() (*table.Table, *table.Table) {
	src := table.FromGrid(table.Grid{
		{table.Text("A1"), table.Text("red"), table.Text("x")},
	})
	dst := table.FromGrid(table.Grid{
		{table.Text("a1"), table.Empty()},
		{table.Text("b2"), table.Text("old")},
	})
	return src, dst
}

func TestPicker_FullFlow(t *testing.T) {
	src, dst := pickerTables()
	m := initialModel(src, dst, Selection{}, UIConfig{ColumnsPerRow: 2, RowsPerPage: 1})

	// source key col_0, source column col_1
	m = press(t, m, keyEnter, keyRight, keyEnter)
	assert.Equal(t, stepTargetKey, m.step)

	// target key col_0, target column: the appended new column col_2 on page 2
	m = press(t, m, keyEnter, keyRight, keyRight, keyEnter)
	require.Equal(t, stepConfirm, m.step)
	assert.Contains(t, m.View(), "col_2")

	m = press(t, m, runes("y"))
	assert.True(t, m.confirmed)
	assert.Equal(t, Selection{
		SourceKey:    "col_0",
		SourceColumn: "col_1",
		TargetKey:    "col_0",
		TargetColumn: "col_2",
	}, m.selection)
	assert.True(t, m.selection.Complete())
}

func TestPicker_RejectsSelfReference(t *testing.T) {
	src, dst := pickerTables()
	m := initialModel(src, dst, Selection{}, UIConfig{ColumnsPerRow: 3, RowsPerPage: 2})

	// cursor stays on col_0 for the source column step
	m = press(t, m, keyEnter)
	m.row, m.col, m.page = 0, 0, 0
	m = press(t, m, keyEnter)

	assert.Equal(t, stepSourceColumn, m.step)
	assert.Contains(t, m.errMsg, "must differ")
	assert.Contains(t, m.View(), "must differ")
	assert.Empty(t, m.selection.SourceColumn)
}

func TestPicker_BackAndPreviousSelection(t *testing.T) {
	src, dst := pickerTables()
	prev := Selection{SourceKey: "col_2", SourceColumn: "col_1", TargetKey: "col_1", TargetColumn: "col_0"}
	m := initialModel(src, dst, prev, UIConfig{ColumnsPerRow: 3, RowsPerPage: 2})

	// cursor starts on the saved choice
	assert.Equal(t, 2, m.getCurrentIndex())

	m = press(t, m, keyEnter)
	assert.Equal(t, stepSourceColumn, m.step)
	assert.Equal(t, 1, m.getCurrentIndex())

	m = press(t, m, keyEsc)
	assert.Equal(t, stepSourceKey, m.step)

	// esc on the first step does nothing
	m = press(t, m, keyEsc)
	assert.Equal(t, stepSourceKey, m.step)

	m = press(t, m, keyLeft, keyLeft, keyEnter, keyEnter, keyEnter, keyEnter)
	require.Equal(t, stepConfirm, m.step)

	m = press(t, m, runes("n"))
	assert.Equal(t, stepTargetColumn, m.step)
	assert.False(t, m.confirmed)
}

func TestPicker_Quit(t *testing.T) {
	src, dst := pickerTables()
	m := initialModel(src, dst, Selection{}, UIConfig{ColumnsPerRow: 2, RowsPerPage: 2})

	next, cmd := m.Update(runes("q"))
	m = next.(model)
	assert.True(t, m.aborted)
	assert.False(t, m.confirmed)
	require.NotNil(t, cmd)
}

func TestPicker_Navigation(t *testing.T) {
	src := table.FromGrid(table.Grid{{
		table.Text("a"), table.Text("b"), table.Text("c"), table.Text("d"), table.Text("e"),
	}})
	m := initialModel(src, src, Selection{}, UIConfig{ColumnsPerRow: 2, RowsPerPage: 2})

	// row 2 of page 1 holds c, d
	m = press(t, m, keyDown)
	assert.Equal(t, 2, m.getCurrentIndex())

	// right past d moves to page 2
	m = press(t, m, keyRight, keyRight)
	assert.Equal(t, 1, m.page)
	assert.Equal(t, 4, m.getCurrentIndex())

	// nothing below e
	m = press(t, m, keyDown)
	assert.Equal(t, 4, m.getCurrentIndex())

	m = press(t, m, keyLeft)
	assert.Equal(t, 0, m.page)
	assert.Less(t, m.getCurrentIndex(), 4)
}

func TestPicker_WindowSizeAndZeroConfig(t *testing.T) {
	src, dst := pickerTables()
	m := initialModel(src, dst, Selection{}, UIConfig{})
	assert.Equal(t, 1, m.itemsPerPage)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(model)
	assert.Equal(t, 120, m.width)
	assert.Contains(t, m.View(), "Key column in the source file")
}

func TestNewColumnName(t *testing.T) {
	_, dst := pickerTables()
	assert.Equal(t, table.Column("col_2"), newColumnName(dst))

	odd, err := table.New([]table.Column{"col_1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, table.Column("col_1_1"), newColumnName(odd))
}

func TestProfileOptions(t *testing.T) {
	src, _ := pickerTables()

	opts := profileOptions(src)
	require.Len(t, opts, 3)
	assert.Equal(t, pickOption{column: "col_1", hint: "red"}, opts[1])
}

func TestFitCell(t *testing.T) {
	assert.Equal(t, "é   ", fitCell("é", 4))
	assert.Equal(t, "東...", fitCell("東京都", 5))

	cell := fitCell("col_0: Île-de-France, Provence-Alpes-Côte d'Azur", 14)
	assert.True(t, utf8.ValidString(cell))
	assert.Equal(t, 14, runewidth.StringWidth(cell))
	assert.Contains(t, cell, "...")
}

func TestPicker_ViewKeepsAccentedHintsIntact(t *testing.T) {
	src := table.FromGrid(table.Grid{
		{table.Text("Île-de-France"), table.Text("Provence-Alpes-Côte d'Azur")},
	})
	_, dst := pickerTables()

	m := initialModel(src, dst, Selection{}, UIConfig{ColumnsPerRow: 4, RowsPerPage: 3})
	view := m.View()
	assert.True(t, utf8.ValidString(view))
	assert.Contains(t, view, "col_0: Île")
}
