package mapping

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"sheetMerge/internal/table"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ErrPickerAborted is returned when the user quits without confirming
var ErrPickerAborted = errors.New("column selection aborted")

// UI States
type step int

const (
	stepSourceKey step = iota
	stepSourceColumn
	stepTargetKey
	stepTargetColumn
	stepConfirm
)

var stepTitles = map[step]string{
	stepSourceKey:    "Key column in the source file",
	stepSourceColumn: "Column to copy from the source file",
	stepTargetKey:    "Key column in the target file",
	stepTargetColumn: "Column to fill in the target file",
}

// UIConfig represents UI configuration settings
type UIConfig struct {
	ColumnsPerRow int
	RowsPerPage   int
}

type pickOption struct {
	column table.Column
	hint   string
	isNew  bool
}

// Model represents the TUI model
type model struct {
	sourceOptions []pickOption
	targetOptions []pickOption
	newColumnOpt  []pickOption

	selection Selection
	step      step
	confirmed bool
	aborted   bool
	errMsg    string

	// Grid navigation for the current option list
	page         int
	row          int
	col          int
	colsPerRow   int
	rowsPerPage  int
	itemsPerPage int

	// Screen dimensions
	width  int
	height int

	// Styling
	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	helpStyle     lipgloss.Style
	progressStyle lipgloss.Style
	chosenStyle   lipgloss.Style
	errorStyle    lipgloss.Style
}

func profileOptions(t *table.Table) []pickOption {
	profiles := table.Profile(t)
	options := make([]pickOption, len(profiles))
	for i, p := range profiles {
		options[i] = pickOption{column: p.Column, hint: p.Hint()}
	}
	return options
}

// newColumnName picks an identifier the target table does not use yet
func newColumnName(t *table.Table) table.Column {
	names := make([]string, 0, t.Width()+1)
	for _, c := range t.Columns() {
		names = append(names, c.String())
	}
	names = append(names, fmt.Sprintf("%s%d", table.ColumnPrefix, t.Width()))
	unique := table.UniqueColumns(names)
	return unique[len(unique)-1]
}

// Initialize the model with config
func initialModel(source, target *table.Table, prev Selection, uiConfig UIConfig) model {
	colsPerRow := max(uiConfig.ColumnsPerRow, 1)
	rowsPerPage := max(uiConfig.RowsPerPage, 1)

	m := model{
		sourceOptions: profileOptions(source),
		targetOptions: profileOptions(target),
		newColumnOpt:  []pickOption{{column: newColumnName(target), hint: "new empty column", isNew: true}},
		selection:     prev,
		step:          stepSourceKey,
		colsPerRow:    colsPerRow,
		rowsPerPage:   rowsPerPage,
		itemsPerPage:  colsPerRow * rowsPerPage,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Align(lipgloss.Center),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		progressStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		chosenStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Padding(0, 1),
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
	m.focusChoice()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if m.step == stepConfirm {
			return m.updateConfirm(msg)
		}
		return m.updateSelect(msg)
	}
	return m, nil
}

func (m model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.aborted = true
		return m, tea.Quit

	case "esc":
		if m.step > stepSourceKey {
			m.step--
			m.errMsg = ""
			m.focusChoice()
		}

	case "up", "k":
		if m.row > 0 {
			m.row--
		}

	case "down", "j":
		maxRow := m.getMaxRowForCurrentPage()
		if m.row < maxRow {
			m.row++
		}
		m.adjustPosition()

	case "left", "h":
		if m.col > 0 {
			m.col--
		} else if m.page > 0 {
			// Go to previous page, rightmost column
			m.page--
			m.col = m.colsPerRow - 1
			m.adjustPosition()
		}

	case "right", "l":
		maxCol := m.getMaxColForCurrentRow()
		if m.col < maxCol {
			m.col++
		} else if m.hasNextPage() {
			// Go to next page, leftmost column
			m.page++
			m.col = 0
			m.row = 0
		}

	case "enter":
		options := m.options()
		idx := m.getCurrentIndex()
		if idx >= len(options) {
			return m, nil
		}
		if err := m.choose(options[idx].column); err != "" {
			m.errMsg = err
			return m, nil
		}
		m.errMsg = ""
		m.step++
		m.focusChoice()
	}
	return m, nil
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.aborted = true
		return m, tea.Quit
	case "y", "enter":
		m.confirmed = true
		return m, tea.Quit
	case "n", "esc":
		m.step = stepTargetColumn
		m.focusChoice()
	}
	return m, nil
}

// choose records column for the current step. It returns a message when
// the choice would make the key and the value column the same.
func (m *model) choose(column table.Column) string {
	switch m.step {
	case stepSourceKey:
		m.selection.SourceKey = column
	case stepSourceColumn:
		if column == m.selection.SourceKey {
			return "The source column must differ from the source key"
		}
		m.selection.SourceColumn = column
	case stepTargetKey:
		m.selection.TargetKey = column
	case stepTargetColumn:
		if column == m.selection.TargetKey {
			return "The target column must differ from the target key"
		}
		m.selection.TargetColumn = column
	}
	return ""
}

// options lists the choices of the current step
func (m model) options() []pickOption {
	switch m.step {
	case stepSourceKey, stepSourceColumn:
		return m.sourceOptions
	case stepTargetKey:
		return m.targetOptions
	case stepTargetColumn:
		return append(append([]pickOption(nil), m.targetOptions...), m.newColumnOpt...)
	}
	return nil
}

// current returns what was already chosen for the current step
func (m model) current() table.Column {
	switch m.step {
	case stepSourceKey:
		return m.selection.SourceKey
	case stepSourceColumn:
		return m.selection.SourceColumn
	case stepTargetKey:
		return m.selection.TargetKey
	case stepTargetColumn:
		return m.selection.TargetColumn
	}
	return ""
}

// focusChoice moves the cursor to the current choice, or to the start
func (m *model) focusChoice() {
	m.page, m.row, m.col = 0, 0, 0
	if m.itemsPerPage == 0 || m.colsPerRow == 0 {
		return
	}
	chosen := m.current()
	for i, o := range m.options() {
		if o.column == chosen {
			m.moveTo(i)
			return
		}
	}
}

// Helper functions
func (m *model) moveTo(i int) {
	m.page = i / m.itemsPerPage
	remainder := i % m.itemsPerPage
	m.row = remainder / m.colsPerRow
	m.col = remainder % m.colsPerRow
}

func (m model) getCurrentIndex() int {
	return m.page*m.itemsPerPage + m.row*m.colsPerRow + m.col
}

func (m model) getMaxRowForCurrentPage() int {
	startOfPage := m.page * m.itemsPerPage
	remainingItems := len(m.options()) - startOfPage
	if remainingItems <= 0 {
		return 0
	}

	maxRowsNeeded := int(math.Ceil(float64(remainingItems) / float64(m.colsPerRow)))
	if maxRowsNeeded > m.rowsPerPage {
		return m.rowsPerPage - 1
	}
	return maxRowsNeeded - 1
}

func (m model) getMaxColForCurrentRow() int {
	startOfRow := m.page*m.itemsPerPage + m.row*m.colsPerRow
	endOfRow := startOfRow + m.colsPerRow
	if endOfRow > len(m.options()) {
		endOfRow = len(m.options())
	}
	return (endOfRow - startOfRow) - 1
}

func (m model) hasNextPage() bool {
	return (m.page+1)*m.itemsPerPage < len(m.options())
}

func (m *model) adjustPosition() {
	// Ensure current position is valid
	if m.getCurrentIndex() >= len(m.options()) {
		m.moveToLastValidPosition()
	}
}

func (m *model) moveToLastValidPosition() {
	if len(m.options()) == 0 {
		m.page, m.row, m.col = 0, 0, 0
		return
	}
	m.moveTo(len(m.options()) - 1)
}

func (m model) View() string {
	if m.step == stepConfirm {
		return m.viewConfirm()
	}
	return m.viewSelect()
}

func (m model) viewSelect() string {
	var b strings.Builder

	// Title
	title := m.titleStyle.Width(m.width).Render(stepTitles[m.step])
	b.WriteString(title)
	b.WriteString("\n\n")

	// Progress
	progress := fmt.Sprintf("Step %d/4", int(m.step)+1)
	b.WriteString(m.progressStyle.Render(progress))
	b.WriteString("\n")
	b.WriteString(m.viewChoices())
	b.WriteString("\n")

	options := m.options()

	// Page info
	totalPages := int(math.Ceil(float64(len(options)) / float64(m.itemsPerPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	pageInfo := fmt.Sprintf("Page %d/%d", m.page+1, totalPages)
	b.WriteString(m.helpStyle.Render(pageInfo))
	b.WriteString("\n\n")

	if len(options) == 0 {
		b.WriteString(m.errorStyle.Render("This file has no columns"))
		b.WriteString("\n")
	}

	// Calculate column width dynamically
	columnWidth := (m.width - 4) / m.colsPerRow // Account for padding and spacing
	if columnWidth < 16 {
		columnWidth = 16 // Minimum width
	}

	for row := 0; row < m.rowsPerPage; row++ {
		var rowItems []string
		for col := 0; col < m.colsPerRow; col++ {
			idx := m.page*m.itemsPerPage + row*m.colsPerRow + col
			if idx >= len(options) {
				break
			}

			o := options[idx]
			style := m.normalStyle
			if o.column == m.current() {
				style = m.chosenStyle
			}
			if row == m.row && col == m.col {
				style = m.selectedStyle
			}

			displayText := fmt.Sprintf("%s: %s", o.column, o.hint)
			if o.isNew {
				displayText = fmt.Sprintf("+ %s (%s)", o.column, o.hint)
			}

			rowItems = append(rowItems, style.Render(fitCell(displayText, columnWidth-2)))
		}

		if len(rowItems) > 0 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rowItems...))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(m.errorStyle.Render(m.errMsg))
		b.WriteString("\n\n")
	}

	// Help
	help := "↑↓←→: navigate | Enter: select | Esc: back | q: quit"
	b.WriteString(m.helpStyle.Render(help))

	return b.String()
}

// fitCell truncates s to width terminal cells and pads it to exactly width.
// Wide and multi-byte characters are never split.
func fitCell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}

// viewChoices summarizes the columns chosen so far
func (m model) viewChoices() string {
	var b strings.Builder
	lines := []struct {
		label  string
		column table.Column
	}{
		{"source key", m.selection.SourceKey},
		{"source column", m.selection.SourceColumn},
		{"target key", m.selection.TargetKey},
		{"target column", m.selection.TargetColumn},
	}
	for _, l := range lines {
		value := "-"
		if l.column != "" {
			value = l.column.String()
		}
		b.WriteString(m.helpStyle.Render(fmt.Sprintf("  %-14s %s", l.label, value)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) viewConfirm() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render("Merge with these columns?"))
	b.WriteString("\n\n")
	b.WriteString(m.viewChoices())
	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("y/Enter to merge, n/Esc to go back, q to quit"))

	return b.String()
}

// RunPickerTUI lets the user choose the four merge columns. prev seeds the
// cursor positions, for instance from a saved selection.
func RunPickerTUI(source, target *table.Table, prev Selection, uiConfig UIConfig) (Selection, error) {
	m := initialModel(source, target, prev, uiConfig)

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return Selection{}, fmt.Errorf("error running TUI: %w", err)
	}

	final := finalModel.(model)
	if !final.confirmed {
		return Selection{}, ErrPickerAborted
	}
	return final.selection, nil
}
