package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "empty", value: Empty(), want: ""},
		{name: "text", value: Text(" abc "), want: " abc "},
		{name: "integer", value: Number(42), want: "42"},
		{name: "fraction", value: Number(2.5), want: "2.5"},
		{name: "negative", value: Number(-0.125), want: "-0.125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestValue_Blank(t *testing.T) {
	assert.True(t, Empty().IsBlank())
	assert.True(t, Text("").IsBlank())
	assert.True(t, Text("  \t").IsBlank())
	assert.False(t, Text(" x ").IsBlank())
	assert.False(t, Number(0).IsBlank())

	assert.True(t, Empty().IsEmpty())
	assert.False(t, Text(" ").IsEmpty())
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, KindEmpty, ParseValue("", true).Kind())
	assert.Equal(t, KindNumber, ParseValue("12.5", true).Kind())
	assert.Equal(t, KindText, ParseValue("12.5", false).Kind())
	assert.Equal(t, KindText, ParseValue("abc", true).Kind())

	f, ok := ParseValue("3", true).Float()
	require.True(t, ok)
	assert.Equal(t, 3.0, f)
}

func TestGrid_FillRegions(t *testing.T) {
	g := Grid{
		{Text("X"), Empty(), Text("a")},
		{Empty(), Text("stale"), Text("b")},
	}
	g.FillRegions([]Region{{Top: 0, Left: 0, Bottom: 1, Right: 1}})

	for r := 0; r <= 1; r++ {
		for c := 0; c <= 1; c++ {
			assert.Equal(t, "X", g[r][c].String(), "cell %d,%d", r, c)
		}
	}
	assert.Equal(t, "a", g[0][2].String())
	assert.Equal(t, "b", g[1][2].String())
}

func TestGrid_FillRegionsOutOfBounds(t *testing.T) {
	g := Grid{{Text("X")}}
	assert.NotPanics(t, func() {
		g.FillRegions([]Region{
			{Top: 0, Left: 0, Bottom: 5, Right: 5},
			{Top: 3, Left: 3, Bottom: 4, Right: 4},
		})
	})
	assert.Equal(t, "X", g[0][0].String())
}

func TestGrid_Compact(t *testing.T) {
	g := Grid{
		{Text("a"), Empty(), Text("b")},
		{Empty(), Empty(), Empty()},
		{Text("c"), Empty(), Number(1)},
		{Empty(), Empty()},
	}

	out := g.Compact()
	require.Len(t, out, 2)
	assert.Equal(t, []Value{Text("a"), Text("b")}, out[0])
	assert.Equal(t, []Value{Text("c"), Number(1)}, out[1])

	// a second pass has nothing left to remove
	assert.Equal(t, out, out.Compact())
}

func TestGrid_CompactRagged(t *testing.T) {
	g := Grid{
		{Text("a")},
		{Empty(), Empty(), Text("z")},
	}
	out := g.Compact()
	require.Len(t, out, 2)
	assert.Equal(t, []Value{Text("a"), Empty()}, out[0])
	assert.Equal(t, []Value{Empty(), Text("z")}, out[1])
}

func TestGrid_CompactKeepsWhitespaceText(t *testing.T) {
	out := Grid{{Text(" ")}}.Compact()
	require.Len(t, out, 1)
	assert.Len(t, out[0], 1)
}

func TestGrid_CompactEmpty(t *testing.T) {
	out := Grid{{Empty(), Empty()}, {}}.Compact()
	assert.Len(t, out, 0)
	assert.Equal(t, 0, out.Width())
}

func TestUniqueColumns(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  []Column
	}{
		{
			name:  "already unique",
			names: []string{"col_0", "col_1"},
			want:  []Column{"col_0", "col_1"},
		},
		{
			name:  "repeated base",
			names: []string{"col_0", "col_0", "col_0"},
			want:  []Column{"col_0", "col_0_1", "col_0_2"},
		},
		{
			name:  "suffix already taken",
			names: []string{"a", "a_1", "a"},
			want:  []Column{"a", "a_1", "a_2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniqueColumns(tt.names)
			assert.Equal(t, tt.want, got)

			seen := make(map[Column]bool)
			for _, c := range got {
				assert.False(t, seen[c], "duplicate %s", c)
				seen[c] = true
			}
		})
	}
}

func TestPositionalColumns(t *testing.T) {
	assert.Equal(t, []Column{"col_0", "col_1", "col_2"}, PositionalColumns(3))
	assert.Empty(t, PositionalColumns(0))
}

func TestNew_Rejects(t *testing.T) {
	_, err := New([]Column{"a", "a"}, nil)
	assert.ErrorContains(t, err, "duplicate column identifier")

	_, err = New([]Column{"a", "b"}, Grid{{Text("x")}})
	assert.ErrorContains(t, err, "expected 2")

	_, err = New([]Column{" "}, nil)
	assert.ErrorContains(t, err, "empty identifier")
}

func TestFromGrid(t *testing.T) {
	tbl := FromGrid(Grid{
		{Empty(), Empty(), Empty()},
		{Empty(), Text("k"), Text("v")},
	})

	assert.Equal(t, []Column{"col_0", "col_1"}, tbl.Columns())
	assert.Equal(t, 1, tbl.Len())

	v, ok := tbl.Cell(0, "col_1")
	require.True(t, ok)
	assert.Equal(t, "v", v.String())

	_, ok = tbl.Cell(0, "col_9")
	assert.False(t, ok)
}

func TestFromGrid_Empty(t *testing.T) {
	tbl := FromGrid(nil)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, 0, tbl.Width())
	assert.Empty(t, Profile(tbl))
}

func TestTable_HeadAndCopies(t *testing.T) {
	tbl := FromGrid(Grid{{Text("a")}, {Text("b")}, {Text("c")}})

	head := tbl.Head(2)
	assert.Equal(t, 2, head.Len())
	assert.Equal(t, 3, tbl.Head(10).Len())
	assert.Equal(t, 3, tbl.Head(-1).Len())

	row := tbl.Row(0)
	row[0] = Text("changed")
	v, _ := tbl.Cell(0, "col_0")
	assert.Equal(t, "a", v.String())

	values, ok := tbl.ColumnValues("col_0")
	require.True(t, ok)
	assert.Equal(t, []Value{Text("a"), Text("b"), Text("c")}, values)
}

func TestProfile(t *testing.T) {
	tbl, err := New([]Column{"key", "val"}, Grid{
		{Text("A"), Text("red")},
		{Text("A"), Text(" red ")},
		{Text("B"), Empty()},
		{Text("C"), Text("green")},
		{Text("D"), Text("blue")},
		{Text("E"), Text("pink")},
	})
	require.NoError(t, err)

	profiles := Profile(tbl)
	require.Len(t, profiles, 2)

	assert.Equal(t, Column("key"), profiles[0].Column)
	assert.Equal(t, 6, profiles[0].NonEmpty)
	assert.Equal(t, 5, profiles[0].Distinct)

	assert.Equal(t, 5, profiles[1].NonEmpty)
	assert.Equal(t, 4, profiles[1].Distinct)
	assert.Equal(t, []string{"red", "green", "blue"}, profiles[1].Samples)
	assert.Equal(t, "red, green, blue", profiles[1].Hint())
}
