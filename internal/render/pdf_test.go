package render

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/readingplan/internal/layout"
)

func testPDF() *PDF {
	return &PDF{geom: layout.LetterLandscape(), style: DefaultStyle()}
}

func TestPercentages(t *testing.T) {
	assert.Equal(t, []int{5, 15, 5, 15, 5, 15, 5, 15, 5, 15},
		Percentages([]float64{30, 100, 30, 100, 30, 100, 30, 100, 30, 100}))
	assert.Equal(t, []int{33, 34, 33}, Percentages([]float64{1, 1.0001, 1}))
	assert.Equal(t, []int{0, 0}, Percentages([]float64{0, 0}))
	assert.Empty(t, Percentages(nil))

	for _, ws := range [][]float64{{35, 140, 35, 140, 35, 140, 35, 140}, {7, 11, 13}} {
		sum := 0
		for _, p := range Percentages(ws) {
			sum += p
		}
		assert.Equal(t, 100, sum)
	}
}

func TestDescribeOneTablePerPage(t *testing.T) {
	rows := make([]layout.Row, 5)
	for i := range rows {
		rows[i] = layout.Row{Date: "Jan 0" + string(rune('1'+i)), Reading: "LAW: Gen 1-3"}
	}
	pages, err := layout.Paginate(rows, 2, 2)
	require.NoError(t, err)
	story := layout.Story(pages, []float64{30, 100, 30, 100})

	doc, err := testPDF().Describe(story)
	require.NoError(t, err)

	assert.Equal(t, "LetterL", doc.Paper)
	assert.Equal(t, "UpperLeft", doc.Origin)
	require.Len(t, doc.Pages, 2)

	first := doc.Pages["1"].Content.Tables
	require.Len(t, first, 1)
	tbl := first[0]
	assert.Equal(t, [2]float64{24, 24}, tbl.Pos)
	assert.Equal(t, 744.0, tbl.Width)
	assert.Equal(t, 2, tbl.Rows)
	assert.Equal(t, 4, tbl.Cols)
	assert.Equal(t, 12, tbl.LineHeight)
	assert.Equal(t, []int{12, 38, 12, 38}, tbl.ColWidths)
	assert.Equal(t, "Helvetica", tbl.Font.Name)
	assert.True(t, tbl.Grid)
	assert.Equal(t, pages[0].Cells(), tbl.Values)

	last := doc.Pages["2"].Content.Tables[0]
	assert.Equal(t, []string{"", "", "", ""}, last.Values[1])
}

func TestDescribeStacksTablesWithoutBreak(t *testing.T) {
	tbl := layout.Table{Cells: [][]string{{"a", "b"}, {"c", "d"}}, ColWidths: []float64{1, 3}}
	doc, err := testPDF().Describe([]layout.Flowable{tbl, tbl})
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	tables := doc.Pages["1"].Content.Tables
	require.Len(t, tables, 2)
	assert.Equal(t, 24.0, tables[0].Pos[1])
	assert.Equal(t, 48.0, tables[1].Pos[1])
	assert.NotEqual(t, tables[0].Name, tables[1].Name)
}

func TestDescribeRejectsRaggedTable(t *testing.T) {
	tbl := layout.Table{Cells: [][]string{{"a", "b"}, {"c"}}, ColWidths: []float64{1, 1}}
	_, err := testPDF().Describe([]layout.Flowable{tbl})
	assert.ErrorContains(t, err, "row 1 has 1 cells")

	_, err = testPDF().Describe([]layout.Flowable{layout.Table{ColWidths: []float64{1}}})
	assert.Error(t, err)
}

func TestDescribeEncodesCreateKeys(t *testing.T) {
	tbl := layout.Table{Cells: [][]string{{"Jan 01", "LAW: Gen 1-4"}}, ColWidths: []float64{30, 100}}
	doc, err := testPDF().Describe([]layout.Flowable{tbl})
	require.NoError(t, err)

	js, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(js, &raw))
	pages := raw["pages"].(map[string]any)
	content := pages["1"].(map[string]any)["content"].(map[string]any)
	table := content["table"].([]any)[0].(map[string]any)
	for _, k := range []string{"pos", "width", "rows", "cols", "lheight", "border", "padding", "colWidths", "font", "grid", "values"} {
		assert.Contains(t, table, k)
	}
}

func TestNewPDFRejectsUnknownFont(t *testing.T) {
	style := DefaultStyle()
	style.Font = "NoSuchFont"
	_, err := NewPDF(layout.LetterLandscape(), style)
	assert.True(t, errors.Is(err, ErrMissingDependency))
}

func TestBuildErrorUnwraps(t *testing.T) {
	inner := errors.New("disk full")
	err := error(&BuildError{Stage: "create", Err: inner})
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "pdf create: disk full", err.Error())
}

func TestDescribeGridFollowsStyle(t *testing.T) {
	p := testPDF()
	p.style.Grid = false
	tbl := layout.Table{Cells: [][]string{{"a", "b"}}, ColWidths: []float64{1, 1}}
	doc, err := p.Describe([]layout.Flowable{tbl})
	require.NoError(t, err)
	got := doc.Pages["1"].Content.Tables[0]
	assert.False(t, got.Grid)
	assert.Equal(t, 1, got.Border.Width)
	assert.Equal(t, "#808080", got.Border.Color)
}
