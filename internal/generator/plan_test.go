package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/readingplan/internal/canon"
	"github.com/local/readingplan/internal/label"
	"github.com/local/readingplan/internal/layout"
)

var jan1 = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

func abbreviated(t *testing.T) Variant {
	t.Helper()
	v, err := LookupVariant("abbreviated")
	require.NoError(t, err)
	return v
}

func TestLookupVariant(t *testing.T) {
	v, err := LookupVariant("full")
	require.NoError(t, err)
	assert.Equal(t, "Genesis", v.Canon[0].Name)

	_, err = LookupVariant("pocket")
	assert.ErrorContains(t, err, "pocket")
}

func TestBuildPlanFullYear(t *testing.T) {
	plan, err := BuildPlan(Options{Start: jan1, Days: 365, Variant: abbreviated(t)})
	require.NoError(t, err)
	require.Len(t, plan.Days, 365)

	rows := Rows(plan)
	golden := map[int]layout.Row{
		0:   {Date: "Jan 01", Reading: "LAW: Gen 1-4"},
		1:   {Date: "Jan 02", Reading: "LAW: Gen 5-8"},
		12:  {Date: "Jan 13", Reading: "LAW: Gen 49-50, Ex 1-2"},
		59:  {Date: "Mar 01", Reading: "HISTORY: Joshua 22-24, Judges 1"},
		93:  {Date: "Apr 04", Reading: "HISTORY: 1 Chron 7-10"},
		94:  {Date: "Apr 05", Reading: "HISTORY: 1 Chron 11-13"},
		364: {Date: "Dec 31", Reading: "NEW COV: Rev 20-22"},
	}
	for i, want := range golden {
		assert.Equal(t, want, rows[i], "day %d", i)
	}

	sections := map[string]int{}
	total := 0
	for _, d := range plan.Days {
		total += len(d.Chapters)
		sections[strings.SplitN(d.Labeled, ":", 2)[0]]++
	}
	assert.Equal(t, 1189, total)
	assert.Equal(t, map[string]int{
		label.Prophets: 83, label.Wisdom: 81, label.History: 70, label.NewCov: 57,
		label.Law: 47, label.Man: 8, label.Lion: 7, label.Eagle: 7, label.Ox: 5,
	}, sections)
}

func TestBuildPlanSmall(t *testing.T) {
	v := Variant{
		Name:    "test",
		Canon:   canon.Canon{{Name: "A", Chapters: 2}, {Name: "B", Chapters: 1}},
		Labeler: label.New([]label.Rule{{Section: "X", Triggers: []string{"A"}}}, "Y"),
	}
	plan, err := BuildPlan(Options{Start: jan1, Days: 1, Variant: v})
	require.NoError(t, err)
	require.Len(t, plan.Days, 1)
	assert.Equal(t, []string{"A 1", "A 2", "B 1"}, plan.Days[0].Chapters)
	assert.Equal(t, "A 1-2, B 1", plan.Days[0].Compressed)
	assert.Equal(t, "X: A 1-2, B 1", plan.Days[0].Labeled)
}

func TestBuildPlanMoreDaysThanChapters(t *testing.T) {
	v := Variant{Canon: canon.Canon{{Name: "A", Chapters: 2}}, Labeler: label.New(nil, "Y")}
	plan, err := BuildPlan(Options{Start: jan1, Days: 3, Variant: v})
	require.NoError(t, err)
	assert.Equal(t, "Y: ", plan.Days[2].Labeled)
}

func TestBuildPlanErrors(t *testing.T) {
	v := abbreviated(t)
	_, err := BuildPlan(Options{Start: jan1, Days: 0, Variant: v})
	assert.ErrorContains(t, err, "schedule")

	v.Canon = canon.Canon{{Name: "A", Chapters: 0}}
	_, err = BuildPlan(Options{Start: jan1, Days: 1, Variant: v})
	var ibe *canon.InvalidBookError
	assert.ErrorAs(t, err, &ibe)
}

func TestLayoutFullYear(t *testing.T) {
	plan, err := BuildPlan(Options{Start: jan1, Days: 365, Variant: abbreviated(t)})
	require.NoError(t, err)

	pages, story, err := Layout(plan, layout.LetterLandscape())
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Len(t, story, 3)

	assert.Equal(t, 195, pages[0].Len())
	assert.Equal(t, 170, pages[1].Len())

	cells := pages[0].Cells()
	require.Len(t, cells, 39)
	assert.Equal(t, []string{"Jan 01", "LAW: Gen 1-4"}, cells[0][:2])
	// second column starts at day 39
	assert.Equal(t, plan.Days[39].Date.Format(DateFormat), cells[0][2])

	last := pages[1].Cells()
	// 170 rows over 39-row columns: 4 full columns and 14 rows in the fifth
	assert.Equal(t, "Dec 31", last[13][8])
	assert.Equal(t, "", last[14][8])
}

func TestLayoutFullVariantGeometry(t *testing.T) {
	v, err := LookupVariant("full")
	require.NoError(t, err)
	plan, err := BuildPlan(Options{Start: jan1, Days: 365, Variant: v})
	require.NoError(t, err)

	geom := layout.LetterLandscape()
	geom.ColumnsPerPage = 4
	pages, _, err := Layout(plan, geom)
	require.NoError(t, err)
	assert.Len(t, pages, 3)
	assert.Len(t, pages[0].Cells()[0], 8)
}

func TestLayoutRejectsBadGeometry(t *testing.T) {
	plan, err := BuildPlan(Options{Start: jan1, Days: 10, Variant: abbreviated(t)})
	require.NoError(t, err)
	geom := layout.LetterLandscape()
	geom.ColumnsPerPage = 0
	_, _, err = Layout(plan, geom)
	assert.ErrorIs(t, err, layout.ErrBadGeometry)
}
