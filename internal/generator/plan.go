package generator

import (
	"fmt"
	"time"

	"github.com/local/readingplan/internal/canon"
	"github.com/local/readingplan/internal/compress"
	"github.com/local/readingplan/internal/label"
	"github.com/local/readingplan/internal/layout"
	"github.com/local/readingplan/internal/schedule"
)

// DateFormat is the printed day label, e.g. "Jan 02".
const DateFormat = "Jan 02"

// Variant pairs a canon with the labeler that understands its book names.
type Variant struct {
	Name    string
	Canon   canon.Canon
	Labeler *label.Labeler
}

// LookupVariant returns the named built-in variant.
func LookupVariant(name string) (Variant, error) {
	switch name {
	case "abbreviated":
		return Variant{Name: name, Canon: canon.Abbreviated(), Labeler: label.Abbreviated()}, nil
	case "full":
		return Variant{Name: name, Canon: canon.Full(), Labeler: label.Full()}, nil
	default:
		return Variant{}, fmt.Errorf("unknown plan variant %q", name)
	}
}

// Options selects what to generate.
type Options struct {
	Start    time.Time
	Days     int
	Variant  Variant
	Geometry layout.Geometry
}

// BuildPlan expands the canon, spreads it over the days and fills in the
// compressed and labeled reading of every day.
func BuildPlan(opts Options) (schedule.Plan, error) {
	chapters, err := canon.Expand(opts.Variant.Canon)
	if err != nil {
		return schedule.Plan{}, fmt.Errorf("expand canon: %w", err)
	}
	plan, err := schedule.Build(opts.Start, chapters, opts.Days)
	if err != nil {
		return schedule.Plan{}, fmt.Errorf("schedule: %w", err)
	}
	for i := range plan.Days {
		d := &plan.Days[i]
		d.Compressed = compress.Chapters(d.Chapters)
		d.Labeled = opts.Variant.Labeler.Apply(d.Compressed)
	}
	return plan, nil
}

// Rows converts the plan into printable rows.
func Rows(plan schedule.Plan) []layout.Row {
	out := make([]layout.Row, len(plan.Days))
	for i, d := range plan.Days {
		out[i] = layout.Row{Date: d.Date.Format(DateFormat), Reading: d.Labeled}
	}
	return out
}

// Layout paginates the plan and builds the render story.
func Layout(plan schedule.Plan, geom layout.Geometry) ([]layout.Page, []layout.Flowable, error) {
	if err := geom.Validate(); err != nil {
		return nil, nil, err
	}
	pages, err := layout.Paginate(Rows(plan), geom.RowsPerColumn(), geom.ColumnsPerPage)
	if err != nil {
		return nil, nil, err
	}
	return pages, layout.Story(pages, geom.ColumnWidths()), nil
}
