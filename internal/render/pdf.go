package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"

	"github.com/local/readingplan/internal/layout"
)

// Renderer turns a finished story into a paginated document.
type Renderer interface {
	Build(ctx context.Context, story []layout.Flowable, w io.Writer) error
}

// ErrMissingDependency means the PDF backend cannot render at all.
var ErrMissingDependency = errors.New("pdf rendering backend unavailable")

// BuildError wraps a failure at one stage of the build.
type BuildError struct {
	Stage string
	Err   error
}

func (e *BuildError) Error() string { return fmt.Sprintf("pdf %s: %v", e.Stage, e.Err) }
func (e *BuildError) Unwrap() error { return e.Err }

// Style holds the fixed table styling.
type Style struct {
	Paper       string
	Font        string
	Grid        bool
	GridColor   string
	Padding     float64
	BorderWidth int
}

// DefaultStyle is a thin grey grid in Helvetica on landscape Letter.
func DefaultStyle() Style {
	return Style{
		Paper:       "LetterL",
		Font:        "Helvetica",
		Grid:        true,
		GridColor:   "#808080",
		Padding:     2,
		BorderWidth: 1,
	}
}

// PDF renders stories with pdfcpu's JSON content description.
type PDF struct {
	geom  layout.Geometry
	style Style
	conf  *model.Configuration
}

// NewPDF checks that pdfcpu is usable with the configured core font.
func NewPDF(geom layout.Geometry, style Style) (*PDF, error) {
	if !font.IsCoreFont(style.Font) {
		return nil, fmt.Errorf("%w: %q is not a PDF core font", ErrMissingDependency, style.Font)
	}
	conf := model.NewDefaultConfiguration()
	if conf == nil {
		return nil, fmt.Errorf("%w: no pdfcpu configuration", ErrMissingDependency)
	}
	conf.ValidationMode = model.ValidationRelaxed
	return &PDF{geom: geom, style: style, conf: conf}, nil
}

// Configuration exposes the pdfcpu configuration for follow-up checks.
func (p *PDF) Configuration() *model.Configuration { return p.conf }

// Build writes the story as a PDF to w. Each PageBreak starts a new page.
func (p *PDF) Build(ctx context.Context, story []layout.Flowable, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	desc, err := p.Describe(story)
	if err != nil {
		return &BuildError{Stage: "describe", Err: err}
	}
	js, err := json.Marshal(desc)
	if err != nil {
		return &BuildError{Stage: "encode", Err: err}
	}
	log.Debug().Int("pages", len(desc.Pages)).Int("json_bytes", len(js)).Msg("rendering pdf")
	if err := api.Create(nil, bytes.NewReader(js), w, p.conf); err != nil {
		return &BuildError{Stage: "create", Err: err}
	}
	return nil
}

// Document is the subset of pdfcpu's create description we emit.
type Document struct {
	Paper      string           `json:"paper"`
	Origin     string           `json:"origin"`
	ContentBox bool             `json:"contentBox"`
	Pages      map[string]*Page `json:"pages"`
}

type Page struct {
	Content Content `json:"content"`
}

type Content struct {
	Tables []*Table `json:"table"`
}

type Table struct {
	Name       string     `json:"name,omitempty"`
	Pos        [2]float64 `json:"pos"`
	Width      float64    `json:"width"`
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	LineHeight int        `json:"lheight"`
	ColWidths  []int      `json:"colWidths"`
	Font       Font       `json:"font"`
	Border     Border     `json:"border"`
	Padding    Padding    `json:"padding"`
	Grid       bool       `json:"grid"`
	Values     [][]string `json:"values"`
}

type Font struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type Border struct {
	Width int    `json:"width"`
	Color string `json:"col,omitempty"`
}

type Padding struct {
	Width float64 `json:"width"`
}

// Describe converts the story into a pdfcpu create description. Tables on
// the same page are stacked top to bottom from the top margin.
func (p *PDF) Describe(story []layout.Flowable) (*Document, error) {
	doc := &Document{
		Paper:  p.style.Paper,
		Origin: "UpperLeft",
		Pages:  map[string]*Page{},
	}
	pageNo := 1
	y := p.geom.Margin
	for _, f := range story {
		switch v := f.(type) {
		case layout.PageBreak:
			pageNo++
			y = p.geom.Margin
		case layout.Table:
			t, err := p.table(v, y)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", pageNo, err)
			}
			key := strconv.Itoa(pageNo)
			pg, ok := doc.Pages[key]
			if !ok {
				pg = &Page{}
				doc.Pages[key] = pg
			}
			t.Name = fmt.Sprintf("plan%d_%d", pageNo, len(pg.Content.Tables)+1)
			pg.Content.Tables = append(pg.Content.Tables, t)
			y += float64(t.Rows * t.LineHeight)
		default:
			return nil, fmt.Errorf("unsupported flowable %T", f)
		}
	}
	return doc, nil
}

func (p *PDF) table(t layout.Table, y float64) (*Table, error) {
	if len(t.Cells) == 0 {
		return nil, errors.New("table has no rows")
	}
	cols := len(t.ColWidths)
	for i, row := range t.Cells {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), cols)
		}
	}
	// cells do not wrap, so the table spans the printable width and the
	// column widths only set proportions
	return &Table{
		Pos:        [2]float64{p.geom.Margin, y},
		Width:      p.geom.PageWidth - 2*p.geom.Margin,
		Rows:       len(t.Cells),
		Cols:       cols,
		LineHeight: int(math.Round(p.geom.RowHeight)),
		ColWidths:  Percentages(t.ColWidths),
		Font:       Font{Name: p.style.Font, Size: p.geom.FontSize},
		Border:     Border{Width: p.style.BorderWidth, Color: p.style.GridColor},
		Padding:    Padding{Width: p.style.Padding},
		Grid:       p.style.Grid,
		Values:     t.Cells,
	}, nil
}

// Percentages converts point widths to integer percentages summing to 100.
// Rounding slack lands on the widest column.
func Percentages(widths []float64) []int {
	total := 0.0
	for _, w := range widths {
		total += w
	}
	out := make([]int, len(widths))
	if total <= 0 || len(widths) == 0 {
		return out
	}
	sum, widest := 0, 0
	for i, w := range widths {
		out[i] = int(math.Round(100 * w / total))
		sum += out[i]
		if w > widths[widest] {
			widest = i
		}
	}
	out[widest] += 100 - sum
	return out
}
