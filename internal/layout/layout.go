package layout

import (
	"errors"
	"fmt"
)

// ErrBadGeometry is returned for non-positive row or column counts.
var ErrBadGeometry = errors.New("layout: rows per column and columns per page must be >= 1")

// Geometry describes the printed page in points (1/72 inch).
type Geometry struct {
	PageWidth        float64
	PageHeight       float64
	Margin           float64
	RowHeight        float64
	MaxRowsPerColumn int
	ColumnsPerPage   int
	DateWidth        float64
	ReadingWidth     float64
	FontSize         int
}

// LetterLandscape is the five-column layout of the abbreviated plan.
func LetterLandscape() Geometry {
	return Geometry{
		PageWidth:        792,
		PageHeight:       612,
		Margin:           24,
		RowHeight:        12,
		MaxRowsPerColumn: 39,
		ColumnsPerPage:   5,
		DateWidth:        30,
		ReadingWidth:     100,
		FontSize:         6,
	}
}

// RowsPerColumn is how many rows fit between the top and bottom margins,
// capped at MaxRowsPerColumn and never below 1.
func (g Geometry) RowsPerColumn() int {
	var rows int
	if g.RowHeight > 0 {
		rows = int((g.PageHeight - 2*g.Margin) / g.RowHeight)
	}
	if g.MaxRowsPerColumn > 0 && rows > g.MaxRowsPerColumn {
		rows = g.MaxRowsPerColumn
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ColumnWidths repeats [DateWidth, ReadingWidth] once per column group.
func (g Geometry) ColumnWidths() []float64 {
	out := make([]float64, 0, 2*g.ColumnsPerPage)
	for i := 0; i < g.ColumnsPerPage; i++ {
		out = append(out, g.DateWidth, g.ReadingWidth)
	}
	return out
}

// Validate checks the parts of the geometry pagination depends on.
func (g Geometry) Validate() error {
	if g.ColumnsPerPage < 1 {
		return fmt.Errorf("%w: columns per page %d", ErrBadGeometry, g.ColumnsPerPage)
	}
	if g.PageHeight <= 0 || g.PageWidth <= 0 || g.RowHeight <= 0 {
		return fmt.Errorf("%w: page %gx%g row height %g", ErrBadGeometry, g.PageWidth, g.PageHeight, g.RowHeight)
	}
	if 2*g.Margin >= g.PageHeight || 2*g.Margin >= g.PageWidth {
		return fmt.Errorf("%w: margin %g leaves no printable area", ErrBadGeometry, g.Margin)
	}
	return nil
}
