package layout

// Flowable is one element of a render story: a Table or a PageBreak.
type Flowable interface {
	flowable()
}

// Table is one page's cell grid with per-column widths in points.
type Table struct {
	Cells     [][]string
	ColWidths []float64
}

// PageBreak forces the following table onto a new page.
type PageBreak struct{}

func (Table) flowable()     {}
func (PageBreak) flowable() {}

// Story turns pages into tables separated by page breaks. No break follows
// the last page.
func Story(pages []Page, widths []float64) []Flowable {
	out := make([]Flowable, 0, 2*len(pages))
	for i, p := range pages {
		out = append(out, Table{Cells: p.Cells(), ColWidths: widths})
		if i < len(pages)-1 {
			out = append(out, PageBreak{})
		}
	}
	return out
}
