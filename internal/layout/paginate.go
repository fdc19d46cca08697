package layout

import "fmt"

// Row is one printed (date, reading) pair.
type Row struct {
	Date    string
	Reading string
}

// Page holds up to ColumnsPerPage columns of up to RowsPerColumn rows each,
// filled top to bottom then left to right.
type Page struct {
	Columns       [][]Row
	RowsPerColumn int
}

// Len is the number of rows on the page.
func (p Page) Len() int {
	n := 0
	for _, c := range p.Columns {
		n += len(c)
	}
	return n
}

// Cells interleaves the columns row-wise: cell row r holds, for each column
// in order, that column's r-th date and reading, or two empty strings when
// the column is shorter.
func (p Page) Cells() [][]string {
	out := make([][]string, p.RowsPerColumn)
	for r := range out {
		row := make([]string, 0, 2*len(p.Columns))
		for _, col := range p.Columns {
			if r < len(col) {
				row = append(row, col[r].Date, col[r].Reading)
			} else {
				row = append(row, "", "")
			}
		}
		out[r] = row
	}
	return out
}

// Rows returns the page's rows in reading order (down each column, then
// across).
func (p Page) Rows() []Row {
	out := make([]Row, 0, p.Len())
	for _, c := range p.Columns {
		out = append(out, c...)
	}
	return out
}

// Paginate lays rows out into pages of columnsPerPage columns with
// rowsPerColumn rows each. Every page carries exactly columnsPerPage
// columns; trailing columns of the last page may be short or empty.
func Paginate(rows []Row, rowsPerColumn, columnsPerPage int) ([]Page, error) {
	if rowsPerColumn < 1 || columnsPerPage < 1 {
		return nil, fmt.Errorf("%w: got %d rows x %d columns", ErrBadGeometry, rowsPerColumn, columnsPerPage)
	}
	perPage := rowsPerColumn * columnsPerPage
	numPages := (len(rows) + perPage - 1) / perPage

	pages := make([]Page, 0, numPages)
	for p := 0; p < numPages; p++ {
		pageRows := rows[p*perPage : min((p+1)*perPage, len(rows))]
		cols := make([][]Row, columnsPerPage)
		for c := range cols {
			lo := min(c*rowsPerColumn, len(pageRows))
			hi := min((c+1)*rowsPerColumn, len(pageRows))
			cols[c] = pageRows[lo:hi:hi]
		}
		pages = append(pages, Page{Columns: cols, RowsPerColumn: rowsPerColumn})
	}
	return pages, nil
}
