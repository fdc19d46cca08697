package canon

import (
	"fmt"
	"strconv"
)

// Book is one named group of chapters.
type Book struct {
	Name     string
	Chapters int
}

// Canon is an ordered list of books. Order is reading order, not the
// traditional canonical order.
type Canon []Book

// InvalidBookError reports a book whose chapter count is not positive.
type InvalidBookError struct {
	Index    int
	Name     string
	Chapters int
}

func (e *InvalidBookError) Error() string {
	return fmt.Sprintf("canon entry %d (%q): chapter count must be >= 1, got %d", e.Index, e.Name, e.Chapters)
}

// Validate rejects any entry with a non-positive chapter count.
func (c Canon) Validate() error {
	for i, b := range c {
		if b.Chapters < 1 {
			return &InvalidBookError{Index: i, Name: b.Name, Chapters: b.Chapters}
		}
	}
	return nil
}

// Total returns the number of chapters across all books.
func (c Canon) Total() int {
	n := 0
	for _, b := range c {
		n += b.Chapters
	}
	return n
}

// Expand flattens the canon into "<Name> <n>" identifiers, 1-based, in book
// order then chapter order. A malformed entry fails the whole expansion.
func Expand(c Canon) ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := make([]string, 0, c.Total())
	for _, b := range c {
		for n := 1; n <= b.Chapters; n++ {
			out = append(out, b.Name+" "+strconv.Itoa(n))
		}
	}
	return out, nil
}
