package compress

import (
	"strconv"
	"strings"
)

// Split parses "<Book> <n>" on the last space. ok is false when there is
// no space or the trailing part is not an integer.
func Split(item string) (book string, n int, ok bool) {
	i := strings.LastIndex(item, " ")
	if i < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(item[i+1:])
	if err != nil {
		return "", 0, false
	}
	return item[:i], n, true
}

// Chapters merges runs of consecutive chapters from the same book into
// "Book A-B" ranges and joins the result with ", ". A run only grows while
// each next chapter equals the run start plus the run length. Items that do
// not parse are emitted verbatim as their own run.
func Chapters(list []string) string {
	if len(list) == 0 {
		return ""
	}
	out := make([]string, 0, len(list))
	i := 0
	for i < len(list) {
		book, start, ok := Split(list[i])
		if !ok {
			out = append(out, list[i])
			i++
			continue
		}

		j := i + 1
		for j < len(list) {
			nb, nn, nok := Split(list[j])
			if !nok || nb != book || nn != start+(j-i) {
				break
			}
			j++
		}

		if j-i > 1 {
			out = append(out, book+" "+strconv.Itoa(start)+"-"+strconv.Itoa(start+(j-i)-1))
		} else {
			out = append(out, list[i])
		}
		i = j
	}
	return strings.Join(out, ", ")
}
