package verify

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"
)

// ErrNotPDF is returned when the artifact's magic bytes are not a PDF.
var ErrNotPDF = errors.New("output is not a PDF")

// ErrPageCount is returned when the document has an unexpected page count.
var ErrPageCount = errors.New("unexpected page count")

// ErrNoText is returned when sampled pages carry too little text or miss an
// expected string.
var ErrNoText = errors.New("rendered text check failed")

// DefaultThreshold is used when a non-positive threshold is passed in.
const DefaultThreshold = 300

var whitespaceRegex = regexp.MustCompile(`\s+`)

func stripWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(s, "")
}

// Doc abstracts a PDF document for text extraction.
type Doc interface {
	NumPage() int
	Text(i int) (string, error)
	Close() error
}

// Opener abstracts opening a PDF path into a Doc.
type Opener interface {
	Open(path string) (Doc, error)
}

// PageProbe captures the result of probing a single page.
type PageProbe struct {
	PageIndex int    `json:"page_index"`
	CharCount int    `json:"char_count"`
	Err       string `json:"err,omitempty"`
}

// Report describes one verification.
type Report struct {
	FilePath   string      `json:"file_path"`
	MIMEType   string      `json:"mime_type"`
	Pages      int         `json:"pages"`
	TextChars  int         `json:"text_chars"`
	Threshold  int         `json:"threshold"`
	Probes     []PageProbe `json:"probes"`
	Missing    []string    `json:"missing,omitempty"`
	DurationMs int64       `json:"duration_ms"`
}

// Options configures Check.
type Options struct {
	WantPages int                  // 0 skips the page count check
	Threshold int                  // minimum non-whitespace characters across sampled pages
	Expect    []string             // strings that must appear on the first page
	Opener    Opener               // nil uses go-fitz
	Config    *model.Configuration // pdfcpu validation settings; nil uses the defaults
}

// Check confirms that path is a PDF with the expected page count and
// extractable text.
func Check(path string, opts Options) (*Report, error) {
	start := time.Now()
	rep := &Report{FilePath: path}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return rep, fmt.Errorf("failed to detect file type: %w", err)
	}
	rep.MIMEType = mt.String()
	if !mt.Is("application/pdf") {
		return rep, fmt.Errorf("%w: detected %s", ErrNotPDF, rep.MIMEType)
	}

	if err := api.ValidateFile(path, opts.Config); err != nil {
		return rep, fmt.Errorf("pdf validation failed: %w", err)
	}

	n, err := api.PageCountFile(path)
	if err != nil {
		return rep, fmt.Errorf("pdf page count failed: %w", err)
	}
	rep.Pages = n
	if opts.WantPages > 0 && n != opts.WantPages {
		return rep, fmt.Errorf("%w: got %d, want %d", ErrPageCount, n, opts.WantPages)
	}

	opener := opts.Opener
	if opener == nil {
		opener = fitzOpener{}
	}
	err = SampleText(opener, path, opts.Threshold, opts.Expect, rep)
	rep.DurationMs = time.Since(start).Milliseconds()
	log.Debug().Str("file", path).Int("pages", rep.Pages).Int("text_chars", rep.TextChars).Int64("duration_ms", rep.DurationMs).Msg("verified output")
	return rep, err
}

// SampleText counts extractable characters on a sample of pages and checks
// that every expected string occurs on the first page. Whitespace is ignored
// on both sides since extraction does not preserve cell spacing.
func SampleText(opener Opener, path string, threshold int, expect []string, rep *Report) error {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	rep.Threshold = threshold

	d, err := opener.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer d.Close()

	total := d.NumPage()
	first := ""
	for _, idx := range sampleIndices(total) {
		probe := PageProbe{PageIndex: idx}
		text, terr := d.Text(idx)
		if terr != nil {
			probe.Err = terr.Error()
			rep.Probes = append(rep.Probes, probe)
			continue
		}
		cleaned := stripWhitespace(text)
		if idx == 0 {
			first = cleaned
		}
		probe.CharCount = len([]rune(cleaned))
		rep.TextChars += probe.CharCount
		rep.Probes = append(rep.Probes, probe)
	}

	for _, e := range expect {
		if !strings.Contains(first, stripWhitespace(e)) {
			rep.Missing = append(rep.Missing, e)
		}
	}
	if len(rep.Missing) > 0 {
		return fmt.Errorf("%w: first page is missing %q", ErrNoText, rep.Missing)
	}
	if rep.TextChars < threshold {
		return fmt.Errorf("%w: %d characters in sample, want at least %d", ErrNoText, rep.TextChars, threshold)
	}
	return nil
}

// sampleIndices returns every page for short documents, otherwise the
// first, last and the three quartile pages.
func sampleIndices(total int) []int {
	if total <= 0 {
		return []int{}
	}
	if total <= 5 {
		idx := make([]int, total)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	return []int{0, total / 4, total / 2, 3 * total / 4, total - 1}
}
