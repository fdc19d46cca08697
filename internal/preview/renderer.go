package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"
)

// RenderPageToJPEG renders one page (1-based) of a PDF as a grayscale JPEG.
// Returns JPEG bytes, width, height.
func RenderPageToJPEG(pdfPath string, pageNum, dpi, quality int) ([]byte, int, int, error) {
	if pageNum < 1 {
		return nil, 0, 0, fmt.Errorf("page %d out of range", pageNum)
	}
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if pageNum > doc.NumPage() {
		return nil, 0, 0, fmt.Errorf("page %d out of range (document has %d pages)", pageNum, doc.NumPage())
	}
	img, err := doc.ImageDPI(pageNum-1, float64(dpi))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to render page %d: %w", pageNum, err)
	}
	return encodeGray(img, quality)
}

func encodeGray(img image.Image, quality int) ([]byte, int, int, error) {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gray, &jpeg.Options{Quality: quality}); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), bounds.Dx(), bounds.Dy(), nil
}

// WriteFirstPage renders the first page of pdfPath to outPath.
func WriteFirstPage(pdfPath, outPath string, dpi int) error {
	if dpi <= 0 {
		dpi = 96
	}
	b, w, h, err := RenderPageToJPEG(pdfPath, 1, dpi, 85)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview dir: %w", err)
		}
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	log.Info().Str("preview", outPath).Int("width", w).Int("height", h).Int("bytes", len(b)).Msg("wrote preview")
	return nil
}
