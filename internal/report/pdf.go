package report

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"regexp"

	"github.com/jung-kurt/gofpdf"

	"ledger-backend/internal/logger"
)

// A4 portrait, millimetres.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// sliverMM absorbs float error so an image exactly one page tall stays one page.
const sliverMM = 0.01

// PageOffsets returns where the full image is placed on each successive page.
// Each page shifts it up by one page height until nothing is left below.
func PageOffsets(imgHeightMM float64) []float64 {
	offsets := []float64{0}
	left := imgHeightMM - PageHeightMM
	for left > sliverMM {
		offsets = append(offsets, left-imgHeightMM)
		left -= PageHeightMM
	}
	return offsets
}

// ImageHeightMM is the rendered height once the image is scaled to page width.
func ImageHeightMM(widthPx, heightPx int) float64 {
	return float64(heightPx) * PageWidthMM / float64(widthPx)
}

// Slice builds the PDF from an encoded PNG of the given pixel size.
func Slice(pngData []byte, widthPx, heightPx int) ([]byte, int, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return nil, 0, fmt.Errorf("invalid image size %dx%d", widthPx, heightPx)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("report", opt, bytes.NewReader(pngData))

	imgHeight := ImageHeightMM(widthPx, heightPx)
	offsets := PageOffsets(imgHeight)
	for _, y := range offsets {
		pdf.AddPage()
		pdf.ImageOptions("report", 0, y, PageWidthMM, imgHeight, false, opt, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(offsets), nil
}

// Document is a finished client report.
type Document struct {
	FileName string
	PDF      []byte
	Pages    int
}

// Build renders the snapshot and slices it into A4 pages.
func Build(s Snapshot) (*Document, error) {
	img, err := Render(s)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return encode(img, FileName(s.Client.FullName))
}

func encode(img image.Image, name string) (*Document, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode report image: %w", err)
	}

	b := img.Bounds()
	data, pages, err := Slice(buf.Bytes(), b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	logger.Log.Debugw("[Report] built", "file", name, "pages", pages, "bytes", len(data))
	return &Document{FileName: name, PDF: data, Pages: pages}, nil
}

var (
	whitespace = regexp.MustCompile(`[\s\p{Zs}\x{FEFF}]+`)
	separators = regexp.MustCompile(`[/\\]`)
)

// FileName is the client's name with whitespace runs turned into underscores.
// Path separators become underscores too, so the result is a single segment.
func FileName(fullName string) string {
	name := whitespace.ReplaceAllString(fullName, "_")
	return separators.ReplaceAllString(name, "_") + "_rapport.pdf"
}
