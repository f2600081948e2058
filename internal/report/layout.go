package report

import (
	"image"
	"image/color"
	"strconv"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"ledger-backend/internal/format"
	"ledger-backend/internal/ledger"
	"ledger-backend/internal/models"
)

// Scale is the raster resolution multiplier over the 96 dpi layout.
const Scale = 2

const (
	layoutWidth = 794 // 210mm at 96 dpi
	padding     = 38  // 10mm
	cellPadding = 6
)

var (
	colText   = color.RGBA{0x1f, 0x29, 0x37, 0xff}
	colMuted  = color.RGBA{0x4b, 0x55, 0x63, 0xff}
	colAccent = color.RGBA{0x3d, 0xb9, 0xb2, 0xff}
	colAlert  = color.RGBA{0xdc, 0x26, 0x26, 0xff}
	colBorder = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}
	colStripe = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
)

// Snapshot is everything a report shows: the client and all of its records.
type Snapshot struct {
	Client    models.Client
	Payments  []models.Payment
	Purchases []models.Purchase
}

var (
	PaymentHeaders  = []string{"Date de paiement", "Type de paiement", "Paiement (DH)"}
	PurchaseHeaders = []string{"Date d'achat", "Qté", "Type", "Classe", "Poids", "Prix unitaire (DH)", "Prix total (DH)"}

	paymentWeights  = []float64{1, 1, 1}
	purchaseWeights = []float64{1.2, 0.6, 1, 1, 0.7, 1.2, 1.2}
)

type faces struct {
	title, heading, bold, regular font.Face
}

var (
	facesOnce sync.Once
	loaded    *faces
	facesErr  error
)

func loadFaces() (*faces, error) {
	facesOnce.Do(func() {
		reg, err := opentype.Parse(goregular.TTF)
		if err != nil {
			facesErr = err
			return
		}
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			facesErr = err
			return
		}
		face := func(f *opentype.Font, px float64) font.Face {
			if facesErr != nil {
				return nil
			}
			fc, err := opentype.NewFace(f, &opentype.FaceOptions{Size: px * Scale, DPI: 72, Hinting: font.HintingFull})
			if err != nil {
				facesErr = err
			}
			return fc
		}
		loaded = &faces{
			title:   face(bold, 22),
			heading: face(bold, 16),
			bold:    face(bold, 11),
			regular: face(reg, 11),
		}
	})
	return loaded, facesErr
}

// canvas lays out top to bottom. With a nil img it only measures.
type canvas struct {
	img   *image.RGBA
	f     *faces
	width int
	y     int
}

func px(v int) int { return v * Scale }

func lineHeight(face font.Face) int { return face.Metrics().Height.Ceil() }

func (c *canvas) fill(r image.Rectangle, col color.Color) {
	if c.img == nil {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) drawText(face font.Face, col color.Color, x, top int, s string) {
	if c.img == nil {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, top+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// line writes one left aligned line and moves below it.
func (c *canvas) line(face font.Face, col color.Color, s string, gap int) {
	c.drawText(face, col, px(padding), c.y, s)
	c.y += lineHeight(face) + px(gap)
}

// fit shortens s with an ellipsis until it is at most width pixels wide.
func fit(face font.Face, s string, width int) string {
	limit := fixed.I(width)
	if font.MeasureString(face, s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if font.MeasureString(face, candidate) <= limit {
			return candidate
		}
	}
	return ""
}

func columnWidths(total int, weights []float64) []int {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	widths := make([]int, len(weights))
	used := 0
	for i, w := range weights {
		widths[i] = int(float64(total) * w / sum)
		used += widths[i]
	}
	widths[len(widths)-1] += total - used
	return widths
}

func (c *canvas) table(headers []string, weights []float64, rows [][]string, empty string) {
	left := px(padding)
	tableWidth := c.width - 2*left
	widths := columnWidths(tableWidth, weights)
	rowHeight := lineHeight(c.f.regular) + 2*px(cellPadding)

	row := func(cells []string, face font.Face, fg, bg color.Color) {
		if bg != nil {
			c.fill(image.Rect(left, c.y, left+tableWidth, c.y+rowHeight), bg)
		}
		x := left
		for i, cell := range cells {
			w := widths[i]
			if len(cells) == 1 {
				w = tableWidth
			}
			c.drawText(face, fg, x+px(cellPadding), c.y+px(cellPadding), fit(face, cell, w-2*px(cellPadding)))
			x += w
		}
		c.fill(image.Rect(left, c.y+rowHeight-px(1), left+tableWidth, c.y+rowHeight), colBorder)
		c.y += rowHeight
	}

	row(headers, c.f.bold, color.White, colAccent)
	if len(rows) == 0 {
		row([]string{empty}, c.f.regular, colMuted, nil)
		return
	}
	for i, r := range rows {
		var bg color.Color
		if i%2 == 1 {
			bg = colStripe
		}
		row(r, c.f.regular, colText, bg)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func raw(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// PaymentRows are the payment table cells, detail date convention.
func PaymentRows(payments []models.Payment) [][]string {
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			format.FormatDisplayDate(p.Date, p.Date == nil, format.SurfaceDetail),
			string(p.Type),
			format.FormatCurrency(p.Amount),
		})
	}
	return rows
}

// PurchaseRows are the purchase table cells. Quantity and weight are shown as stored.
func PurchaseRows(purchases []models.Purchase) [][]string {
	rows := make([][]string, 0, len(purchases))
	for _, p := range purchases {
		rows = append(rows, []string{
			format.FormatDisplayDate(p.Date, p.Date == nil, format.SurfaceDetail),
			raw(p.Quantity),
			p.Type,
			p.Class,
			raw(p.Weight),
			format.FormatCurrency(p.UnitPrice),
			format.FormatCurrency(p.TotalPrice),
		})
	}
	return rows
}

func (c *canvas) document(s Snapshot) {
	c.y = px(padding)

	c.line(c.f.title, colText, "Rapport Client", 10)
	c.line(c.f.heading, colText, "Nom: "+s.Client.FullName, 4)
	c.line(c.f.regular, colMuted, "Téléphone: "+orNA(s.Client.PhoneNumber), 2)
	c.line(c.f.regular, colMuted, "Adresse: "+orNA(s.Client.Address), 16)

	sum := ledger.Summarize(s.Payments, s.Purchases)
	c.line(c.f.heading, colText, "Sommaire", 6)
	c.line(c.f.regular, colText, "Total Achats: "+format.FormatCurrency(sum.TotalPurchases)+" DH", 2)
	c.line(c.f.regular, colText, "Total Paiements: "+format.FormatCurrency(sum.TotalPayments)+" DH", 2)
	balanceColor := color.Color(colText)
	if sum.Negative {
		balanceColor = colAlert
	}
	c.line(c.f.bold, balanceColor, "Le Reste: "+format.FormatCurrency(sum.Balance)+" DH", 24)

	c.line(c.f.heading, colText, "Paiements", 6)
	c.table(PaymentHeaders, paymentWeights, PaymentRows(s.Payments), "Aucun paiement trouvé.")
	c.y += px(24)

	c.line(c.f.heading, colText, "Achats", 6)
	c.table(PurchaseHeaders, purchaseWeights, PurchaseRows(s.Purchases), "Aucun achat trouvé.")
	c.y += px(padding)
}

// Render draws the report onto a white raster, as tall as its content.
func Render(s Snapshot) (*image.RGBA, error) {
	f, err := loadFaces()
	if err != nil {
		return nil, err
	}
	width := px(layoutWidth)

	measure := &canvas{f: f, width: width}
	measure.document(s)

	img := image.NewRGBA(image.Rect(0, 0, width, measure.y))
	c := &canvas{img: img, f: f, width: width}
	c.fill(img.Bounds(), color.White)
	c.document(s)
	return img, nil
}
