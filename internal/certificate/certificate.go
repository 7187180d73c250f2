// Package certificate renders PNG certificates for finished practice sessions.
package certificate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Canvas size in pixels.
const (
	Width  = 1200
	Height = 850
)

// Data is what a certificate shows.
type Data struct {
	Learner string
	Title   string
	Correct int
	Total   int
	Stars   int
	Date    time.Time
}

// Renderer draws certificates. It is safe for sequential reuse.
type Renderer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// NewRenderer parses the fonts used on certificates. When fontPath is empty
// the bundled Go fonts are used; otherwise the TTF at fontPath is used for
// both faces.
func NewRenderer(fontPath string) (*Renderer, error) {
	if strings.TrimSpace(fontPath) != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse TTF: %w", err)
		}
		return &Renderer{regular: f, bold: f}, nil
	}

	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Renderer{regular: regular, bold: bold}, nil
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

var (
	paper  = color.NRGBA{R: 0xFF, G: 0xFB, B: 0xF0, A: 0xFF}
	border = color.NRGBA{R: 0x7C, G: 0x3A, B: 0xED, A: 0xFF}
	ink    = color.NRGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}
	muted  = color.NRGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF}
	gold   = color.NRGBA{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF}
	empty  = color.NRGBA{R: 0xE5, G: 0xE7, B: 0xEB, A: 0xFF}
)

// Render draws the certificate.
func (r *Renderer) Render(d Data) (image.Image, error) {
	if strings.TrimSpace(d.Learner) == "" {
		return nil, fmt.Errorf("learner name is required")
	}
	if d.Stars < 0 || d.Stars > 3 {
		return nil, fmt.Errorf("stars must be 0-3, got %d", d.Stars)
	}

	dc := gg.NewContext(Width, Height)
	dc.SetColor(paper)
	dc.Clear()

	dc.SetColor(border)
	dc.SetLineWidth(16)
	dc.DrawRoundedRectangle(24, 24, Width-48, Height-48, 24)
	dc.Stroke()
	dc.SetLineWidth(3)
	dc.DrawRoundedRectangle(52, 52, Width-104, Height-104, 16)
	dc.Stroke()

	cx := float64(Width) / 2

	dc.SetFontFace(face(r.bold, 64))
	dc.SetColor(border)
	dc.DrawStringAnchored("Certificate of English Practice", cx, 170, 0.5, 0.5)

	dc.SetFontFace(face(r.regular, 30))
	dc.SetColor(muted)
	dc.DrawStringAnchored("This certificate is proudly given to", cx, 270, 0.5, 0.5)

	dc.SetFontFace(face(r.bold, 72))
	dc.SetColor(ink)
	dc.DrawStringAnchored(d.Learner, cx, 360, 0.5, 0.5)

	dc.SetFontFace(face(r.regular, 30))
	dc.SetColor(muted)
	title := d.Title
	if title == "" {
		title = "English practice"
	}
	dc.DrawStringWrapped("for completing "+title, cx, 440, 0.5, 0.5, Width-240, 1.4, gg.AlignCenter)

	dc.SetFontFace(face(r.bold, 40))
	dc.SetColor(ink)
	dc.DrawStringAnchored(fmt.Sprintf("%d of %d correct", d.Correct, d.Total), cx, 530, 0.5, 0.5)

	for i := range 3 {
		c := empty
		if i < d.Stars {
			c = gold
		}
		drawStar(dc, cx+float64(i-1)*110, 640, 46, c)
	}

	if !d.Date.IsZero() {
		dc.SetFontFace(face(r.regular, 24))
		dc.SetColor(muted)
		dc.DrawStringAnchored(d.Date.Format("2 January 2006"), cx, 750, 0.5, 0.5)
	}

	return dc.Image(), nil
}

func drawStar(dc *gg.Context, x, y, r float64, c color.Color) {
	const points = 5
	inner := r * 0.45
	for i := range points * 2 {
		radius := r
		if i%2 == 1 {
			radius = inner
		}
		angle := float64(i)*math.Pi/points - math.Pi/2
		px := x + radius*math.Cos(angle)
		py := y + radius*math.Sin(angle)
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
	dc.SetColor(c)
	dc.Fill()
}

// WritePNG renders the certificate and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, d Data) error {
	img, err := r.Render(d)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}

// Save writes the certificate to path, creating parent directories.
func (r *Renderer) Save(path string, d Data) error {
	var buf bytes.Buffer
	if err := r.WritePNG(&buf, d); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create certificate dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write certificate: %w", err)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]+`)

// FileName returns a file name like "certificate-sam-lee-2026-10-19.png".
func FileName(learner string, at time.Time) string {
	slug := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(learner), "-"), "-")
	if slug == "" {
		slug = "learner"
	}
	return fmt.Sprintf("certificate-%s-%s.png", slug, at.Format("2006-01-02"))
}
