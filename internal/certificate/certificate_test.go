package certificate

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Data {
	return Data{
		Learner: "Sam Lee",
		Title:   "Animals and Everyday Life",
		Correct: 8,
		Total:   9,
		Stars:   2,
		Date:    time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
	}
}

func TestRender(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	img, err := r.Render(sample())
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())

	// Corner is paper, first star is gold, third star is empty.
	assert.Equal(t, paper, toNRGBA(img.At(2, 2)))
	assert.Equal(t, gold, toNRGBA(img.At(Width/2-110, 640)))
	assert.Equal(t, empty, toNRGBA(img.At(Width/2+110, 640)))
}

func TestRender_Errors(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	d := sample()
	d.Learner = " "
	_, err = r.Render(d)
	assert.Error(t, err)

	d = sample()
	d.Stars = 4
	_, err = r.Render(d)
	assert.Error(t, err)
}

func TestWritePNGAndSave(t *testing.T) {
	r, err := NewRenderer("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf, sample()))
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, Width, cfg.Width)

	path := filepath.Join(t.TempDir(), "nested", "cert.png")
	require.NoError(t, r.Save(path, sample()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestNewRenderer_BadFont(t *testing.T) {
	_, err := NewRenderer(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o644))
	_, err = NewRenderer(path)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	at := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "certificate-sam-lee-2026-10-19.png", FileName("Sam  Lee!", at))
	assert.Equal(t, "certificate-learner-2026-10-19.png", FileName("", at))
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
