package qrcode

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func solidLogo(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func rgba(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestRender_ProducesBrandedPNG(t *testing.T) {
	r := NewRenderer(solidLogo(64, 64, red), DefaultOptions())

	data, err := r.Render("https://flavorqueste.com/recipes/42")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 500, 500), img.Bounds())

	// quiet zone
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, rgba(img, 0, 0))
	// logo (100px) in the center, padded badge spans 190..310
	center := rgba(img, 250, 250)
	assert.Greater(t, center.R, uint8(0xf0))
	assert.Less(t, center.G, uint8(0x10))
	assert.Less(t, center.B, uint8(0x10))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, rgba(img, 195, 250))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, rgba(img, 250, 305))
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer(solidLogo(80, 40, red), DefaultOptions())

	a, err := r.Render("https://flavorqueste.com/a")
	require.NoError(t, err)
	b, err := r.Render("https://flavorqueste.com/a")
	require.NoError(t, err)
	c, err := r.Render("https://flavorqueste.com/b")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestRender_WithoutLogoFails(t *testing.T) {
	_, err := NewRenderer(nil, DefaultOptions()).Render("https://flavorqueste.com")
	assert.Error(t, err)
}

func TestMatrix_FinderPatternAndMargin(t *testing.T) {
	img, err := Matrix("hello", 500, 1)
	require.NoError(t, err)

	// version 1 at level H: 21 modules + 2 margin = 23 modules per side
	module := 500 / 23
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, rgba(img, module/2, module/2))
	assert.Equal(t, color.RGBA{A: 0xff}, rgba(img, module+module/2, module+module/2))
}

func TestMatrix_TooSmall(t *testing.T) {
	_, err := Matrix("https://flavorqueste.com/a/very/long/path", 10, 1)
	assert.Error(t, err)
}

func TestPadAndComposite(t *testing.T) {
	transparent := solidLogo(4, 4, color.RGBA{})
	padded := Pad(transparent, 2, color.White)
	assert.Equal(t, image.Rect(0, 0, 8, 8), padded.Bounds())
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, rgba(padded, 3, 3))

	base := solidLogo(10, 10, color.Black)
	out := CompositeCenter(base, solidLogo(2, 2, red))
	assert.Equal(t, red, rgba(out, 4, 4))
	assert.Equal(t, color.RGBA{A: 0xff}, rgba(out, 0, 0))
	// input untouched
	assert.Equal(t, color.RGBA{A: 0xff}, rgba(base, 4, 4))
}

func TestLoadLogo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidLogo(8, 8, red)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	img, err := LoadLogo(path)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = LoadLogo(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = LoadLogo(bad)
	assert.Error(t, err)
}
