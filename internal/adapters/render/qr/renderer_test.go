package qr

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	customErrors "github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/errors"
	"github.com/stretchr/testify/require"
)

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestRender_PNGWithColors(t *testing.T) {
	data, err := NewRenderer().Render("https://example.com", "red", "white", 10)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	b := img.Bounds()
	require.Equal(t, b.Dx(), b.Dy())
	require.Zero(t, b.Dx()%10, "edge must be a whole number of 10px modules")

	// the quiet zone is background
	require.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(img.At(0, 0)))

	var sawFill bool
	for y := b.Min.Y; y < b.Max.Y && !sawFill; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rgba(img.At(x, y)) == (color.RGBA{255, 0, 0, 255}) {
				sawFill = true
				break
			}
		}
	}
	require.True(t, sawFill)
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer()
	a, err := r.Render("https://example.com", "black", "#fff", 4)
	require.NoError(t, err)
	b, err := r.Render("https://example.com", "black", "#fff", 4)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRender_BadColor(t *testing.T) {
	_, err := NewRenderer().Render("https://example.com", "not-a-color", "white", 10)
	require.True(t, customErrors.IsGeneration(err))

	_, err = NewRenderer().Render("https://example.com", "red", "#12", 10)
	require.True(t, customErrors.IsGeneration(err))
}

func TestRender_BadSize(t *testing.T) {
	_, err := NewRenderer().Render("https://example.com", "red", "white", 0)
	require.True(t, customErrors.IsGeneration(err))
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"red":      {255, 0, 0, 255},
		" White ":  {255, 255, 255, 255},
		"#00ff00":  {0, 255, 0, 255},
		"#00F":     {0, 0, 255, 255},
		"DarkBlue": {0, 0, 139, 255},
	}
	for in, want := range cases {
		c, err := ParseColor(in)
		require.NoError(t, err, in)
		require.Equal(t, want, rgba(c), in)
	}

	for _, in := range []string{"", "#", "#ggg", "#1234567", "rgb(1,2,3)"} {
		_, err := ParseColor(in)
		require.Error(t, err, in)
	}
}
