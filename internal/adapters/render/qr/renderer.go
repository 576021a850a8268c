package qr

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	customErrors "github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/errors"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/colornames"
)

// Renderer draws PNG QR codes with medium error correction and a four module
// quiet zone. size is the edge length of one module in pixels.
type Renderer struct {
	level qrcode.RecoveryLevel
}

func NewRenderer() *Renderer {
	return &Renderer{level: qrcode.Medium}
}

func (r *Renderer) Render(content, fillColor, backColor string, size int) ([]byte, error) {
	if size <= 0 {
		return nil, customErrors.WrapGeneration(fmt.Errorf("size %d", size), "render")
	}
	fill, err := ParseColor(fillColor)
	if err != nil {
		return nil, customErrors.WrapGeneration(err, "fill color")
	}
	back, err := ParseColor(backColor)
	if err != nil {
		return nil, customErrors.WrapGeneration(err, "back color")
	}

	q, err := qrcode.New(content, r.level)
	if err != nil {
		return nil, customErrors.WrapGeneration(err, "encode")
	}
	q.ForegroundColor = fill
	q.BackgroundColor = back

	// negative size means pixels per module
	png, err := q.PNG(-size)
	if err != nil {
		return nil, customErrors.WrapGeneration(err, "png")
	}
	return png, nil
}

// ParseColor accepts CSS/SVG color names and #rgb / #rrggbb hex values.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("bad hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
