package controller

import (
	"math"

	"github.com/boombuster2000/SkydimoAmbientLights/internal/frame"
)

// hsvToRGB converts hue in degrees (any non-negative value) with s and
// v in [0,1] to an 8-bit color using the six-sector model. Channels are
// truncated to match the device's reference output.
func hsvToRGB(h, s, v float64) frame.Color {
	sector := int(math.Floor(h/60)) % 6
	f := h/60 - math.Floor(h/60)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch sector {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return frame.Color{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
	}
}
