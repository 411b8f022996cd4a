package glvizaux

import (
	"image/color"
)

// RGBAf converts c to normalized non-premultiplied float components for a vec4 uniform.
func RGBAf(c color.Color) [4]float32 {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return [4]float32{
		float32(nc.R) / 255,
		float32(nc.G) / 255,
		float32(nc.B) / 255,
		float32(nc.A) / 255,
	}
}
