package colour

import "math"

// Blend tuning. The transparent branch keeps the result visibly tinted and
// translucent at the low end instead of collapsing to pure white at zero
// opacity.
const (
	blendTintFloor    = 0.10
	blendOpacityFloor = 0.10
	blendOpacitySpan  = 0.80
)

// White is the blend origin for intensity mixing.
var White = RGB{R: 255, G: 255, B: 255}

// Blend computes the displayed colour and opacity for a base colour at the
// given intensity (0-100). With transparency disabled the result is fully
// opaque and the mix runs the whole way from white to the base colour. With
// transparency enabled the tint never drops below blendTintFloor and the
// opacity scales linearly upward from blendOpacityFloor.
//
// Intensity 100 always yields the base colour; higher intensity never
// lowers the opacity.
func Blend(base RGB, transparency bool, intensity int) (RGB, float64) {
	t := clamp(float64(intensity)/100.0, 0, 1)

	mixT := t
	opacity := 1.0
	if transparency {
		mixT = blendTintFloor + (1.0-blendTintFloor)*t
		opacity = blendOpacityFloor + blendOpacitySpan*t
	}

	return Mix(White, base, mixT), opacity
}

// OpacityPercent converts a unit opacity to a rounded percentage in [0, 100].
func OpacityPercent(opacity float64) int {
	return int(math.Round(clamp(opacity, 0, 1) * 100))
}
