package recolour

import (
	"math"

	"github.com/aeroglass/aerotint/internal/colour"
)

// Saturation gates for the relative remap. chromaticFloor decides whether a
// hue offset is meaningful at all; ratioFloor decides whether the marker
// saturation can serve as a ratio denominator. They gate different steps
// and are deliberately distinct.
const (
	chromaticFloor = 0.05
	ratioFloor     = 0.02
)

// MapColour derives the analog of src near target, preserving src's tonal
// relationship to marker: hue as a signed circular offset, lightness as an
// additive offset, saturation as a multiplicative ratio. Offsets suit the
// circular and additive axes; saturation is bounded, where an offset would
// distort near the limits, so a ratio is used instead.
func MapColour(src, marker, target colour.RGB) colour.RGB {
	srcH, srcL, srcS := colour.ToHLS(src)
	mrkH, mrkL, mrkS := colour.ToHLS(marker)
	tgtH, tgtL, tgtS := colour.ToHLS(target)

	// Near-gray hues carry no information; only shift hue when both ends
	// are chromatic.
	h := tgtH
	if srcS > chromaticFloor && mrkS > chromaticFloor {
		h = math.Mod(tgtH+colour.HueDeltaSigned(srcH, mrkH), 1.0)
		if h < 0 {
			h += 1.0
		}
	}

	l := clamp01(tgtL + (srcL - mrkL))

	// At or below ratioFloor the ratio is undefined and the source
	// saturation passes through unchanged. The discontinuity at the
	// boundary is intentional.
	s := clamp01(srcS)
	if mrkS > ratioFloor {
		s = clamp01(tgtS * (srcS / mrkS))
	}

	return colour.FromHLS(h, l, s)
}

// BuildMapping applies MapColour to every family member, producing the
// old-hex to new-hex substitution table for one recolour run.
func (cfg Config) BuildMapping(family []FamilyColour, target colour.RGB) map[string]string {
	mapping := make(map[string]string, len(family))
	for _, fc := range family {
		src, err := colour.ParseHex(fc.Hex)
		if err != nil {
			continue
		}
		mapping[fc.Hex] = MapColour(src, cfg.Marker, target).Hex()
	}
	return mapping
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
