package recolour

import (
	"testing"

	"github.com/aeroglass/aerotint/internal/colour"
)

func TestMapColourMarkerMapsToTarget(t *testing.T) {
	marker := mustParse(t, "#e2da9d")
	targets := []string{"#396cb6", "#ce4444", "#8bc483", "#939393"}
	for _, hex := range targets {
		target := mustParse(t, hex)
		got := MapColour(marker, marker, target)
		if diff := maxChannelDiff(got, target); diff > 1 {
			t.Errorf("MapColour(marker, marker, %s) = %s, want the target (diff %d)", hex, got.Hex(), diff)
		}
	}
}

func TestMapColourPreservesLightnessOffset(t *testing.T) {
	marker := mustParse(t, "#e2da9d")
	src := mustParse(t, "#d8cf8a") // a slightly darker shade of the marker
	target := mustParse(t, "#396cb6")

	got := MapColour(src, marker, target)

	_, srcL, _ := colour.ToHLS(src)
	_, mrkL, _ := colour.ToHLS(marker)
	_, tgtL, _ := colour.ToHLS(target)
	_, gotL, _ := colour.ToHLS(got)

	wantL := tgtL + (srcL - mrkL)
	if d := gotL - wantL; d > 0.01 || d < -0.01 {
		t.Errorf("mapped lightness = %v, want %v (additive offset)", gotL, wantL)
	}
	if gotL >= tgtL {
		t.Errorf("darker-than-marker source must map darker than target: %v >= %v", gotL, tgtL)
	}
}

func TestMapColourSaturationRatio(t *testing.T) {
	marker := mustParse(t, "#e2da9d")
	target := mustParse(t, "#396cb6")
	// A paler shade of the marker must yield a paler shade of the target.
	h, l, mrkS := colour.ToHLS(marker)
	pale := colour.FromHLS(h, l, mrkS/2)

	got := MapColour(pale, marker, target)
	_, _, gotS := colour.ToHLS(got)
	_, _, tgtS := colour.ToHLS(target)

	if gotS >= tgtS {
		t.Errorf("paler-than-marker source must map paler than target: %v >= %v", gotS, tgtS)
	}
}

func TestMapColourGreyMarkerPassesSourceSaturation(t *testing.T) {
	grey := mustParse(t, "#808080")
	src := mustParse(t, "#8bc483")
	target := mustParse(t, "#396cb6")

	got := MapColour(src, grey, target)
	_, _, srcS := colour.ToHLS(src)
	_, _, gotS := colour.ToHLS(got)

	if d := gotS - srcS; d > 0.02 || d < -0.02 {
		t.Errorf("grey marker must pass source saturation through: got %v, want %v", gotS, srcS)
	}
}

func TestMapColourGreySourceUsesTargetHue(t *testing.T) {
	marker := mustParse(t, "#e2da9d")
	grey := mustParse(t, "#939393")
	target := mustParse(t, "#396cb6")

	got := MapColour(grey, marker, target)
	tgtH, _, _ := colour.ToHLS(target)
	gotH, _, gotS := colour.ToHLS(got)

	// Near-gray results may normalize hue to 0; only compare when the
	// result is chromatic.
	if gotS > chromaticFloor {
		if d := colour.HueDeltaSigned(gotH, tgtH); d > 0.01 || d < -0.01 {
			t.Errorf("grey source must take the target hue: got %v, want %v", gotH, tgtH)
		}
	}
}

func TestBuildMapping(t *testing.T) {
	cfg := DefaultConfig()
	target := mustParse(t, "#396cb6")
	family := []FamilyColour{
		{Hex: "#e2da9d", Distance: 0},
		{Hex: "#d8cf8a", Distance: 0.04},
	}

	mapping := cfg.BuildMapping(family, target)
	if len(mapping) != 2 {
		t.Fatalf("mapping has %d entries, want 2", len(mapping))
	}
	if got := mapping["#e2da9d"]; got != target.Hex() {
		// Allow rounding wobble of one unit per channel.
		c := mustParse(t, got)
		if maxChannelDiff(c, target) > 1 {
			t.Errorf("marker maps to %s, want %s", got, target.Hex())
		}
	}
	if mapping["#d8cf8a"] == "" || mapping["#d8cf8a"] == "#d8cf8a" {
		t.Errorf("family member not remapped: %q", mapping["#d8cf8a"])
	}
}

func mustParse(t *testing.T, hex string) colour.RGB {
	t.Helper()
	c, err := colour.ParseHex(hex)
	if err != nil {
		t.Fatalf("ParseHex(%q): %v", hex, err)
	}
	return c
}

func maxChannelDiff(a, b colour.RGB) int {
	diff := func(x, y uint8) int {
		d := int(x) - int(y)
		if d < 0 {
			d = -d
		}
		return d
	}
	m := diff(a.R, b.R)
	if d := diff(a.G, b.G); d > m {
		m = d
	}
	if d := diff(a.B, b.B); d > m {
		m = d
	}
	return m
}
