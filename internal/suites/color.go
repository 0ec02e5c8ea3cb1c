package suites

import "github.com/assaylab/assay/internal/fixture"

// RGBA is an 8-bit-per-channel color value.
type RGBA struct {
	R, G, B, A uint8
}

// NewRGBA returns a color with the given channel values.
func NewRGBA(r, g, b, a uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Grayscale returns the mean of the color channels. Alpha is ignored.
func (p RGBA) Grayscale() uint8 {
	return uint8((int(p.R) + int(p.G) + int(p.B)) / 3)
}

// WithAlpha returns a copy of the color with the alpha channel replaced.
func (p RGBA) WithAlpha(a uint8) RGBA {
	p.A = a
	return p
}

// Opaque reports whether the color is fully opaque.
func (p RGBA) Opaque() bool {
	return p.A == 0xff
}

// Color builds the unit-fixture demo around RGBA. Each subtest evaluates
// all of its assertions into named booleans before combining them, so a
// single failing channel never hides the others.
func Color() *fixture.Case {
	c := fixture.New("color.go", "Color", fixture.Hooks{})

	c.AddSubTest("construction", func() bool {
		clr := NewRGBA(1, 2, 3, 4)
		okRed := fixture.AssertEquals(c, uint8(1), clr.R, "red")
		okGreen := fixture.AssertEquals(c, uint8(2), clr.G, "green")
		okBlue := fixture.AssertEquals(c, uint8(3), clr.B, "blue")
		okAlpha := fixture.AssertEquals(c, uint8(4), clr.A, "alpha")
		return okRed && okGreen && okBlue && okAlpha
	})

	c.AddSubTest("grayscale", func() bool {
		okMean := fixture.AssertEquals(c, uint8(2), NewRGBA(1, 2, 3, 255).Grayscale(), "mean of channels")
		okWhite := fixture.AssertEquals(c, uint8(255), NewRGBA(255, 255, 255, 255).Grayscale(), "white stays white")
		okRange := fixture.AssertBetween(c, uint8(0), uint8(255), NewRGBA(7, 200, 13, 0).Grayscale(), "gray in channel range")
		return okMean && okWhite && okRange
	})

	c.AddSubTest("with_alpha", func() bool {
		base := NewRGBA(10, 20, 30, 40)
		faded := base.WithAlpha(128)
		okAlpha := fixture.AssertEquals(c, uint8(128), faded.A, "replaced alpha")
		okRed := fixture.AssertEquals(c, base.R, faded.R, "red preserved")
		okGreen := fixture.AssertEquals(c, base.G, faded.G, "green preserved")
		okBlue := fixture.AssertEquals(c, base.B, faded.B, "blue preserved")
		okValue := fixture.AssertEquals(c, uint8(40), base.A, "original untouched")
		return okAlpha && okRed && okGreen && okBlue && okValue
	})

	c.AddSubTest("opacity", func() bool {
		okOpaque := fixture.AssertTrue(c, NewRGBA(0, 0, 0, 255).Opaque(), "alpha 255 is opaque")
		okTranslucent := fixture.AssertFalse(c, NewRGBA(0, 0, 0, 254).Opaque(), "alpha 254 is not opaque")
		return okOpaque && okTranslucent
	})

	return c
}
