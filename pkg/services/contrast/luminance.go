package contrast

import "math"

// MinimumRatio is the WCAG AA threshold for normal text.
const MinimumRatio = 4.5

func channel(c uint8) float64 {
	v := float64(c) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// RelativeLuminance returns the WCAG relative luminance of c in [0, 1].
func RelativeLuminance(c RGB) float64 {
	return 0.2126*channel(c.R) + 0.7152*channel(c.G) + 0.0722*channel(c.B)
}

// Ratio returns the contrast ratio between two colors, in [1, 21].
func Ratio(a, b RGB) float64 {
	l1, l2 := RelativeLuminance(a), RelativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// Fails reports whether the pair is below MinimumRatio.
func Fails(fg, bg RGB) (float64, bool) {
	r := Ratio(fg, bg)
	return r, r < MinimumRatio
}
