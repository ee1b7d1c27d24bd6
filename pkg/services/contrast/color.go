package contrast

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// RGB is an opaque sRGB color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses a CSS color value. Alpha channels are accepted and
// dropped, except that fully transparent colors report false along with
// keywords that cannot be resolved statically (currentcolor, inherit, var()).
func ParseColor(value string) (RGB, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))
	if v == "" {
		return RGB{}, false
	}

	c, err := csscolorparser.Parse(v)
	if err != nil {
		return RGB{}, false
	}
	r, g, b, a := c.RGBA255()
	if a == 0 {
		return RGB{}, false
	}
	return RGB{r, g, b}, true
}
