package contrast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected RGB
		ok       bool
	}{
		{"#000", RGB{0, 0, 0}, true},
		{"#FFF", RGB{255, 255, 255}, true},
		{"#f00a", RGB{255, 0, 0}, true},
		{"#336699", RGB{0x33, 0x66, 0x99}, true},
		{"#33669980", RGB{0x33, 0x66, 0x99}, true},
		{"rgb(10, 20, 30)", RGB{10, 20, 30}, true},
		{"rgba(10,20,30,0.5)", RGB{10, 20, 30}, true},
		{"rgb(100%, 0%, 50%)", RGB{255, 0, 128}, true},
		{"rgb(10 20 30 / 50%)", RGB{10, 20, 30}, true},
		{"hsl(0, 100%, 50%)", RGB{255, 0, 0}, true},
		{"hsla(120, 100%, 25%, 0.3)", RGB{0, 128, 0}, true},
		{"hsl(0, 0%, 50%)", RGB{128, 128, 128}, true},
		{"RebeccaPurple", RGB{0x66, 0x33, 0x99}, true},
		{"white !important", RGB{255, 255, 255}, true},
		{"transparent", RGB{}, false},
		{"rgba(0, 0, 0, 0)", RGB{}, false},
		{"currentColor", RGB{}, false},
		{"navy", RGB{0, 0, 0x80}, true},
		{"var(--fg)", RGB{}, false},
		{"inherit", RGB{}, false},
		{"#12", RGB{}, false},
		{"#zzzzzz", RGB{}, false},
		{"rgb(1, 2)", RGB{}, false},
		{"", RGB{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseColor(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestRatio(t *testing.T) {
	black := RGB{0, 0, 0}
	white := RGB{255, 255, 255}

	assert.InDelta(t, 21.0, Ratio(black, white), 0.001)
	assert.InDelta(t, 21.0, Ratio(white, black), 0.001)

	_, fails := Fails(black, white)
	assert.False(t, fails)

	grey := RGB{0x77, 0x77, 0x77}
	ratio, fails := Fails(grey, grey)
	assert.InDelta(t, 1.0, ratio, 0.0001)
	assert.True(t, fails)

	assert.InDelta(t, 0.0, RelativeLuminance(black), 1e-9)
	assert.InDelta(t, 1.0, RelativeLuminance(white), 1e-9)
}
