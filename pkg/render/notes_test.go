package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotesRenderer(t *testing.T) {
	notes := NewNotesRenderer()

	t.Run("markdown", func(t *testing.T) {
		out := string(notes.Render("rotated **today**"))
		assert.Contains(t, out, "<strong>today</strong>")
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, notes.Render("   "))
	})

	t.Run("script element", func(t *testing.T) {
		out := string(notes.Render("ok <script>alert(1)</script>"))
		assert.NotContains(t, out, "<script")
		assert.NotContains(t, out, "alert(1)")
	})

	t.Run("event handler attribute", func(t *testing.T) {
		out := string(notes.Render(`<img src="shot.png" onerror="alert(1)">`))
		assert.Contains(t, out, "shot.png")
		assert.NotContains(t, out, "onerror")
		assert.NotContains(t, out, "alert(1)")
	})

	t.Run("javascript link", func(t *testing.T) {
		out := string(notes.Render("[click](javascript:alert(1))"))
		assert.NotContains(t, out, "javascript:")
	})
}
