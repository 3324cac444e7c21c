package layouts

import (
	"fmt"
	"strings"

	"github.com/codr1/nyxxdocs/internal/models"
	"github.com/codr1/nyxxdocs/internal/theme"
)

// themeCSSVars emits the palette for mode as :root custom properties. A
// palette that fails validation falls back to the built-in one.
func themeCSSVars(mode theme.Mode, palette *models.Palette) string {
	fallback := models.PaletteFor(mode.IsLight())
	p := fallback
	if palette != nil && palette.Validate() == nil {
		p = *palette
	}

	return fmt.Sprintf(
		":root{--theme-background:%s;--theme-secondary:%s;--theme-text:%s;--theme-muted:%s;--theme-accent:%s;--theme-highlight:%s;}",
		colorOrDefault(p.Background, fallback.Background),
		colorOrDefault(p.Secondary, fallback.Secondary),
		colorOrDefault(p.Text, fallback.Text),
		colorOrDefault(p.Muted, fallback.Muted),
		colorOrDefault(p.Accent, fallback.Accent),
		colorOrDefault(p.Highlight, fallback.Highlight),
	)
}

func colorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !models.IsHexColor(trimmed) {
		return fallback
	}
	return trimmed
}
