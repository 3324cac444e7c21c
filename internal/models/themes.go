package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Body text needs AA normal-text contrast; muted labels and accents back
// timestamps and buttons, so they use the large-text threshold.
const wcagAABodyContrastRatio = 4.5
const wcagAAMinContrastRatio = 3.0
const wcagAAContrastNote = "WCAG AA for large text/UI components"
const darkTextColor = "#000000"
const lightTextColor = "#FFFFFF"

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
var rgbColorRegex = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// IsCSSColor accepts the two color notations used by author role colors:
// 6-digit hex and rgb(r, g, b) with channels in 0..255.
func IsCSSColor(value string) bool {
	trimmed := strings.TrimSpace(value)
	if IsHexColor(trimmed) {
		return true
	}
	matches := rgbColorRegex.FindStringSubmatch(trimmed)
	if matches == nil {
		return false
	}
	for _, channel := range matches[1:] {
		n, err := strconv.Atoi(channel)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// Palette is the color set a mock chat is drawn with.
type Palette struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Secondary  string `json:"secondary"`
	Text       string `json:"text"`
	Muted      string `json:"muted"`
	Accent     string `json:"accent"`
	Highlight  string `json:"highlight"`
}

func DarkPalette() Palette {
	return Palette{
		Name:       "dark",
		Background: "#313338",
		Secondary:  "#2b2d31",
		Text:       "#dbdee1",
		Muted:      "#949ba4",
		Accent:     "#5865f2",
		Highlight:  "#444037",
	}
}

func LightPalette() Palette {
	return Palette{
		Name:       "light",
		Background: "#ffffff",
		Secondary:  "#f2f3f5",
		Text:       "#313338",
		Muted:      "#5c5e66",
		Accent:     "#5865f2",
		Highlight:  "#fef8e4",
	}
}

func PaletteFor(light bool) Palette {
	if light {
		return LightPalette()
	}
	return DarkPalette()
}

func (p Palette) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}

	colorFields := []struct {
		name  string
		value string
	}{
		{"background", p.Background},
		{"secondary", p.Secondary},
		{"text", p.Text},
		{"muted", p.Muted},
		{"accent", p.Accent},
		{"highlight", p.Highlight},
	}
	for _, field := range colorFields {
		if !hexColorRegex.MatchString(field.value) {
			return fmt.Errorf("%s must be a 6-digit hex color like #AABBCC", field.name)
		}
	}

	if err := requireContrast("text", p.Text, p.Background, wcagAABodyContrastRatio); err != nil {
		return err
	}
	if err := requireContrast("muted", p.Muted, p.Background, wcagAAMinContrastRatio); err != nil {
		return err
	}
	return validateTextContrast("accent", p.Accent)
}

func requireContrast(colorName, foreground, background string, minimum float64) error {
	ratio, err := contrastRatio(foreground, background)
	if err != nil {
		return err
	}
	if ratio < minimum {
		return fmt.Errorf("%s must have contrast ratio >= %.1f against the background; got %.2f", colorName, minimum, ratio)
	}
	return nil
}

func validateTextContrast(colorName, backgroundColor string) error {
	textColors := []string{darkTextColor, lightTextColor}
	bestRatio := 0.0
	bestText := ""
	for _, textColor := range textColors {
		ratio, err := contrastRatio(textColor, backgroundColor)
		if err != nil {
			return err
		}
		if ratio > bestRatio {
			bestRatio = ratio
			bestText = textColor
		}
	}
	if bestRatio < wcagAAMinContrastRatio {
		return fmt.Errorf(
			"%s must have contrast ratio >= %.1f with #000000 or #FFFFFF text (%s); best is %s at %.2f",
			colorName,
			wcagAAMinContrastRatio,
			wcagAAContrastNote,
			bestText,
			bestRatio,
		)
	}
	return nil
}

func contrastRatio(textColor, backgroundColor string) (float64, error) {
	textL, err := relativeLuminance(textColor)
	if err != nil {
		return 0, err
	}
	backgroundL, err := relativeLuminance(backgroundColor)
	if err != nil {
		return 0, err
	}
	lightest := math.Max(textL, backgroundL)
	darkest := math.Min(textL, backgroundL)
	return (lightest + 0.05) / (darkest + 0.05), nil
}

func relativeLuminance(hexColor string) (float64, error) {
	r, g, b, err := parseHexColor(hexColor)
	if err != nil {
		return 0, err
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b), nil
}

func parseHexColor(hexColor string) (float64, float64, float64, error) {
	if !hexColorRegex.MatchString(hexColor) {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	value, err := strconv.ParseUint(strings.TrimPrefix(hexColor, "#"), 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	r := float64((value >> 16) & 0xFF)
	g := float64((value >> 8) & 0xFF)
	b := float64(value & 0xFF)

	return r / 255, g / 255, b / 255, nil
}

func srgbToLinear(value float64) float64 {
	if value <= 0.03928 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}
