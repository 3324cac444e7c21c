// svg_tools reports which chat palette color each fill and stroke in an
// SVG is closest to, so site artwork can be kept on-palette.
package main

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteMatch is one palette entry and its perceptual distance from the
// color being checked.
type PaletteMatch struct {
	Name     string
	ColorHex string
	Distance float64
}

// Keep in sync with internal/models/themes.go and the button styles.
var chatPalette = map[string]string{
	"dark.background":  "#313338",
	"dark.secondary":   "#2b2d31",
	"dark.text":        "#dbdee1",
	"dark.muted":       "#949ba4",
	"dark.highlight":   "#444037",
	"light.background": "#ffffff",
	"light.secondary":  "#f2f3f5",
	"light.text":       "#313338",
	"light.muted":      "#5c5e66",
	"light.highlight":  "#fef8e4",
	"accent":           "#5865f2",
	"button.success":   "#248046",
	"button.danger":    "#da373c",
	"button.secondary": "#6d6f78",
}

const topMatches = 3

// offPaletteDistance is the Lab distance above which a color is flagged.
const offPaletteDistance = 0.1

var colorRegex = regexp.MustCompile(`\b(fill|stroke)=["'](#[0-9a-fA-F]{6}|#[0-9a-fA-F]{3})["']`)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go <svg-file-path>...")
		os.Exit(1)
	}

	offPalette := 0
	for _, filePath := range os.Args[1:] {
		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filePath, err)
			os.Exit(1)
		}
		fmt.Printf("%s\n", filePath)
		offPalette += report(string(data))
	}

	if offPalette > 0 {
		fmt.Printf("%d color(s) are off-palette\n", offPalette)
		os.Exit(2)
	}
}

// report prints usage per attribute and returns how many distinct colors
// are off-palette.
func report(svg string) int {
	usage := make(map[string]map[string]int)
	for _, match := range colorRegex.FindAllStringSubmatch(svg, -1) {
		attribute, color := match[1], match[2]
		if _, exists := usage[attribute]; !exists {
			usage[attribute] = make(map[string]int)
		}
		usage[attribute][color]++
	}

	attributes := make([]string, 0, len(usage))
	for attr := range usage {
		attributes = append(attributes, attr)
	}
	sort.Strings(attributes)

	offPalette := 0
	for _, attr := range attributes {
		fmt.Printf("  %s:\n", attr)
		colors := usage[attr]
		names := make([]string, 0, len(colors))
		for color := range colors {
			names = append(names, color)
		}
		sort.Strings(names)

		for _, color := range names {
			fmt.Printf("    %s x%d\n", color, colors[color])
			matches, err := closestPaletteColors(color)
			if err != nil {
				fmt.Printf("      Error parsing color: %v\n", err)
				continue
			}
			for _, m := range matches {
				fmt.Printf("      %s (%s) %.4f\n", m.Name, m.ColorHex, m.Distance)
			}
			if matches[0].Distance > offPaletteDistance {
				offPalette++
			}
		}
	}
	return offPalette
}

func closestPaletteColors(color string) ([]PaletteMatch, error) {
	input, err := colorful.Hex(color)
	if err != nil {
		return nil, err
	}

	matches := make([]PaletteMatch, 0, len(chatPalette))
	for name, hex := range chatPalette {
		reference, _ := colorful.Hex(hex)
		matches = append(matches, PaletteMatch{Name: name, ColorHex: hex, Distance: input.DistanceLab(reference)})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance == matches[j].Distance {
			return matches[i].Name < matches[j].Name
		}
		return matches[i].Distance < matches[j].Distance
	})
	if len(matches) > topMatches {
		matches = matches[:topMatches]
	}
	return matches, nil
}
