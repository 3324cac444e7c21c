package mock

import (
	"github.com/codr1/nyxxdocs/internal/profiles"
	"github.com/codr1/nyxxdocs/internal/templates/components/discord"
)

const (
	DefaultPlaceholder = "Make a selection"
	DefaultPrefix      = "!"
)

// Props is the parameter bag every composer reads. Button fields are
// parallel slices aligned by index; see ButtonAt.
type Props struct {
	// Light forces the theme; nil leaves it to the viewer's preference.
	Light          *bool
	Ephemeral      bool
	CommandContent string
	Content        string

	Buttons  []string
	Kinds    []discord.ButtonKind
	URLs     []string
	Disabled []bool

	MenuOptions  []string
	MenuDisabled bool
	Placeholder  string

	// Author invokes the command; Bot answers it.
	Author string
	Bot    string
}

// DefaultProps lists the value used for every field left empty:
//
//	Light        nil (resolved from the viewer)
//	Ephemeral    false
//	Kinds        discord.DefaultButtonKind per missing index
//	URLs         none per missing index
//	Disabled     false per missing index
//	MenuDisabled false
//	Placeholder  DefaultPlaceholder
//	Author       profiles.L7ssha
//	Bot          profiles.MyCoolBot
func DefaultProps() Props {
	return Props{
		Placeholder: DefaultPlaceholder,
		Author:      profiles.L7ssha,
		Bot:         profiles.MyCoolBot,
	}
}

func (p Props) withDefaults() Props {
	defaults := DefaultProps()
	if p.Placeholder == "" {
		p.Placeholder = defaults.Placeholder
	}
	if p.Author == "" {
		p.Author = defaults.Author
	}
	if p.Bot == "" {
		p.Bot = defaults.Bot
	}
	return p
}

// ButtonAt aligns the parallel button slices at index i. A slice shorter
// than i+1 contributes its zero value, which rendering treats as the
// default: secondary kind, no URL, enabled.
func ButtonAt(p Props, i int) ButtonSpec {
	spec := ButtonSpec{}
	if i >= 0 && i < len(p.Buttons) {
		spec.Label = p.Buttons[i]
	}
	if i >= 0 && i < len(p.Kinds) {
		spec.Kind = p.Kinds[i]
	}
	if i >= 0 && i < len(p.URLs) {
		spec.URL = p.URLs[i]
	}
	if i >= 0 && i < len(p.Disabled) {
		spec.Disabled = p.Disabled[i]
	}
	return spec
}

// buttonRow returns nil when there are no labels.
func buttonRow(p Props) Section {
	if len(p.Buttons) == 0 {
		return nil
	}
	row := ButtonRow{Buttons: make([]ButtonSpec, len(p.Buttons))}
	for i := range p.Buttons {
		row.Buttons[i] = ButtonAt(p, i)
	}
	return row
}
