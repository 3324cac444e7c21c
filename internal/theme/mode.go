// Package theme tracks the light/dark preference that the chat mock-ups are
// drawn with. The preference lives in a Store under Key; a Cell republishes
// it to every renderer that subscribed, and a Poller picks up writes made
// outside this process.
package theme

import "strings"

// Key is the persisted slot holding the preference.
const Key = "theme"

type Mode uint8

const (
	Dark Mode = iota
	Light
)

// DefaultMode applies when no prop, cookie or stored value says otherwise.
const DefaultMode = Dark

// ParseMode maps a stored value to a Mode. Only the exact value "light"
// selects Light; absence and anything else is Dark.
func ParseMode(raw string) Mode {
	if raw == "light" {
		return Light
	}
	return Dark
}

// ParseModeLoose is used for user input, where case and padding are forgiven.
func ParseModeLoose(raw string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "light":
		return Light, true
	case "dark":
		return Dark, true
	default:
		return Dark, false
	}
}

func FromBool(light bool) Mode {
	if light {
		return Light
	}
	return Dark
}

func (m Mode) IsLight() bool {
	return m == Light
}

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}
