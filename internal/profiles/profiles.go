// Package profiles holds the display metadata attached to mock message
// authors. The table is fixed at build time and never mutated.
package profiles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codr1/nyxxdocs/internal/models"
)

const (
	L7ssha          = "l7ssha"
	HarryET         = "harryet"
	Abitofevrything = "abitofevrything"
	MyCoolBot       = "mycoolbot"
	Rapougnac       = "rapougnac"
)

type Profile struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Avatar    string `json:"avatar"`
	RoleColor string `json:"roleColor,omitempty"`
	Bot       bool   `json:"bot,omitempty"`
}

// Named avatars map to Discord's default embed avatars.
var namedAvatars = map[string]string{
	"blue":    "https://cdn.discordapp.com/embed/avatars/0.png",
	"gray":    "https://cdn.discordapp.com/embed/avatars/1.png",
	"green":   "https://cdn.discordapp.com/embed/avatars/2.png",
	"orange":  "https://cdn.discordapp.com/embed/avatars/3.png",
	"red":     "https://cdn.discordapp.com/embed/avatars/4.png",
	"default": "https://cdn.discordapp.com/embed/avatars/0.png",
}

var table = map[string]Profile{
	L7ssha: {
		Author:    "l7ssha",
		Avatar:    "https://i.imgur.com/KZmUYEt.png",
		RoleColor: "#5865f2",
	},
	HarryET: {
		Author:    "HarryET",
		Avatar:    "https://github.com/HarryET.png",
		RoleColor: "#f2b749",
	},
	Abitofevrything: {
		Author:    "Abitofevrything",
		Avatar:    "https://github.com/abitofevrything.png",
		RoleColor: "#48bebe",
	},
	MyCoolBot: {
		Author:    "My Cool Bot",
		Avatar:    "red",
		RoleColor: "rgb(235, 69, 158)",
		Bot:       true,
	},
	Rapougnac: {
		Author:    "Rapougnac",
		Avatar:    "https://github.com/Rapougnac.png",
		RoleColor: "#f35959",
	},
}

func init() {
	for id, p := range table {
		p.ID = id
		if err := p.Validate(); err != nil {
			panic(fmt.Sprintf("profiles: invalid built-in profile %q: %v", id, err))
		}
		table[id] = p
	}
}

// Lookup returns a copy of the profile registered under id.
func Lookup(id string) (Profile, bool) {
	p, ok := table[id]
	return p, ok
}

// Resolve never fails: unknown ids become a plain author with the default
// avatar, the way the chat renderer treats a missing profile.
func Resolve(id string) Profile {
	if p, ok := table[id]; ok {
		return p
	}
	return Profile{ID: id, Author: id, Avatar: "default"}
}

// All returns every profile ordered by id.
func All() []Profile {
	items := make([]Profile, 0, len(table))
	for _, p := range table {
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// AvatarURL expands named avatars; anything else is already a URL.
func (p Profile) AvatarURL() string {
	avatar := strings.TrimSpace(p.Avatar)
	if avatar == "" {
		return namedAvatars["default"]
	}
	if url, ok := namedAvatars[avatar]; ok {
		return url
	}
	return avatar
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Author) == "" {
		return fmt.Errorf("author is required")
	}
	if p.RoleColor != "" && !models.IsCSSColor(p.RoleColor) {
		return fmt.Errorf("role color %q must be a hex or rgb() color", p.RoleColor)
	}
	return nil
}
