package mock

import (
	"errors"
	"sort"

	"github.com/codr1/nyxxdocs/internal/profiles"
	"github.com/codr1/nyxxdocs/internal/templates/components/discord"
)

var (
	ErrUnknownExample = errors.New("unknown example")
	ErrNoSelectMenu   = errors.New("example has no select menu")
)

// Example is a named mock-up shown on the docs pages.
type Example struct {
	Name        string
	Title       string
	Description string
	Build       func() Conversation
}

var examples = map[string]Example{}

func register(e Example) {
	if _, dup := examples[e.Name]; dup {
		panic("mock: duplicate example " + e.Name)
	}
	examples[e.Name] = e
}

func init() {
	register(Example{
		Name:        "ping",
		Title:       "Prefix command",
		Description: "A text command answered with a plain message.",
		Build:       func() Conversation { return PingCommand(DefaultPrefix) },
	})
	register(Example{
		Name:        "ping-replied",
		Title:       "Prefix command with reply",
		Description: "The answer quotes the invoking message.",
		Build:       func() Conversation { return PingCommandReplied(DefaultPrefix, false) },
	})
	register(Example{
		Name:        "ping-replied-mention",
		Title:       "Reply that pings the author",
		Description: "A mentioning reply is highlighted.",
		Build:       func() Conversation { return PingCommandReplied(DefaultPrefix, true) },
	})
	register(Example{
		Name:        "ping-slash",
		Title:       "Slash command",
		Description: "An application command response.",
		Build:       func() Conversation { return PingCommandSlash("/ping", "Poong!", false) },
	})
	register(Example{
		Name:        "ping-slash-ephemeral",
		Title:       "Ephemeral slash command",
		Description: "A response only the invoking user can see.",
		Build:       func() Conversation { return PingCommandSlash("/ping", "Poong!", true) },
	})
	register(Example{
		Name:        "buttons",
		Title:       "Buttons",
		Description: "One button of each style.",
		Build: func() Conversation {
			return Compose(Props{
				CommandContent: "/buttons",
				Content:        "Pick a style",
				Buttons:        []string{"Primary", "Secondary", "Success", "Danger", "Docs"},
				Kinds: []discord.ButtonKind{
					discord.ButtonPrimary,
					discord.ButtonSecondary,
					discord.ButtonSuccess,
					discord.ButtonDanger,
					discord.ButtonLink,
				},
				URLs: []string{"", "", "", "", "https://nyxx.l7ssha.xyz"},
			})
		},
	})
	register(Example{
		Name:        "buttons-disabled",
		Title:       "Disabled buttons",
		Description: "Buttons that cannot be clicked.",
		Build: func() Conversation {
			return Compose(Props{
				CommandContent: "/buttons",
				Content:        "Nothing to do here",
				Buttons:        []string{"Primary", "Danger"},
				Kinds:          []discord.ButtonKind{discord.ButtonPrimary, discord.ButtonDanger},
				Disabled:       []bool{true, true},
			})
		},
	})
	register(Example{
		Name:        "select-menu",
		Title:       "Select menu",
		Description: "Click the menu to open it.",
		Build: func() Conversation {
			return ComposeSelect(Props{
				CommandContent: "/select",
				Content:        "Choose your language",
				MenuOptions:    []string{"Dart", "Go", "Rust"},
			})
		},
	})
	register(Example{
		Name:        "select-menu-disabled",
		Title:       "Disabled select menu",
		Description: "A menu that never opens.",
		Build: func() Conversation {
			return ComposeSelect(Props{
				CommandContent: "/select",
				MenuOptions:    []string{"Dart", "Go", "Rust"},
				MenuDisabled:   true,
				Placeholder:    "Unavailable",
			})
		},
	})
	register(Example{
		Name:        "base-command",
		Title:       "Command with buttons",
		Description: "A slash command response with markdown and a button row.",
		Build: func() Conversation {
			return ComposeBaseCommand(BaseCommandProps{
				Props: Props{
					CommandContent: "/info",
					Content:        "**nyxx** is a Discord library for Dart.",
					Buttons:        []string{"Docs", "Source"},
					URLs:           []string{"https://nyxx.l7ssha.xyz", "https://github.com/nyxx-discord/nyxx"},
				},
				IsCommand: true,
			})
		},
	})
	register(Example{
		Name:        "embed",
		Title:       "Embed",
		Description: "A rich embed with fields and reactions.",
		Build: func() Conversation {
			return ComposeBaseCommand(BaseCommandProps{
				Props:     Props{CommandContent: "/about", Bot: profiles.MyCoolBot},
				IsCommand: true,
				Children: []Section{
					InteractionHeader{Profile: profiles.L7ssha, Content: "/about", Command: true},
					EmbedBlock{
						Props: discord.EmbedProps{
							Title:       "nyxx",
							URL:         "https://github.com/nyxx-discord/nyxx",
							BorderColor: "#5865f2",
							Footer:      "nyxx-discord",
						},
						Description: "A *complete*, robust and efficient wrapper around the Discord API.",
						Fields: []EmbedField{
							{Title: "Language", Value: "Dart", Inline: true},
							{Title: "License", Value: "Apache-2.0", Inline: true},
						},
					},
					ReactionRow{Reactions: []discord.ReactionProps{
						{Name: ":thumbsup:", Image: "https://twemoji.maxcdn.com/v/latest/72x72/1f44d.png", Count: 3, Active: true},
					}},
				},
			})
		},
	})
}

// Examples returns the registered example names, sorted.
func Examples() []string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Lookup(name string) (Example, error) {
	e, ok := examples[name]
	if !ok {
		return Example{}, ErrUnknownExample
	}
	return e, nil
}
