// Package mock composes the documentation's chat mock-ups. Composition
// produces a Conversation made of plain Section values; rendering through
// the discord primitives is a separate step, so what a composer emits can
// be checked without looking at markup.
package mock

import "github.com/codr1/nyxxdocs/internal/templates/components/discord"

// Section is one renderable part of a message: Body, InteractionHeader,
// ButtonRow, SelectMenu, EmbedBlock or ReactionRow.
type Section interface {
	isSection()
}

// Body is the message text.
type Body struct {
	Text      string
	Markdown  bool
	Highlight bool
}

// InteractionHeader is the banner above a reply or slash-command response.
type InteractionHeader struct {
	Profile   string
	Content   string
	Command   bool
	Ephemeral bool
	Highlight bool
}

type ButtonSpec struct {
	Label    string
	Kind     discord.ButtonKind
	URL      string
	Disabled bool
}

type ButtonRow struct {
	Buttons []ButtonSpec
}

type EmbedField struct {
	Title  string
	Value  string
	Inline bool
}

type EmbedBlock struct {
	Props       discord.EmbedProps
	Description string
	Fields      []EmbedField
}

type ReactionRow struct {
	Reactions []discord.ReactionProps
}

func (Body) isSection()              {}
func (InteractionHeader) isSection() {}
func (ButtonRow) isSection()         {}
func (*SelectMenu) isSection()       {}
func (EmbedBlock) isSection()        {}
func (ReactionRow) isSection()       {}

type TurnRole uint8

const (
	// Invocation is the standalone user message a prefix command starts with.
	Invocation TurnRole = iota
	// Response is the bot's message.
	Response
)

// Turn is one message in the conversation.
type Turn struct {
	Role     TurnRole
	Profile  string
	Sections []Section
}

// Conversation is the full mock-up. Light overrides the resolved theme when
// set.
type Conversation struct {
	Light *bool
	Turns []Turn
}

// Invocations returns the standalone user messages.
func (c Conversation) Invocations() []Turn {
	var turns []Turn
	for _, turn := range c.Turns {
		if turn.Role == Invocation {
			turns = append(turns, turn)
		}
	}
	return turns
}

// Response returns the bot turn, if any.
func (c Conversation) Response() (Turn, bool) {
	for _, turn := range c.Turns {
		if turn.Role == Response {
			return turn, true
		}
	}
	return Turn{}, false
}

// SectionsOf collects every section of type T across all turns, in order.
func SectionsOf[T Section](c Conversation) []T {
	var out []T
	for _, turn := range c.Turns {
		for _, section := range turn.Sections {
			if typed, ok := section.(T); ok {
				out = append(out, typed)
			}
		}
	}
	return out
}

// SelectMenuOf returns the first select menu in the conversation.
func SelectMenuOf(c Conversation) (*SelectMenu, bool) {
	menus := SectionsOf[*SelectMenu](c)
	if len(menus) == 0 {
		return nil, false
	}
	return menus[0], true
}
