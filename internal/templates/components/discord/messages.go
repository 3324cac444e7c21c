package discord

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/nyxxdocs/internal/models"
	"github.com/codr1/nyxxdocs/internal/profiles"
)

const defaultTimestamp = "Today"

type MessagesProps struct {
	Light       bool
	CompactMode bool
}

// Messages is the chat container; it carries the light/dark class.
func Messages(props MessagesProps, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<div")
		h.class("discord-messages",
			templ.KV("discord-light-theme", props.Light),
			templ.KV("discord-compact-mode", props.CompactMode),
		)
		h.raw(">")
		h.render(children...)
		h.raw("</div>")
		return h.err
	})
}

// Author is the display identity shared by messages and interactions.
// Explicit fields override the named profile.
type Author struct {
	Profile   string
	Author    string
	Avatar    string
	RoleColor string
	Bot       bool
}

func (a Author) resolve() profiles.Profile {
	p := profiles.Resolve(a.Profile)
	if a.Profile == "" {
		p = profiles.Profile{Author: "User", Avatar: "default"}
	}
	if a.Author != "" {
		p.Author = a.Author
	}
	if a.Avatar != "" {
		p.Avatar = a.Avatar
	}
	if a.RoleColor != "" {
		p.RoleColor = a.RoleColor
	}
	if a.Bot {
		p.Bot = true
	}
	return p
}

type MessageProps struct {
	Author
	Edited    bool
	Highlight bool
	Timestamp string
	// Interaction fills the header slot above the message body.
	Interaction templ.Component
}

func Message(props MessageProps, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := props.resolve()
		timestamp := props.Timestamp
		if timestamp == "" {
			timestamp = defaultTimestamp
		}

		h := newHTMLWriter(ctx, w)
		h.raw("<div")
		h.class("discord-message", templ.KV("discord-highlight-mention", props.Highlight))
		h.raw(">")
		if props.Interaction != nil {
			h.raw(`<div class="discord-message-interactions">`)
			h.render(props.Interaction)
			h.raw("</div>")
		}
		h.raw(`<div class="discord-message-inner"><div class="discord-author-avatar"><img`)
		h.url("src", p.AvatarURL())
		h.attr("alt", p.Author)
		h.raw(`></div><div class="discord-message-content">`)
		writeAuthorInfo(h, "discord-author-info", p)
		h.raw(`<span class="discord-message-timestamp">`)
		h.text(timestamp)
		h.raw(`</span><div class="discord-message-body">`)
		h.render(children...)
		if props.Edited {
			h.raw(`<span class="discord-message-edited">(edited)</span>`)
		}
		h.raw("</div></div></div></div>")
		return h.err
	})
}

func writeAuthorInfo(h *htmlWriter, class string, p profiles.Profile) {
	h.raw("<span")
	h.class(class)
	h.raw(`><span class="discord-author-username"`)
	if style := roleColorStyle(p.RoleColor); style != "" {
		h.attr("style", style)
	}
	h.raw(">")
	h.text(p.Author)
	h.raw("</span>")
	if p.Bot {
		h.raw(`<span class="discord-application-tag">Bot</span>`)
	}
	h.raw("</span>")
}

// roleColorStyle only emits colors that parse, so props cannot inject CSS.
func roleColorStyle(color string) string {
	color = strings.TrimSpace(color)
	if color == "" || !models.IsCSSColor(color) {
		return ""
	}
	return "color: " + color
}

type InteractionProps struct {
	Author
	Command   bool
	Ephemeral bool
	Highlight bool
	Edited    bool
}

// Interaction is the header above a reply or slash-command response.
func Interaction(props InteractionProps, content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := props.resolve()

		h := newHTMLWriter(ctx, w)
		h.raw("<div")
		h.class("discord-interaction",
			templ.KV("discord-interaction-highlight", props.Highlight),
			templ.KV("discord-interaction-ephemeral", props.Ephemeral),
		)
		if props.Command {
			h.attr("data-command", "true")
		}
		h.raw(`><img class="discord-interaction-author-avatar"`)
		h.url("src", p.AvatarURL())
		h.attr("alt", p.Author)
		h.raw(">")
		writeAuthorInfo(h, "discord-interaction-author-info", p)
		if props.Command {
			h.raw(`<span class="discord-interaction-command">used <span class="discord-interaction-command-name">`)
			h.text(content)
			h.raw("</span></span>")
		} else {
			h.raw(`<span class="discord-interaction-content">`)
			h.text(content)
			h.raw("</span>")
		}
		if props.Edited {
			h.raw(`<span class="discord-message-edited">(edited)</span>`)
		}
		if props.Ephemeral {
			h.raw(`<span class="discord-interaction-ephemeral-notice">Only you can see this</span>`)
		}
		h.raw("</div>")
		return h.err
	})
}

type MentionType string

const (
	MentionUser    MentionType = "user"
	MentionChannel MentionType = "channel"
	MentionRole    MentionType = "role"
)

type MentionProps struct {
	Profile   string
	Type      MentionType
	Highlight bool
	RoleColor string
}

func Mention(props MentionProps, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		prefix := "@"
		if props.Type == MentionChannel {
			prefix = "#"
		}
		if name == "" && props.Profile != "" {
			name = profiles.Resolve(props.Profile).Author
		}

		h := newHTMLWriter(ctx, w)
		h.raw("<span")
		h.class("discord-mention",
			templ.KV("discord-channel-mention", props.Type == MentionChannel),
			templ.KV("discord-role-mention", props.Type == MentionRole),
			templ.KV("discord-mention-highlight", props.Highlight),
		)
		if props.Type == MentionRole {
			if style := roleColorStyle(props.RoleColor); style != "" {
				h.attr("style", style)
			}
		}
		h.raw(">")
		h.text(prefix + name)
		h.raw("</span>")
		return h.err
	})
}
