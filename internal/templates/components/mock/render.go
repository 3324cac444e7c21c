package mock

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/codr1/nyxxdocs/internal/templates/components/discord"
	"github.com/codr1/nyxxdocs/internal/theme"
)

// RenderOptions carries what rendering needs beyond the conversation.
type RenderOptions struct {
	Mode theme.Mode
	// Example names the registered example being drawn. With ToggleURL it
	// lets select menus toggle through htmx.
	Example   string
	ToggleURL string
}

// Mode resolves the conversation's theme: its own Light prop first, then
// the environment.
func (c Conversation) Mode(ctx context.Context, resolver theme.Resolver, env theme.Environment) theme.Mode {
	return resolver.Resolve(ctx, c.Light, env)
}

// Component renders the conversation inside a themed message list. The
// conversation's own Light prop beats opts.Mode.
func (c Conversation) Component(opts RenderOptions) templ.Component {
	if c.Light != nil {
		opts.Mode = theme.FromBool(*c.Light)
	}
	light := opts.Mode.IsLight()
	turns := make([]templ.Component, 0, len(c.Turns))
	for _, turn := range c.Turns {
		turns = append(turns, turnComponent(turn, light, opts))
	}
	return discord.Messages(discord.MessagesProps{Light: light}, turns...)
}

func turnComponent(turn Turn, light bool, opts RenderOptions) templ.Component {
	var headers, body []templ.Component
	highlight := false
	for _, section := range turn.Sections {
		switch s := section.(type) {
		case InteractionHeader:
			headers = append(headers, discord.Interaction(discord.InteractionProps{
				Author:    discord.Author{Profile: s.Profile},
				Command:   s.Command,
				Ephemeral: s.Ephemeral,
				Highlight: s.Highlight,
			}, s.Content))
		case Body:
			if s.Highlight {
				highlight = true
			}
			if s.Markdown {
				body = append(body, discord.Markdown(discord.MarkdownProps{Highlight: s.Highlight}, s.Text))
			} else {
				body = append(body, discord.Text(s.Text))
			}
		case ButtonRow:
			buttons := make([]templ.Component, 0, len(s.Buttons))
			for _, b := range s.Buttons {
				buttons = append(buttons, discord.Button(discord.ButtonProps{
					Kind:     b.Kind,
					URL:      b.URL,
					Disabled: b.Disabled,
				}, b.Label))
			}
			body = append(body, discord.Buttons(buttons...))
		case *SelectMenu:
			body = append(body, SelectMenuComponent(s, light, toggleEndpoint(opts, s)))
		case EmbedBlock:
			body = append(body, embedComponent(s))
		case ReactionRow:
			reactions := make([]templ.Component, 0, len(s.Reactions))
			for _, r := range s.Reactions {
				reactions = append(reactions, discord.Reaction(r))
			}
			body = append(body, discord.Reactions(reactions...))
		}
	}

	props := discord.MessageProps{
		Author:    discord.Author{Profile: turn.Profile},
		Highlight: highlight,
	}
	if len(headers) > 0 {
		props.Interaction = discord.Fragment(headers...)
	}
	return discord.Message(props, body...)
}

func embedComponent(block EmbedBlock) templ.Component {
	children := []templ.Component{discord.Markdown(discord.MarkdownProps{}, block.Description)}
	if len(block.Fields) > 0 {
		fields := make([]templ.Component, 0, len(block.Fields))
		for _, f := range block.Fields {
			fields = append(fields, discord.EmbedField(discord.EmbedFieldProps{Title: f.Title, Inline: f.Inline}, discord.Text(f.Value)))
		}
		children = append(children, discord.EmbedFields(fields...))
	}
	return discord.Embed(block.Props, children...)
}

// toggleEndpoint is empty for static renders and disabled menus.
func toggleEndpoint(opts RenderOptions, menu *SelectMenu) string {
	if opts.ToggleURL == "" || opts.Example == "" || menu.Disabled {
		return ""
	}
	query := url.Values{}
	query.Set("example", opts.Example)
	query.Set("open", fmt.Sprint(menu.State == Open))
	query.Set("theme", opts.Mode.String())
	return opts.ToggleURL + "?" + query.Encode()
}

// SelectMenuComponent renders the dropdown. With a toggleURL the
// placeholder posts to it and the response replaces the whole menu.
func SelectMenuComponent(menu *SelectMenu, light bool, toggleURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		classes := templ.Classes("discord-multiselect",
			templ.KV("discord-light-theme", light),
			templ.KV("discord-multiselect-disabled", menu.Disabled),
		).String()

		write := func(s string) error {
			_, err := io.WriteString(w, s)
			return err
		}

		if err := write(`<div class="` + templ.EscapeString(classes) + `" data-state="` + menu.State.String() + `"><div class="discord-text"><span class="discord-placeholder"`); err != nil {
			return err
		}
		if toggleURL != "" {
			attrs := fmt.Sprintf(` hx-post="%s" hx-target="closest .discord-multiselect" hx-swap="outerHTML"`, templ.EscapeString(toggleURL))
			if err := write(attrs); err != nil {
				return err
			}
		}
		if err := write(">" + templ.EscapeString(menu.Placeholder) + "</span>"); err != nil {
			return err
		}
		if err := discord.Chevron(menu.PanelVisible()).Render(ctx, w); err != nil {
			return err
		}
		if err := write("</div>"); err != nil {
			return err
		}

		if rows := menu.Rows(); rows != nil {
			if err := write(`<div class="discord-multiselect-options">`); err != nil {
				return err
			}
			for _, option := range rows {
				if err := write(`<div class="discord-multiselect-option">` + templ.EscapeString(option) + `</div>`); err != nil {
					return err
				}
			}
			if err := write("</div>"); err != nil {
				return err
			}
		}
		return write("</div>")
	})
}
