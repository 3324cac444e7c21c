package discord

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

type ButtonKind string

const (
	ButtonPrimary   ButtonKind = "primary"
	ButtonSecondary ButtonKind = "secondary"
	ButtonSuccess   ButtonKind = "success"
	ButtonDanger    ButtonKind = "danger"
	ButtonLink      ButtonKind = "link"
)

// DefaultButtonKind is used for an empty or unknown kind.
const DefaultButtonKind = ButtonSecondary

func ButtonKinds() []ButtonKind {
	return []ButtonKind{ButtonPrimary, ButtonSecondary, ButtonSuccess, ButtonDanger, ButtonLink}
}

func ParseButtonKind(raw string) (ButtonKind, bool) {
	kind := ButtonKind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return DefaultButtonKind, false
	}
	return kind, true
}

func (k ButtonKind) Valid() bool {
	for _, known := range ButtonKinds() {
		if k == known {
			return true
		}
	}
	return false
}

type ButtonProps struct {
	Kind     ButtonKind
	URL      string
	Disabled bool
	Image    string
}

// EffectiveKind applies the defaults: a URL makes a link button and an
// unknown kind falls back to DefaultButtonKind.
func (p ButtonProps) EffectiveKind() ButtonKind {
	if p.URL != "" {
		return ButtonLink
	}
	kind, _ := ParseButtonKind(string(p.Kind))
	return kind
}

const launchIcon = `<svg class="discord-button-launch" aria-hidden="false" width="16" height="16" viewBox="0 0 24 24"><path fill="currentColor" d="M10 5V3H5.375C4.06519 3 3 4.06519 3 5.375V18.625C3 19.936 4.06519 21 5.375 21H18.625C19.936 21 21 19.936 21 18.625V14H19V19H5V5H10Z"></path><path fill="currentColor" d="M21 2.99902H14V4.99902H17.586L9.29297 13.292L10.707 14.706L19 6.41302V9.99902H21V2.99902Z"></path></svg>`

func Button(props ButtonProps, label string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		kind := props.EffectiveKind()

		h := newHTMLWriter(ctx, w)
		tag := "div"
		if kind == ButtonLink && props.URL != "" && !props.Disabled {
			tag = "a"
		}
		h.raw("<" + tag)
		h.class("discord-button",
			"discord-button-"+string(kind),
			templ.KV("discord-button-disabled", props.Disabled),
			templ.KV("discord-button-hoverable", !props.Disabled),
		)
		if tag == "a" {
			h.url("href", props.URL)
			h.attr("target", "_blank")
			h.attr("rel", "noopener noreferrer")
		}
		if props.Disabled {
			h.attr("aria-disabled", "true")
		}
		h.raw(">")
		if props.Image != "" {
			h.raw(`<img class="discord-button-emoji" alt=""`)
			h.url("src", props.Image)
			h.raw(">")
		}
		h.text(label)
		if kind == ButtonLink {
			h.raw(launchIcon)
		}
		h.raw("</" + tag + ">")
		return h.err
	})
}

// Buttons is the action row holding buttons.
func Buttons(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="discord-buttons">`)
		h.render(children...)
		h.raw("</div>")
		return h.err
	})
}
