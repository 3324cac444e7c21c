package discord

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type EmbedProps struct {
	AuthorName  string
	AuthorIcon  string
	AuthorURL   string
	BorderColor string
	Title       string
	URL         string
	Image       string
	Thumbnail   string
	Footer      string
	FooterIcon  string
	Timestamp   string
}

func Embed(props EmbedProps, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="discord-embed"><div class="discord-embed-left-border"`)
		if style := borderColorStyle(props.BorderColor); style != "" {
			h.attr("style", style)
		}
		h.raw(`></div><div class="discord-embed-container"><div class="discord-embed-content"><div>`)

		if props.AuthorName != "" {
			h.raw(`<div class="discord-embed-author">`)
			if props.AuthorIcon != "" {
				h.raw(`<img class="discord-author-image" alt=""`)
				h.url("src", props.AuthorIcon)
				h.raw(">")
			}
			writeMaybeLink(h, props.AuthorURL, props.AuthorName)
			h.raw("</div>")
		}
		if props.Title != "" {
			h.raw(`<div class="discord-embed-title">`)
			writeMaybeLink(h, props.URL, props.Title)
			h.raw("</div>")
		}
		h.raw(`<div class="discord-embed-description">`)
		h.render(children...)
		h.raw("</div>")
		if props.Image != "" {
			h.raw(`<img class="discord-embed-image" alt=""`)
			h.url("src", props.Image)
			h.raw(">")
		}
		h.raw("</div>")
		if props.Thumbnail != "" {
			h.raw(`<img class="discord-embed-thumbnail" alt=""`)
			h.url("src", props.Thumbnail)
			h.raw(">")
		}
		h.raw("</div>")

		if props.Footer != "" || props.Timestamp != "" {
			h.raw(`<div class="discord-embed-footer">`)
			if props.FooterIcon != "" {
				h.raw(`<img class="discord-footer-image" alt=""`)
				h.url("src", props.FooterIcon)
				h.raw(">")
			}
			h.text(props.Footer)
			if props.Footer != "" && props.Timestamp != "" {
				h.raw(`<span class="discord-footer-separator">&bull;</span>`)
			}
			h.text(props.Timestamp)
			h.raw("</div>")
		}
		h.raw("</div></div>")
		return h.err
	})
}

func writeMaybeLink(h *htmlWriter, href, label string) {
	if href == "" {
		h.text(label)
		return
	}
	h.raw("<a")
	h.url("href", href)
	h.attr("target", "_blank")
	h.attr("rel", "noopener noreferrer")
	h.raw(">")
	h.text(label)
	h.raw("</a>")
}

func borderColorStyle(color string) string {
	style := roleColorStyle(color)
	if style == "" {
		return ""
	}
	return "background-" + style
}

func EmbedFields(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="discord-embed-fields">`)
		h.render(children...)
		h.raw("</div>")
		return h.err
	})
}

type EmbedFieldProps struct {
	Title  string
	Inline bool
}

func EmbedField(props EmbedFieldProps, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<div")
		h.class("discord-embed-field", templ.KV("discord-inline-field", props.Inline))
		h.raw(">")
		if props.Title != "" {
			h.raw(`<div class="discord-field-title">`)
			h.text(props.Title)
			h.raw("</div>")
		}
		h.render(children...)
		h.raw("</div>")
		return h.err
	})
}
