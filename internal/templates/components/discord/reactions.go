package discord

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

type ReactionProps struct {
	Name   string
	Image  string
	Count  int
	Active bool
}

func Reaction(props ReactionProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		count := props.Count
		if count < 1 {
			count = 1
		}

		h := newHTMLWriter(ctx, w)
		h.raw("<div")
		h.class("discord-reaction", templ.KV("discord-reaction-active", props.Active))
		h.raw(`><img alt=""`)
		h.url("src", props.Image)
		if props.Name != "" {
			h.attr("title", props.Name)
		}
		h.raw(`><span class="discord-reaction-count">`)
		h.raw(strconv.Itoa(count))
		h.raw("</span></div>")
		return h.err
	})
}

func Reactions(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<div class="discord-reactions">`)
		h.render(children...)
		h.raw("</div>")
		return h.err
	})
}
