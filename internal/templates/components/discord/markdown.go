package discord

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in message content is never passed through.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
)

type MarkdownProps struct {
	Highlight bool
}

// Markdown renders message content the way chat formats it: emphasis,
// code spans and blocks, strikethrough and bare links.
func Markdown(props MarkdownProps, content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body bytes.Buffer
		if err := markdown.Convert([]byte(content), &body); err != nil {
			return err
		}

		h := newHTMLWriter(ctx, w)
		h.raw("<div")
		h.class("discord-markdown", templ.KV("discord-highlight-mention", props.Highlight))
		h.raw(">")
		h.raw(body.String())
		h.raw("</div>")
		return h.err
	})
}
