// Package discord renders static Discord chat primitives: message lists,
// messages, interaction headers, markdown bodies, buttons, embeds, reactions
// and mentions. Every primitive is a pure props to markup mapping.
package discord

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter remembers the first write error so primitives can emit markup
// without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (h *htmlWriter) url(name, value string) {
	h.attr(name, string(templ.URL(value)))
}

func (h *htmlWriter) class(classes ...any) {
	h.attr("class", templ.Classes(classes...).String())
}

func (h *htmlWriter) render(components ...templ.Component) {
	for _, c := range components {
		if h.err != nil || c == nil {
			return
		}
		h.err = c.Render(h.ctx, h.w)
	}
}

// Text renders escaped plain text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// Fragment renders components back to back.
func Fragment(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.render(children...)
		return h.err
	})
}
