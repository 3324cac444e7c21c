package discord

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const chevronSVG = `<svg xmlns="http://www.w3.org/2000/svg" aria-hidden="true" focusable="false" width="24" height="24" viewBox="0 0 24 24"><path fill="currentColor" d="M16.59 8.59003L12 13.17L7.41 8.59003L6 10L12 16L18 10L16.59 8.59003Z"></path></svg>`

// Chevron is the select menu's dropdown arrow; rotate points it up.
func Chevron(rotate bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw("<span")
		h.class("outbound-chevron-icon", templ.KV("rotate", rotate))
		h.raw(">")
		h.raw(chevronSVG)
		h.raw("</span>")
		return h.err
	})
}
