package mock

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ExampleComponent renders one registered example wrapped in a container
// htmx can address.
func ExampleComponent(name string, opts RenderOptions) (templ.Component, error) {
	e, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	opts.Example = name
	conv := e.Build()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="mock-example" id="example-`+templ.EscapeString(name)+`">`); err != nil {
			return err
		}
		if err := conv.Component(opts).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>")
		return err
	}), nil
}

// Gallery renders every registered example with its title and description.
func Gallery(opts RenderOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, name := range Examples() {
			e, _ := Lookup(name)
			component, err := ExampleComponent(name, opts)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, `<section class="mock-gallery-item"><h2>`+templ.EscapeString(e.Title)+`</h2><p>`+templ.EscapeString(e.Description)+`</p>`); err != nil {
				return err
			}
			if err := component.Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</section>"); err != nil {
				return err
			}
		}
		return nil
	})
}

// ToggleSelect rebuilds the named example's select menu in the state the
// client last saw, toggles it and returns the menu alone.
func ToggleSelect(name string, wasOpen bool, opts RenderOptions) (templ.Component, *SelectMenu, error) {
	e, err := Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	menu, ok := SelectMenuOf(e.Build())
	if !ok {
		return nil, nil, ErrNoSelectMenu
	}
	if wasOpen && !menu.Disabled {
		menu.State = Open
	}
	menu.Toggle()
	opts.Example = name
	return SelectMenuComponent(menu, opts.Mode.IsLight(), toggleEndpoint(opts, menu)), menu, nil
}
